package scheduler

import "time"

// Clock supplies the instant a planning run starts at. It is read exactly
// once per run so every blueprint shares the same window.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// SystemClock reads the wall clock in loc. A nil loc means time.Local.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always returns the same instant, in its own location.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
