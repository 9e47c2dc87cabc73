// Package model defines the planner value types: durations, priorities,
// slots, recurrences, blueprints, journals and plans.
package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDuration is returned when a duration string cannot be parsed.
var ErrInvalidDuration = errors.New("invalid duration")

// TimeUnit is the unit of a Duration. The ordering follows magnitude.
type TimeUnit int

const (
	Second TimeUnit = iota
	Minute
	Hour
	Day
	Month // 30 days
	Year  // 365 days
)

var unitSuffixes = [...]string{"s", "min", "h", "d", "mo", "y"}

var unitSeconds = [...]uint64{1, 60, 3600, 86400, 2592000, 31536000}

// Seconds returns the number of seconds in one unit.
func (u TimeUnit) Seconds() uint64 {
	return unitSeconds[u]
}

func (u TimeUnit) String() string {
	if u < Second || u > Year {
		return fmt.Sprintf("TimeUnit(%d)", int(u))
	}
	return unitSuffixes[u]
}

// ParseTimeUnit parses a unit suffix such as "min" or "mo".
func ParseTimeUnit(s string) (TimeUnit, error) {
	for i, suffix := range unitSuffixes {
		if s == suffix {
			return TimeUnit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, s)
}

// Duration is a fixed amount of time expressed in a unit.
type Duration struct {
	Amount uint64
	Unit   TimeUnit
}

// Of returns a Duration of amount units.
func Of(amount uint64, unit TimeUnit) Duration {
	return Duration{Amount: amount, Unit: unit}
}

func Seconds(n uint64) Duration { return Of(n, Second) }
func Minutes(n uint64) Duration { return Of(n, Minute) }
func Hours(n uint64) Duration   { return Of(n, Hour) }
func Days(n uint64) Duration    { return Of(n, Day) }

// MaxSeconds is the longest span, in seconds, a time.Duration can hold.
const MaxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Overflows reports whether d is longer than MaxSeconds.
func (d Duration) Overflows() bool {
	return d.Amount > MaxSeconds/d.Unit.Seconds()
}

// Validate rejects unknown units and spans longer than MaxSeconds.
func (d Duration) Validate() error {
	if d.Unit < Second || d.Unit > Year {
		return fmt.Errorf("%w: unknown unit %v", ErrInvalidDuration, d.Unit)
	}
	if d.Overflows() {
		return fmt.Errorf("%w: %s exceeds %ds", ErrInvalidDuration, d, MaxSeconds)
	}
	return nil
}

// Seconds returns the total length in seconds, saturating at MaxSeconds.
func (d Duration) Seconds() uint64 {
	if d.Overflows() {
		return MaxSeconds
	}
	return d.Amount * d.Unit.Seconds()
}

// Std converts d to an absolute span of elapsed time.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Seconds()) * time.Second
}

// Add sums two durations. The result is always expressed in seconds.
func (d Duration) Add(o Duration) Duration {
	return Seconds(min(d.Seconds()+o.Seconds(), MaxSeconds))
}

// IsZero reports whether d spans no time at all.
func (d Duration) IsZero() bool {
	return d.Seconds() == 0
}

func (d Duration) String() string {
	return strconv.FormatUint(d.Amount, 10) + d.Unit.String()
}

var durationRegex = regexp.MustCompile(`^(\d+)([a-z]+)$`)

// ParseDuration parses the canonical form, e.g. "3mo", "90min", "1h".
func ParseDuration(s string) (Duration, error) {
	m := durationRegex.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, fmt.Errorf("%w: %q (use e.g. 30min, 1h, 2d, 3mo, 1y)", ErrInvalidDuration, s)
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Duration{}, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, s, err)
	}
	unit, err := ParseTimeUnit(m[2])
	if err != nil {
		return Duration{}, err
	}
	d := Of(n, unit)
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}
