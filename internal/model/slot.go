package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSlot is returned for malformed or out-of-range slots.
var ErrInvalidSlot = errors.New("invalid slot")

// Slot expresses when a blueprint prefers to be materialized. The variant
// set is closed: FixedHour, HourRange, FixedDay and DayRange.
type Slot interface {
	// Matches reports whether the local time t falls in the slot.
	Matches(t time.Time) bool
	Validate() error
	String() string

	slot()
}

// FixedHour matches a single hour of the day (0-23).
type FixedHour struct {
	Hour int
}

// HourRange matches the inclusive hours [Start, End]. When Start > End the
// range wraps across midnight, e.g. 22-3 covers 22, 23, 0, 1, 2 and 3.
type HourRange struct {
	Start int
	End   int
}

// FixedDay matches a single weekday.
type FixedDay struct {
	Day DayOfWeek
}

// DayRange matches the inclusive days [From, To], wrapping across the end of
// the week when From > To (Fri-Mon covers Fri, Sat, Sun and Mon).
type DayRange struct {
	From DayOfWeek
	To   DayOfWeek
}

func (FixedHour) slot() {}
func (HourRange) slot() {}
func (FixedDay) slot()  {}
func (DayRange) slot()  {}

// WorkDays covers Monday through Friday.
func WorkDays() DayRange { return DayRange{From: Mon, To: Fri} }

// Weekend covers Saturday and Sunday.
func Weekend() DayRange { return DayRange{From: Sat, To: Sun} }

// FullWeek covers every day.
func FullWeek() DayRange { return DayRange{From: Mon, To: Sun} }

func (s FixedHour) Contains(hour int) bool { return s.Hour == hour }

func (s HourRange) Contains(hour int) bool {
	if s.Start <= s.End {
		return s.Start <= hour && hour <= s.End
	}
	return hour >= s.Start || hour <= s.End
}

func (s FixedDay) Contains(day DayOfWeek) bool { return s.Day == day }

func (s DayRange) Contains(day DayOfWeek) bool {
	if s.From <= s.To {
		return s.From <= day && day <= s.To
	}
	return day >= s.From || day <= s.To
}

func (s FixedHour) Matches(t time.Time) bool { return s.Contains(t.Hour()) }
func (s HourRange) Matches(t time.Time) bool { return s.Contains(t.Hour()) }
func (s FixedDay) Matches(t time.Time) bool  { return s.Contains(DayOf(t)) }
func (s DayRange) Matches(t time.Time) bool  { return s.Contains(DayOf(t)) }

func validHour(h int) bool { return h >= 0 && h < 24 }

func (s FixedHour) Validate() error {
	if !validHour(s.Hour) {
		return fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidSlot, s.Hour)
	}
	return nil
}

func (s HourRange) Validate() error {
	if !validHour(s.Start) || !validHour(s.End) {
		return fmt.Errorf("%w: hours %d-%d out of range 0-23", ErrInvalidSlot, s.Start, s.End)
	}
	return nil
}

func (s FixedDay) Validate() error {
	if !s.Day.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, s.Day)
	}
	return nil
}

func (s DayRange) Validate() error {
	if !s.From.Valid() || !s.To.Valid() {
		return fmt.Errorf("%w: %v-%v", ErrInvalidSlot, s.From, s.To)
	}
	return nil
}

func (s FixedHour) String() string { return fmt.Sprintf("%02d:00", s.Hour) }
func (s HourRange) String() string { return fmt.Sprintf("%02d:00-%02d:00", s.Start, s.End) }
func (s FixedDay) String() string  { return s.Day.String() }
func (s DayRange) String() string  { return s.From.String() + "-" + s.To.String() }

var hourRegex = regexp.MustCompile(`^(\d{1,2}):00$`)

func parseHour(s string) (int, bool) {
	m := hourRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	return h, true
}

// ParseSlot parses the canonical slot forms: "08:00", "08:00-12:00", "Wed"
// and "Mon-Fri". The result is validated.
func ParseSlot(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	var slot Slot

	switch len(parts) {
	case 1:
		if h, ok := parseHour(parts[0]); ok {
			slot = FixedHour{Hour: h}
		} else if d, err := ParseDay(parts[0]); err == nil {
			slot = FixedDay{Day: d}
		}
	case 2:
		h1, ok1 := parseHour(parts[0])
		h2, ok2 := parseHour(parts[1])
		if ok1 && ok2 {
			slot = HourRange{Start: h1, End: h2}
			break
		}
		d1, err1 := ParseDay(parts[0])
		d2, err2 := ParseDay(parts[1])
		if err1 == nil && err2 == nil {
			slot = DayRange{From: d1, To: d2}
		}
	}

	if slot == nil {
		return nil, fmt.Errorf("%w: %q (use e.g. 08:00, 08:00-12:00, Wed, Mon-Fri)", ErrInvalidSlot, s)
	}
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	return slot, nil
}
