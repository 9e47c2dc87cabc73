package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDay is returned for an unknown weekday name.
var ErrInvalidDay = errors.New("invalid day")

// DayOfWeek enumerates the weekdays in the order Mon < Tue < ... < Sun.
// The order is a plain total order; week wrap-around is handled by DayRange.
type DayOfWeek int

const (
	Mon DayOfWeek = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

var dayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayOf returns the local weekday of t.
func DayOf(t time.Time) DayOfWeek {
	// time.Weekday starts the week on Sunday.
	return DayOfWeek((int(t.Weekday()) + 6) % 7)
}

// Valid reports whether d is one of the seven days.
func (d DayOfWeek) Valid() bool {
	return d >= Mon && d <= Sun
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay parses a three-letter day name, case-insensitive.
func ParseDay(s string) (DayOfWeek, error) {
	for i, name := range dayNames {
		if strings.EqualFold(s, name) {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}
