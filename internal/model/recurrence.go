package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidRecurrence is returned for malformed recurrences.
var ErrInvalidRecurrence = errors.New("invalid recurrence")

// Recurrence is the repeat policy of a blueprint. The variant set is closed:
// Once, Times and Period.
type Recurrence interface {
	Validate() error
	String() string

	recurrence()
}

// Once occurs exactly one time.
type Once struct{}

// Times occurs Count times, each Spacing after the previous one.
type Times struct {
	Count   int
	Spacing Duration
}

// Period repeats every Spacing until the planning window ends.
type Period struct {
	Spacing Duration
}

func (Once) recurrence()   {}
func (Times) recurrence()  {}
func (Period) recurrence() {}

func (Once) Validate() error { return nil }

func (r Times) Validate() error {
	if r.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidRecurrence, r.Count)
	}
	if r.Count > 1 && r.Spacing.IsZero() {
		return fmt.Errorf("%w: zero spacing", ErrInvalidRecurrence)
	}
	if err := r.Spacing.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	return nil
}

func (r Period) Validate() error {
	if r.Spacing.IsZero() {
		return fmt.Errorf("%w: zero spacing", ErrInvalidRecurrence)
	}
	if err := r.Spacing.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	return nil
}

func (Once) String() string     { return "^1" }
func (r Times) String() string  { return fmt.Sprintf("^{%d,%s}", r.Count, r.Spacing) }
func (r Period) String() string { return "^" + r.Spacing.String() }

var timesRegex = regexp.MustCompile(`^\^\{(\d+),([^}]+)\}$`)

// ParseRecurrence parses "^1" (Once), "^3mo" (Period) and "^{3,2d}" (Times).
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimSpace(s)
	if s == "^1" {
		return Once{}, nil
	}

	var r Recurrence
	if m := timesRegex.FindStringSubmatch(s); m != nil {
		count, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRecurrence, s, err)
		}
		spacing, err := ParseDuration(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRecurrence, s, err)
		}
		r = Times{Count: count, Spacing: spacing}
	} else if rest, ok := strings.CutPrefix(s, "^"); ok {
		spacing, err := ParseDuration(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRecurrence, s, err)
		}
		r = Period{Spacing: spacing}
	} else {
		return nil, fmt.Errorf("%w: %q (use e.g. ^1, ^1d, ^{3,2d})", ErrInvalidRecurrence, s)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
