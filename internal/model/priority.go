package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPriority is returned for an unknown priority name.
var ErrInvalidPriority = errors.New("invalid priority")

// Priority is an urgency tag, ordered Idle < Norm < High < Crit.
type Priority int

const (
	Idle Priority = iota
	Norm
	High
	Crit
)

var priorityNames = [...]string{"IDLE", "NORM", "HIGH", "CRIT"}

func (p Priority) String() string {
	if p < Idle || p > Crit {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority accepts the canonical names in any case.
func ParsePriority(s string) (Priority, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range priorityNames {
		if up == name {
			return Priority(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: idle, norm, high, crit)", ErrInvalidPriority, s)
}
