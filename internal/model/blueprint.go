package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBlueprint is returned when a blueprint fails validation.
var ErrInvalidBlueprint = errors.New("invalid blueprint")

// Blueprint is a template for a recurring task or event: how long it takes,
// when it prefers to happen, how often it repeats and how urgent it is.
type Blueprint struct {
	ID                string
	Description       string
	EstimatedDuration Duration
	Priority          Priority
	Recurrence        Recurrence
	PreferredSlot     Slot
}

// NewBlueprint builds a blueprint. It does not validate; see Validate.
func NewBlueprint(id, description string, estimated Duration, priority Priority, rec Recurrence, slot Slot) Blueprint {
	return Blueprint{
		ID:                id,
		Description:       description,
		EstimatedDuration: estimated,
		Priority:          priority,
		Recurrence:        rec,
		PreferredSlot:     slot,
	}
}

// Validate checks the blueprint is safe to hand to the scheduler.
func (b Blueprint) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidBlueprint)
	}
	if strings.ContainsAny(b.ID, " \t\n") {
		return fmt.Errorf("%w: id %q contains whitespace", ErrInvalidBlueprint, b.ID)
	}
	if b.Priority < Idle || b.Priority > Crit {
		return fmt.Errorf("%w %s: %v", ErrInvalidBlueprint, b.ID, b.Priority)
	}
	if err := b.EstimatedDuration.Validate(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidBlueprint, b.ID, err)
	}
	if b.Recurrence == nil {
		return fmt.Errorf("%w %s: missing recurrence", ErrInvalidBlueprint, b.ID)
	}
	if err := b.Recurrence.Validate(); err != nil {
		return fmt.Errorf("blueprint %s: %w", b.ID, err)
	}
	if b.PreferredSlot == nil {
		return fmt.Errorf("%w %s: missing slot", ErrInvalidBlueprint, b.ID)
	}
	if err := b.PreferredSlot.Validate(); err != nil {
		return fmt.Errorf("blueprint %s: %w", b.ID, err)
	}
	return nil
}

// String renders "<id> <PRIORITY> <recurrence> <duration> <slot>".
func (b Blueprint) String() string {
	return fmt.Sprintf("%s %s %s %s %s", b.ID, b.Priority, b.Recurrence, b.EstimatedDuration, b.PreferredSlot)
}

// blueprintJSON is the wire form; every field uses its canonical text.
type blueprintJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Priority    string `json:"priority"`
	Recurrence  string `json:"recurrence"`
	Slot        string `json:"slot"`
}

func (b Blueprint) MarshalJSON() ([]byte, error) {
	w := blueprintJSON{
		ID:          b.ID,
		Description: b.Description,
		Duration:    b.EstimatedDuration.String(),
		Priority:    b.Priority.String(),
	}
	if b.Recurrence != nil {
		w.Recurrence = b.Recurrence.String()
	}
	if b.PreferredSlot != nil {
		w.Slot = b.PreferredSlot.String()
	}
	return json.Marshal(w)
}

func (b *Blueprint) UnmarshalJSON(data []byte) error {
	var w blueprintJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := ParseBlueprint(w.ID, w.Description, w.Duration, w.Priority, w.Recurrence, w.Slot)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBlueprint builds a validated blueprint from canonical text fields.
func ParseBlueprint(id, description, duration, priority, recurrence, slot string) (Blueprint, error) {
	d, err := ParseDuration(duration)
	if err != nil {
		return Blueprint{}, fmt.Errorf("blueprint %s: %w", id, err)
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return Blueprint{}, fmt.Errorf("blueprint %s: %w", id, err)
	}
	r, err := ParseRecurrence(recurrence)
	if err != nil {
		return Blueprint{}, fmt.Errorf("blueprint %s: %w", id, err)
	}
	s, err := ParseSlot(slot)
	if err != nil {
		return Blueprint{}, fmt.Errorf("blueprint %s: %w", id, err)
	}
	b := NewBlueprint(id, description, d, p, r, s)
	if err := b.Validate(); err != nil {
		return Blueprint{}, err
	}
	return b, nil
}
