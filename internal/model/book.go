package model

import "strings"

// Book is an ordered collection of blueprints. The order is significant: it
// breaks ties between occurrences planned for the same instant.
type Book struct {
	entries []Blueprint
}

// NewBook returns a book holding entries in the given order.
func NewBook(entries ...Blueprint) Book {
	return Book{entries: append([]Blueprint(nil), entries...)}
}

// Entries returns the blueprints in book order. The slice must not be modified.
func (b Book) Entries() []Blueprint {
	return b.entries
}

func (b Book) Len() int {
	return len(b.entries)
}

// Lookup returns the blueprint with the given id.
func (b Book) Lookup(id string) (Blueprint, bool) {
	for _, bp := range b.entries {
		if bp.ID == id {
			return bp, true
		}
	}
	return Blueprint{}, false
}

// Validate checks every blueprint and that ids are unique.
func (b Book) Validate() error {
	seen := make(map[string]bool, len(b.entries))
	for _, bp := range b.entries {
		if err := bp.Validate(); err != nil {
			return err
		}
		if seen[bp.ID] {
			return ErrDuplicateID{ID: bp.ID}
		}
		seen[bp.ID] = true
	}
	return nil
}

// String renders one blueprint line per entry, each newline-terminated.
func (b Book) String() string {
	var sb strings.Builder
	for _, bp := range b.entries {
		sb.WriteString(bp.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ErrDuplicateID reports two blueprints sharing an id within one book.
type ErrDuplicateID struct {
	ID string
}

func (e ErrDuplicateID) Error() string {
	return "duplicate blueprint id " + e.ID
}

func (e ErrDuplicateID) Unwrap() error {
	return ErrInvalidBlueprint
}
