package model

import (
	"fmt"
	"strings"
	"time"
)

// JournalKind tells what happened to an occurrence.
type JournalKind string

const (
	Completed JournalKind = "completed"
	Postponed JournalKind = "postponed"
)

// ValidJournalKinds are the allowed journal entry kinds.
var ValidJournalKinds = map[JournalKind]bool{
	Completed: true,
	Postponed: true,
}

// ParseJournalKind parses "completed" or "postponed", case-insensitive.
func ParseJournalKind(s string) (JournalKind, error) {
	k := JournalKind(strings.ToLower(strings.TrimSpace(s)))
	if !ValidJournalKinds[k] {
		return "", fmt.Errorf("invalid journal kind %q (valid: completed, postponed)", s)
	}
	return k, nil
}

// JournalEntry records that an occurrence of a blueprint was completed or
// postponed.
type JournalEntry struct {
	ID          string      `json:"id,omitempty"`
	Kind        JournalKind `json:"kind"`
	BlueprintID string      `json:"blueprint_id"`
	JournaledAt time.Time   `json:"journaled_at"`
}

// Journal is an append-only, ordered record of journal entries.
type Journal struct {
	entries []JournalEntry
}

// NewJournal returns a journal holding entries in the given order.
func NewJournal(entries ...JournalEntry) Journal {
	return Journal{entries: append([]JournalEntry(nil), entries...)}
}

// Entries returns the entries in journal order. The slice must not be modified.
func (j Journal) Entries() []JournalEntry {
	return j.entries
}

func (j Journal) Len() int {
	return len(j.entries)
}

// Append returns a journal with e added at the end. j is left untouched.
func (j Journal) Append(e JournalEntry) Journal {
	entries := make([]JournalEntry, len(j.entries), len(j.entries)+1)
	copy(entries, j.entries)
	return Journal{entries: append(entries, e)}
}

// ForBlueprint returns the entries recorded against one blueprint.
func (j Journal) ForBlueprint(id string) []JournalEntry {
	var out []JournalEntry
	for _, e := range j.entries {
		if e.BlueprintID == id {
			out = append(out, e)
		}
	}
	return out
}
