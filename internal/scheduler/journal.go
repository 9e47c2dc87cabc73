package scheduler

import (
	"fmt"
	"time"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// JournalPolicy decides which occurrences a journal entry accounts for.
type JournalPolicy string

const (
	// IgnoreJournal plans every occurrence regardless of the journal.
	IgnoreJournal JournalPolicy = "ignore"
	// ExactMatch drops an occurrence journaled at exactly its instant.
	ExactMatch JournalPolicy = "exact"
	// SameDay drops an occurrence journaled on the same local day.
	SameDay JournalPolicy = "same-day"
)

// ParseJournalPolicy parses a policy name. The empty string means IgnoreJournal.
func ParseJournalPolicy(s string) (JournalPolicy, error) {
	switch p := JournalPolicy(s); p {
	case "":
		return IgnoreJournal, nil
	case IgnoreJournal, ExactMatch, SameDay:
		return p, nil
	default:
		return "", fmt.Errorf("invalid journal policy %q (valid: ignore, exact, same-day)", s)
	}
}

func (p JournalPolicy) covers(occurrence time.Time, e model.JournalEntry) bool {
	switch p {
	case ExactMatch:
		return e.JournaledAt.Equal(occurrence)
	case SameDay:
		y1, m1, d1 := occurrence.Date()
		y2, m2, d2 := e.JournaledAt.In(occurrence.Location()).Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	default:
		return false
	}
}

// filter drops the occurrences of blueprint id covered by the journal.
// Completed and postponed entries are treated alike.
func (p JournalPolicy) filter(id string, times []time.Time, journal model.Journal) []time.Time {
	if p == IgnoreJournal || p == "" {
		return times
	}
	entries := journal.ForBlueprint(id)
	if len(entries) == 0 {
		return times
	}

	out := times[:0:0]
	for _, ts := range times {
		covered := false
		for _, e := range entries {
			if p.covers(ts, e) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, ts)
		}
	}
	return out
}
