package model

import (
	"encoding/json"
	"strings"
	"time"
)

// TimestampLayout is RFC 3339 with a numeric offset, so UTC renders as
// "+00:00" rather than "Z".
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// PlanEntry is one concrete occurrence of a blueprint.
type PlanEntry struct {
	BlueprintID string    `json:"blueprint_id"`
	PlannedFor  time.Time `json:"planned_for"`
}

// String renders "<blueprint_id> <timestamp>".
func (e PlanEntry) String() string {
	return e.BlueprintID + " " + e.PlannedFor.Format(TimestampLayout)
}

// Plan is the chronologically ordered output of a planning run.
type Plan struct {
	entries []PlanEntry
}

// NewPlan wraps entries, which must already be ordered by PlannedFor.
func NewPlan(entries ...PlanEntry) Plan {
	return Plan{entries: append([]PlanEntry(nil), entries...)}
}

// Entries returns the plan entries. The slice must not be modified.
func (p Plan) Entries() []PlanEntry {
	return p.entries
}

func (p Plan) Len() int {
	return len(p.entries)
}

// String renders one entry per line, each newline-terminated.
func (p Plan) String() string {
	var sb strings.Builder
	for _, e := range p.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p Plan) MarshalJSON() ([]byte, error) {
	if p.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.entries)
}
