package scheduler

import (
	"time"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// Series is the ordered occurrence list of one blueprint.
type Series struct {
	ID    string
	Times []time.Time
}

// Linearize merges per-blueprint series into one chronological sequence.
// Each step scans the series in order and takes the strictly earliest head,
// so on equal instants the series listed first wins.
func Linearize(series []Series) []model.PlanEntry {
	total := 0
	for _, s := range series {
		total += len(s.Times)
	}

	heads := make([]int, len(series))
	out := make([]model.PlanEntry, 0, total)
	for len(out) < total {
		best := -1
		for i, s := range series {
			if heads[i] >= len(s.Times) {
				continue
			}
			if best < 0 || s.Times[heads[i]].Before(series[best].Times[heads[best]]) {
				best = i
			}
		}

		out = append(out, model.PlanEntry{
			BlueprintID: series[best].ID,
			PlannedFor:  series[best].Times[heads[best]],
		})
		heads[best]++
	}
	return out
}
