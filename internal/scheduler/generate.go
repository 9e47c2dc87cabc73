package scheduler

import (
	"fmt"
	"time"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// Occurrences lists the instants in [start, end) at which bp fires, in
// chronological order. All calendar arithmetic happens in start's location.
//
// Hour slots anchor every occurrence on the slot's hour (a range anchors on
// its start hour). Day slots skip forward whole days until the weekday
// matches. Generation stops at end or when the recurrence is exhausted,
// whichever comes first.
func Occurrences(bp model.Blueprint, start, end time.Time) []time.Time {
	limit := -1
	var spacing time.Duration

	switch r := bp.Recurrence.(type) {
	case model.Once:
		limit = 1
	case model.Times:
		if r.Count <= 0 {
			return nil
		}
		limit = r.Count
		spacing = r.Spacing.Std()
	case model.Period:
		spacing = r.Spacing.Std()
	default:
		panic(fmt.Sprintf("scheduler: unknown recurrence %T", bp.Recurrence))
	}

	var (
		out    []time.Time
		prev   time.Time
		cursor = start
	)
	for len(out) != limit && cursor.Before(end) {
		ts := align(bp.PreferredSlot, cursor, prev, len(out) == 0)
		if !ts.Before(end) {
			break
		}
		out = append(out, ts)

		// A zero spacing never moves the cursor.
		if spacing <= 0 {
			break
		}
		prev = ts
		cursor = ts.Add(spacing)
	}
	return out
}

func align(slot model.Slot, cursor, prev time.Time, first bool) time.Time {
	switch s := slot.(type) {
	case model.FixedHour:
		return alignHour(s.Hour, cursor, prev, first)
	case model.HourRange:
		return alignHour(s.Start, cursor, prev, first)
	case model.FixedDay:
		return alignDay(s, cursor)
	case model.DayRange:
		return alignDay(s, cursor)
	default:
		panic(fmt.Sprintf("scheduler: unknown slot %T", slot))
	}
}

// alignHour moves cursor onto the anchor hour. The first occurrence only
// moves forward, to the top of the anchor hour today or tomorrow. Later
// occurrences may snap back within the same local day (a daylight saving
// shift after an absolute spacing step) as long as they stay after prev.
// A day on which the anchor hour does not exist is skipped.
func alignHour(hour int, cursor, prev time.Time, first bool) time.Time {
	if cursor.Hour() == hour {
		return cursor
	}

	y, m, d := cursor.Date()
	loc := cursor.Location()
	at := anchorOn(y, m, d, hour, loc)

	floor := prev
	if first {
		floor = cursor
	}
	if at.Before(floor) || (!first && at.Equal(floor)) {
		at = anchorOn(y, m, d+1, hour, loc)
	}
	return at
}

// anchorOn returns hour:00 on the local day y-m-d, or on the first later day
// where that wall-clock hour exists.
func anchorOn(y int, m time.Month, d, hour int, loc *time.Location) time.Time {
	at := time.Date(y, m, d, hour, 0, 0, 0, loc)
	for i := 1; i <= 7 && at.Hour() != hour; i++ {
		at = time.Date(y, m, d+i, hour, 0, 0, 0, loc)
	}
	return at
}

func alignDay(slot model.Slot, cursor time.Time) time.Time {
	for i := 0; i < 7 && !slot.Matches(cursor); i++ {
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor
}
