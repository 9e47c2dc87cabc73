package scheduler

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/blueprint-planner/internal/model"
)

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	return loc
}

var (
	daily   = model.Period{Spacing: model.Days(1)}
	oneHour = model.Hours(1)
	// 2026-10-19 is a Monday.
	monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
)

func scenarioBook() model.Book {
	return model.NewBook(
		model.NewBlueprint("1", "Task A", oneHour, model.Crit, daily, model.FixedHour{Hour: 8}),
		model.NewBlueprint("2", "Task B", oneHour, model.Norm, daily, model.HourRange{Start: 8, End: 12}),
	)
}

func TestScheduleAcrossDSTEnd(t *testing.T) {
	now := time.Date(2026, 10, 23, 0, 0, 0, 0, berlin(t))
	book := scenarioBook()

	assert.Equal(t, "1 CRIT ^1d 1h 08:00\n2 NORM ^1d 1h 08:00-12:00\n", book.String())

	plan := Schedule(book, model.NewJournal(), now)

	expected := `
1 2026-10-23T08:00:00+02:00
2 2026-10-23T08:00:00+02:00
1 2026-10-24T08:00:00+02:00
2 2026-10-24T08:00:00+02:00
1 2026-10-25T08:00:00+01:00
2 2026-10-25T08:00:00+01:00
1 2026-10-26T08:00:00+01:00
2 2026-10-26T08:00:00+01:00
1 2026-10-27T08:00:00+01:00
2 2026-10-27T08:00:00+01:00
1 2026-10-28T08:00:00+01:00
2 2026-10-28T08:00:00+01:00
1 2026-10-29T08:00:00+01:00
2 2026-10-29T08:00:00+01:00`
	assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(plan.String()))
	assert.Equal(t, 14, plan.Len())
}

func TestScheduleAcrossDSTStart(t *testing.T) {
	now := time.Date(2027, 3, 26, 0, 0, 0, 0, berlin(t))
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, daily, model.FixedHour{Hour: 8})

	got := Occurrences(bp, now, now.AddDate(0, 0, 7))
	require.Len(t, got, 7)

	wantDays := []string{"2027-03-26", "2027-03-27", "2027-03-28", "2027-03-29", "2027-03-30", "2027-03-31", "2027-04-01"}
	for i, ts := range got {
		assert.Equal(t, 8, ts.Hour(), ts.String())
		assert.Equal(t, wantDays[i], ts.Format("2006-01-02"))
	}
	_, offset := got[2].Zone()
	assert.Equal(t, 2*3600, offset)
}

func TestOccurrencesSkipMissingAnchorHour(t *testing.T) {
	loc := berlin(t)
	now := time.Date(2027, 3, 26, 0, 0, 0, 0, loc)
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, daily, model.FixedHour{Hour: 2})

	// 02:00 does not exist on 2027-03-28 in Berlin.
	got := Occurrences(bp, now, now.AddDate(0, 0, 7))
	var days []string
	for _, ts := range got {
		assert.Equal(t, 2, ts.Hour(), ts.String())
		days = append(days, ts.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2027-03-26", "2027-03-27", "2027-03-29", "2027-03-30", "2027-03-31", "2027-04-01"}, days)

	// The first occurrence skips the day too.
	start := time.Date(2027, 3, 28, 0, 0, 0, 0, loc)
	once := model.NewBlueprint("b", "", oneHour, model.Norm, model.Once{}, model.FixedHour{Hour: 2})
	got = Occurrences(once, start, start.AddDate(0, 0, 7))
	require.Len(t, got, 1)
	assert.Equal(t, "2027-03-29T02:00:00+02:00", got[0].Format(model.TimestampLayout))
}

func TestOccurrencesOversizedSpacingSaturates(t *testing.T) {
	// Built directly, bypassing Validate; the spacing must not wrap into a
	// sub-second step.
	bp := model.NewBlueprint("a", "", oneHour, model.Norm,
		model.Period{Spacing: model.Seconds(18446744074)}, model.FixedHour{Hour: 8})
	got := Occurrences(bp, monday, monday.AddDate(0, 0, 7))
	assert.Equal(t, []time.Time{monday.Add(8 * time.Hour)}, got)

	_, err := model.ParseRecurrence("^18446744074s")
	assert.ErrorIs(t, err, model.ErrInvalidRecurrence)
}

func TestScheduleIsDeterministic(t *testing.T) {
	s := New(WithClock(FixedClock(monday)))
	a := s.Schedule(scenarioBook(), model.NewJournal())
	b := s.Schedule(scenarioBook(), model.NewJournal())
	assert.Equal(t, a.String(), b.String())
}

func TestPlanProperties(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	book := model.NewBook(
		model.NewBlueprint("late", "", oneHour, model.Idle, daily, model.HourRange{Start: 22, End: 3}),
		model.NewBlueprint("early", "", oneHour, model.High, daily, model.FixedHour{Hour: 8}),
		model.NewBlueprint("noon", "", oneHour, model.Norm, model.Period{Spacing: model.Hours(12)}, model.FixedHour{Hour: 12}),
		model.NewBlueprint("weekend", "", oneHour, model.Norm, daily, model.Weekend()),
		model.NewBlueprint("once", "", oneHour, model.Crit, model.Once{}, model.FixedHour{Hour: 22}),
	)
	plan := Schedule(book, model.NewJournal(), now)
	end := now.AddDate(0, 0, 7)

	require.NotZero(t, plan.Len())
	index := map[string]int{}
	for i, bp := range book.Entries() {
		index[bp.ID] = i
	}

	entries := plan.Entries()
	for i, e := range entries {
		assert.False(t, e.PlannedFor.Before(now), "before window: %s", e)
		assert.True(t, e.PlannedFor.Before(end), "after window: %s", e)

		bp, _ := book.Lookup(e.BlueprintID)
		switch s := bp.PreferredSlot.(type) {
		case model.FixedHour:
			assert.Equal(t, s.Hour, e.PlannedFor.Hour(), e.String())
		case model.HourRange:
			assert.Equal(t, s.Start, e.PlannedFor.Hour(), e.String())
		default:
			assert.True(t, s.Matches(e.PlannedFor), e.String())
		}

		if i == 0 {
			continue
		}
		prev := entries[i-1]
		assert.False(t, e.PlannedFor.Before(prev.PlannedFor), "out of order at %d", i)
		if e.PlannedFor.Equal(prev.PlannedFor) {
			assert.Less(t, index[prev.BlueprintID], index[e.BlueprintID], "tie at %s", e)
		}
	}

	count := 0
	for _, e := range entries {
		if e.BlueprintID == "once" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestOccurrencesPeriodSpacing(t *testing.T) {
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, daily, model.FixedHour{Hour: 8})
	got := Occurrences(bp, monday, monday.AddDate(0, 0, 7))

	require.Len(t, got, 7)
	assert.Equal(t, monday.Add(8*time.Hour), got[0])
	for i := 1; i < len(got); i++ {
		assert.Equal(t, 24*time.Hour, got[i].Sub(got[i-1]))
	}
}

func TestOccurrencesStartsAfterAnchorHour(t *testing.T) {
	now := monday.Add(10*time.Hour + 30*time.Minute)
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, daily, model.FixedHour{Hour: 8})
	got := Occurrences(bp, now, now.AddDate(0, 0, 7))

	require.Len(t, got, 7)
	assert.Equal(t, time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2026, 10, 26, 8, 0, 0, 0, time.UTC), got[6])
}

func TestOccurrencesKeepsCursorInAnchorHour(t *testing.T) {
	now := monday.Add(8*time.Hour + 30*time.Minute)
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, model.Once{}, model.FixedHour{Hour: 8})
	got := Occurrences(bp, now, now.AddDate(0, 0, 7))
	assert.Equal(t, []time.Time{now}, got)
}

func TestOccurrencesRangeAnchorsOnStart(t *testing.T) {
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, daily, model.HourRange{Start: 22, End: 3})
	got := Occurrences(bp, monday, monday.AddDate(0, 0, 2))
	assert.Equal(t, []time.Time{
		monday.Add(22 * time.Hour),
		monday.Add(46 * time.Hour),
	}, got)
}

func TestOccurrencesOnce(t *testing.T) {
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, model.Once{}, model.FixedHour{Hour: 9})
	got := Occurrences(bp, monday, monday.AddDate(0, 0, 7))
	assert.Equal(t, []time.Time{monday.Add(9 * time.Hour)}, got)
}

func TestOccurrencesTimes(t *testing.T) {
	slot := model.FixedHour{Hour: 9}
	end := monday.AddDate(0, 0, 7)

	three := model.NewBlueprint("a", "", oneHour, model.Norm, model.Times{Count: 3, Spacing: model.Days(2)}, slot)
	assert.Equal(t, []time.Time{
		time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC),
	}, Occurrences(three, monday, end))

	// The window cuts a longer series short.
	five := model.NewBlueprint("b", "", oneHour, model.Norm, model.Times{Count: 5, Spacing: model.Days(2)}, slot)
	assert.Len(t, Occurrences(five, monday, end), 4)

	zero := model.NewBlueprint("c", "", oneHour, model.Norm, model.Times{Count: 0, Spacing: model.Days(2)}, slot)
	assert.Empty(t, Occurrences(zero, monday, end))
}

func TestOccurrencesSubHourSpacing(t *testing.T) {
	bp := model.NewBlueprint("a", "", oneHour, model.Norm,
		model.Period{Spacing: model.Minutes(30)}, model.FixedHour{Hour: 8})
	got := Occurrences(bp, monday, monday.AddDate(0, 0, 7))

	require.Len(t, got, 14)
	assert.Equal(t, monday.Add(8*time.Hour), got[0])
	assert.Equal(t, monday.Add(8*time.Hour+30*time.Minute), got[1])
	assert.Equal(t, monday.Add(32*time.Hour), got[2])
}

func TestOccurrencesDaySlots(t *testing.T) {
	start := monday.Add(10 * time.Hour)
	end := start.AddDate(0, 0, 7)

	weekend := model.NewBlueprint("w", "", oneHour, model.Norm, daily, model.Weekend())
	assert.Equal(t, []time.Time{
		time.Date(2026, 10, 24, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 25, 10, 0, 0, 0, time.UTC),
	}, Occurrences(weekend, start, end))

	wed := model.NewBlueprint("x", "", oneHour, model.Norm, model.Once{}, model.FixedDay{Day: model.Wed})
	assert.Equal(t, []time.Time{time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)}, Occurrences(wed, start, end))

	thursday := time.Date(2026, 10, 22, 6, 0, 0, 0, time.UTC)
	wrap := model.NewBlueprint("y", "", oneHour, model.Norm,
		model.Period{Spacing: model.Days(3)}, model.DayRange{From: model.Fri, To: model.Mon})
	assert.Equal(t, []time.Time{
		time.Date(2026, 10, 23, 6, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 26, 6, 0, 0, 0, time.UTC),
	}, Occurrences(wrap, thursday, thursday.AddDate(0, 0, 7)))
}

func TestLinearizeBreaksTiesByOrder(t *testing.T) {
	t1 := monday.Add(time.Hour)
	t2 := monday.Add(2 * time.Hour)

	got := Linearize([]Series{
		{ID: "a", Times: []time.Time{t2}},
		{ID: "b", Times: []time.Time{t1, t2}},
		{ID: "c", Times: []time.Time{t2}},
		{ID: "d"},
	})

	want := []model.PlanEntry{
		{BlueprintID: "b", PlannedFor: t1},
		{BlueprintID: "a", PlannedFor: t2},
		{BlueprintID: "b", PlannedFor: t2},
		{BlueprintID: "c", PlannedFor: t2},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, Linearize(nil))
}

func TestPriorityDoesNotBreakTies(t *testing.T) {
	book := model.NewBook(
		model.NewBlueprint("low", "", oneHour, model.Idle, model.Once{}, model.FixedHour{Hour: 8}),
		model.NewBlueprint("high", "", oneHour, model.Crit, model.Once{}, model.FixedHour{Hour: 8}),
	)
	plan := Schedule(book, model.NewJournal(), monday)
	require.Equal(t, 2, plan.Len())
	assert.Equal(t, "low", plan.Entries()[0].BlueprintID)
}

func TestJournalPolicies(t *testing.T) {
	book := scenarioBook()
	journal := model.NewJournal(
		model.JournalEntry{Kind: model.Completed, BlueprintID: "1", JournaledAt: monday.Add(32 * time.Hour)},
		model.JournalEntry{Kind: model.Postponed, BlueprintID: "2", JournaledAt: monday.Add(67 * time.Hour)},
	)

	ignore := New(WithClock(FixedClock(monday))).Schedule(book, journal)
	assert.Equal(t, 14, ignore.Len())

	exact := New(WithClock(FixedClock(monday)), WithJournalPolicy(ExactMatch)).Schedule(book, journal)
	assert.Equal(t, 13, exact.Len())
	for _, e := range exact.Entries() {
		assert.False(t, e.BlueprintID == "1" && e.PlannedFor.Equal(monday.Add(32*time.Hour)))
	}

	sameDay := New(WithClock(FixedClock(monday)), WithJournalPolicy(SameDay)).Schedule(book, journal)
	assert.Equal(t, 12, sameDay.Len())
	for _, e := range sameDay.Entries() {
		assert.False(t, e.BlueprintID == "2" && e.PlannedFor.Day() == 21, e.String())
	}
}

func TestParseJournalPolicy(t *testing.T) {
	p, err := ParseJournalPolicy("")
	require.NoError(t, err)
	assert.Equal(t, IgnoreJournal, p)

	p, err = ParseJournalPolicy("same-day")
	require.NoError(t, err)
	assert.Equal(t, SameDay, p)

	_, err = ParseJournalPolicy("fuzzy")
	assert.Error(t, err)
}

func TestLookaheadOption(t *testing.T) {
	bp := model.NewBlueprint("a", "", oneHour, model.Norm, daily, model.FixedHour{Hour: 8})
	plan := New(WithClock(FixedClock(monday)), WithLookaheadDays(3)).Schedule(model.NewBook(bp), model.NewJournal())
	assert.Equal(t, 3, plan.Len())
}
