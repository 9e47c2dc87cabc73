// Package scheduler expands a book of blueprints into a chronologically
// ordered plan over a fixed lookahead window.
package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// DefaultLookaheadDays is the length of the planning window.
const DefaultLookaheadDays = 7

// Scheduler produces plans. It holds only configuration, so one Scheduler
// may serve concurrent runs.
type Scheduler struct {
	clock     Clock
	lookahead int
	policy    JournalPolicy
	log       zerolog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the source of the planning start instant.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLookaheadDays sets the window length in local calendar days.
func WithLookaheadDays(days int) Option {
	return func(s *Scheduler) {
		if days > 0 {
			s.lookahead = days
		}
	}
}

// WithJournalPolicy sets how journal entries suppress occurrences.
func WithJournalPolicy(p JournalPolicy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// New returns a Scheduler reading the local wall clock, planning seven days
// ahead and ignoring the journal unless configured otherwise.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:     SystemClock(nil),
		lookahead: DefaultLookaheadDays,
		policy:    IgnoreJournal,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the half-open planning window [now, now + days).
func Window(now time.Time, days int) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, days)
}

// Schedule plans every blueprint of book over the window starting now.
func (s *Scheduler) Schedule(book model.Book, journal model.Journal) model.Plan {
	start, end := Window(s.clock.Now(), s.lookahead)
	return s.ScheduleWindow(book, journal, start, end)
}

// ScheduleWindow plans book over an explicit window [start, end).
func (s *Scheduler) ScheduleWindow(book model.Book, journal model.Journal, start, end time.Time) model.Plan {
	series := make([]Series, 0, book.Len())
	for _, bp := range book.Entries() {
		times := Occurrences(bp, start, end)
		times = s.policy.filter(bp.ID, times, journal)

		s.log.Debug().
			Str("blueprint", bp.ID).
			Stringer("recurrence", bp.Recurrence).
			Stringer("slot", bp.PreferredSlot).
			Int("occurrences", len(times)).
			Msg("expanded blueprint")

		series = append(series, Series{ID: bp.ID, Times: times})
	}

	plan := model.NewPlan(Linearize(series)...)
	s.log.Debug().
		Time("start", start).
		Time("end", end).
		Int("blueprints", book.Len()).
		Int("entries", plan.Len()).
		Msg("plan ready")
	return plan
}

// Schedule plans book from now over the default window, ignoring the journal.
func Schedule(book model.Book, journal model.Journal, now time.Time) model.Plan {
	return New(WithClock(FixedClock(now))).Schedule(book, journal)
}
