package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/config"
	"github.com/rcliao/blueprint-planner/internal/ics"
	"github.com/rcliao/blueprint-planner/internal/model"
	"github.com/rcliao/blueprint-planner/internal/scheduler"
	"github.com/rcliao/blueprint-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Expand the book into a chronological plan",
		Long: `Expand every blueprint of the book into its occurrences over the lookahead
window and print them in time order, one "<id> <timestamp>" line per entry
with --format text.

Use --format ics for an iCalendar document, and --series to emit one
recurring event per blueprint instead of one event per occurrence.`,
		Run: runPlan,
	}

	cmd.Flags().String("at", "", "Plan as if it were this instant (default: now)")
	cmd.Flags().Int("days", 0, "Lookahead in days (default: $PLANNER_LOOKAHEAD_DAYS or 7)")
	cmd.Flags().String("journal-policy", "", "How the journal suppresses occurrences: ignore, exact, same-day")
	cmd.Flags().Bool("series", false, "With --format ics, one recurring event per blueprint")

	v.BindPFlag(config.KeyLookaheadDays, cmd.Flags().Lookup("days"))
	v.BindPFlag(config.KeyJournalPolicy, cmd.Flags().Lookup("journal-policy"))

	RootCmd.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	atStr, _ := cmd.Flags().GetString("at")
	series, _ := cmd.Flags().GetBool("series")

	loc := location()
	policy, err := cfg.Policy()
	if err != nil {
		exitErr("plan", err)
	}

	var clock scheduler.Clock = scheduler.SystemClock(loc)
	if atStr != "" {
		at, err := parseAt(atStr, loc)
		if err != nil {
			exitErr("plan", err)
		}
		clock = scheduler.FixedClock(at)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	book, err := s.Book(cmd.Context(), cfg.Book)
	if err != nil {
		exitErr("load book", err)
	}
	var journal model.Journal
	if policy != scheduler.IgnoreJournal {
		journal, err = s.Journal(cmd.Context(), store.JournalQuery{Book: cfg.Book})
		if err != nil {
			exitErr("load journal", err)
		}
	}

	sched := scheduler.New(
		scheduler.WithClock(clock),
		scheduler.WithLookaheadDays(cfg.LookaheadDays),
		scheduler.WithJournalPolicy(policy),
		scheduler.WithLogger(logger),
	)

	out := cmd.OutOrStdout()
	switch formatFlag {
	case "ics":
		start, end := scheduler.Window(clock.Now(), cfg.LookaheadDays)
		if series {
			err = ics.Series(out, book, start, end, time.Now())
		} else {
			err = ics.Plan(out, book, sched.ScheduleWindow(book, journal, start, end), time.Now())
		}
		if err != nil {
			exitErr("plan", err)
		}
	case "text":
		fmt.Fprint(out, sched.Schedule(book, journal).String())
	default:
		printJSON(cmd, sched.Schedule(book, journal))
	}
}
