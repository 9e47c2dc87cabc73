package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/model"
	"github.com/rcliao/blueprint-planner/internal/store"
)

func init() {
	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Record a completed occurrence",
		Args:  cobra.ExactArgs(1),
		Run:   journalRunner(model.Completed),
	}
	doneCmd.Flags().String("at", "", "When it happened (default: now)")

	postponeCmd := &cobra.Command{
		Use:   "postpone <id>",
		Short: "Record a postponed occurrence",
		Args:  cobra.ExactArgs(1),
		Run:   journalRunner(model.Postponed),
	}
	postponeCmd.Flags().String("at", "", "Occurrence being postponed (default: now)")

	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Show journal entries",
		Run:   runJournal,
	}
	journalCmd.Flags().String("blueprint", "", "Only entries for this blueprint")
	journalCmd.Flags().String("since", "", "Only entries at or after this time")
	journalCmd.Flags().IntP("limit", "l", 0, "Only the most recent N entries")

	RootCmd.AddCommand(doneCmd, postponeCmd, journalCmd)
}

func journalRunner(kind model.JournalKind) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		atStr, _ := cmd.Flags().GetString("at")
		at, err := parseAt(atStr, location())
		if err != nil {
			exitErr(string(kind), err)
		}

		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		entry, err := s.AppendJournal(cmd.Context(), store.JournalParams{
			Book:        cfg.Book,
			BlueprintID: args[0],
			Kind:        kind,
			At:          at,
		})
		if err != nil {
			exitErr(string(kind), err)
		}
		logger.Debug().Str("blueprint", entry.BlueprintID).Str("kind", string(kind)).Time("at", entry.JournaledAt).Msg("journaled")

		if formatFlag == "text" {
			printJournalEntry(cmd, *entry)
			return
		}
		printJSON(cmd, entry)
	}
}

func runJournal(cmd *cobra.Command, args []string) {
	blueprint, _ := cmd.Flags().GetString("blueprint")
	sinceStr, _ := cmd.Flags().GetString("since")
	limit, _ := cmd.Flags().GetInt("limit")

	loc := location()
	q := store.JournalQuery{Book: cfg.Book, BlueprintID: blueprint, Limit: limit}
	if sinceStr != "" {
		since, err := parseAt(sinceStr, loc)
		if err != nil {
			exitErr("journal", err)
		}
		q.Since = since
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	j, err := s.Journal(cmd.Context(), q)
	if err != nil {
		exitErr("journal", err)
	}

	entries := j.Entries()
	if formatFlag == "text" {
		for _, e := range entries {
			e.JournaledAt = e.JournaledAt.In(loc)
			printJournalEntry(cmd, e)
		}
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	printJSON(cmd, entries)
}

func printJournalEntry(cmd *cobra.Command, e model.JournalEntry) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", e.BlueprintID, e.Kind, e.JournaledAt.Format(model.TimestampLayout))
}
