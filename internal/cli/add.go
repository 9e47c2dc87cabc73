package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/model"
	"github.com/rcliao/blueprint-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add <id> [description]",
		Short: "Add or replace a blueprint",
		Long: `Add a blueprint to the book, or replace one with the same id in place.

  planner add filters "Clean VAC filters" --duration 1h --priority idle \
      --recurrence ^3mo --slot 10:00-13:00`,
		Args: cobra.MinimumNArgs(1),
		Run:  runAdd,
	}

	cmd.Flags().String("duration", "", "Estimated duration, e.g. 15min, 1h (required)")
	cmd.Flags().StringP("priority", "p", "norm", "Priority: idle, norm, high, crit")
	cmd.Flags().StringP("recurrence", "r", "", "Recurrence: ^1, ^1d, ^{3,2d} (required)")
	cmd.Flags().StringP("slot", "s", "", "Preferred slot: 08:00, 08:00-12:00, Wed, Mon-Fri (required)")

	cmd.MarkFlagRequired("duration")
	cmd.MarkFlagRequired("recurrence")
	cmd.MarkFlagRequired("slot")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	duration, _ := cmd.Flags().GetString("duration")
	priority, _ := cmd.Flags().GetString("priority")
	recurrence, _ := cmd.Flags().GetString("recurrence")
	slot, _ := cmd.Flags().GetString("slot")

	id := args[0]
	description := strings.TrimSpace(strings.Join(args[1:], " "))

	bp, err := model.ParseBlueprint(id, description, duration, priority, recurrence, slot)
	if err != nil {
		exitErr("add", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Put(cmd.Context(), store.PutParams{Book: cfg.Book, Blueprint: bp})
	if err != nil {
		exitErr("add", err)
	}
	logger.Debug().Str("book", rec.Book).Str("blueprint", bp.ID).Int("position", rec.Position).Msg("blueprint stored")

	if formatFlag == "text" {
		fmt.Fprintln(cmd.OutOrStdout(), rec.Blueprint.String())
		return
	}
	printJSON(cmd, rec)
}
