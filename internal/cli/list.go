package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the blueprints of a book",
		Run:   runList,
	}

	cmd.Flags().StringP("priority", "p", "", "Only this priority")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")
	cmd.Flags().Bool("ids-only", false, "Only output blueprint ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	priority, _ := cmd.Flags().GetString("priority")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.List(cmd.Context(), store.ListParams{
		Book:     cfg.Book,
		Priority: parsePriorityFlag(priority),
		Limit:    limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case idsOnly:
		for _, r := range records {
			fmt.Fprintln(out, r.Blueprint.ID)
		}
	case formatFlag == "text":
		for _, r := range records {
			fmt.Fprintln(out, r.Blueprint.String())
		}
	default:
		if records == nil {
			records = []store.Record{}
		}
		printJSON(cmd, records)
	}
}
