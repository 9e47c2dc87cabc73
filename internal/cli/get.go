package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a blueprint",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Get(cmd.Context(), store.GetParams{Book: cfg.Book, ID: args[0]})
	if err != nil {
		exitErr("get", err)
	}

	if formatFlag == "text" {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, rec.Blueprint.String())
		if rec.Blueprint.Description != "" {
			fmt.Fprintln(out, rec.Blueprint.Description)
		}
		return
	}
	printJSON(cmd, rec)
}
