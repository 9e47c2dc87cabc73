package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/store"
)

func init() {
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Book management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Run:   runBookList,
	}

	bookCmd.AddCommand(listCmd)
	RootCmd.AddCommand(bookCmd)
}

func runBookList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.ListBooks(cmd.Context())
	if err != nil {
		exitErr("list books", err)
	}

	if formatFlag == "text" {
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d blueprints\t%d journal entries\n", r.Book, r.Blueprints, r.Journal)
		}
		return
	}
	if rows == nil {
		rows = []store.BookStats{}
	}
	printJSON(cmd, rows)
}
