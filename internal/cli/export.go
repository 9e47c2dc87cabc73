package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/bookfile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a book as YAML",
		Long:  "Export the blueprints and journal of a book as a YAML book file, to stdout or --output.",
		Run:   runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	book, journal, err := s.ExportAll(cmd.Context(), cfg.Book)
	if err != nil {
		exitErr("export", err)
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			exitErr("export", err)
		}
		defer f.Close()
		w = f
	}

	if err := bookfile.Encode(w, cfg.Book, book, journal); err != nil {
		exitErr("export", err)
	}
}
