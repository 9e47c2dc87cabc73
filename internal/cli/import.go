package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/bookfile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a YAML book file",
		Long: `Import blueprints and journal entries from a YAML book file (or stdin).
Expects the format produced by export. The book named in the file is used
unless --book is given.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("import", err)
		}
		defer f.Close()
		r = f
	}

	name, book, journal, err := bookfile.Decode(r)
	if err != nil {
		exitErr("parse book file", err)
	}

	target := cfg.Book
	if name != "" && !RootCmd.PersistentFlags().Changed("book") {
		target = name
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), target, book, journal)
	if err != nil {
		exitErr("import", err)
	}
	logger.Info().Str("book", target).Int("blueprints", imported).Int("journal", journal.Len()).Msg("imported")

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"book":%q,"imported":%d}`+"\n", target, imported)
}
