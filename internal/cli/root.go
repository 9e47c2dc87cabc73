// Package cli implements the planner CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/blueprint-planner/internal/config"
	"github.com/rcliao/blueprint-planner/internal/logging"
	"github.com/rcliao/blueprint-planner/internal/model"
	"github.com/rcliao/blueprint-planner/internal/store"
)

var (
	cfgFile    string
	formatFlag string

	v      = config.New()
	cfg    config.Config
	logger = zerolog.Nop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Plan recurring tasks a week ahead",
	Long: `A small CLI that keeps books of recurring-task blueprints and expands them
into a chronological plan for the next seven days. SQLite-backed, single binary.`,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: $HOME/.planner.yaml)")
	pf.StringP("db", "d", "", "Database path (default: $PLANNER_DB or ~/.planner/planner.db)")
	pf.StringP("book", "b", "", "Book name (default: $PLANNER_BOOK or \"default\")")
	pf.String("timezone", "", "IANA timezone for planning (default: local)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")

	v.BindPFlag(config.KeyDB, pf.Lookup("db"))
	v.BindPFlag(config.KeyBook, pf.Lookup("book"))
	v.BindPFlag(config.KeyTimezone, pf.Lookup("timezone"))
	v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.Setup(cfg.LogLevel, cmd.ErrOrStderr())
	logger.Debug().
		Str("config", v.ConfigFileUsed()).
		Str("db", cfg.DBPath).
		Str("book", cfg.Book).
		Msg("config loaded")
	return nil
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath)
}

func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		exitErr("timezone", err)
	}
	return loc
}

// Accepted --at layouts. Layouts without an offset are read in the
// configured timezone.
var atLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseAt(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range atLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (use RFC 3339 or 2006-01-02T15:04)", s)
}

func parsePriorityFlag(s string) *model.Priority {
	if s == "" {
		return nil
	}
	p, err := model.ParsePriority(s)
	if err != nil {
		exitErr("priority", err)
	}
	return &p
}

func printJSON(cmd *cobra.Command, val any) {
	b, _ := json.MarshalIndent(val, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	logger.Debug().Err(err).Str("op", msg).Msg("command failed")
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
