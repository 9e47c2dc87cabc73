// Package config resolves planner settings from flags, PLANNER_* environment
// variables and an optional YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rcliao/blueprint-planner/internal/scheduler"
)

// Keys shared by flags, env vars and the config file.
const (
	KeyDB            = "db"
	KeyBook          = "book"
	KeyTimezone      = "timezone"
	KeyLookaheadDays = "lookahead_days"
	KeyJournalPolicy = "journal_policy"
	KeyLogLevel      = "log_level"
)

// EnvPrefix prefixes every environment override, e.g. PLANNER_DB.
const EnvPrefix = "PLANNER"

// Config holds resolved settings.
type Config struct {
	DBPath        string `mapstructure:"db" validate:"required"`
	Book          string `mapstructure:"book" validate:"required"`
	Timezone      string `mapstructure:"timezone"`
	LookaheadDays int    `mapstructure:"lookahead_days" validate:"min=1,max=366"`
	JournalPolicy string `mapstructure:"journal_policy" validate:"oneof=ignore exact same-day"`
	LogLevel      string `mapstructure:"log_level"`
}

var validate = validator.New()

// DefaultDBPath returns ~/.planner/planner.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".planner", "planner.db")
}

// New returns a viper instance with planner defaults and env binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDB, DefaultDBPath())
	v.SetDefault(KeyBook, "default")
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyLookaheadDays, scheduler.DefaultLookaheadDays)
	v.SetDefault(KeyJournalPolicy, string(scheduler.IgnoreJournal))
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads cfgFile into v, or $HOME/.planner.yaml when cfgFile is
// empty. A missing default file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".planner")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Location resolves the configured timezone. Empty means time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Policy returns the configured journal policy.
func (c Config) Policy() (scheduler.JournalPolicy, error) {
	return scheduler.ParseJournalPolicy(c.JournalPolicy)
}
