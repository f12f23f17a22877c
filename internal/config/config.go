package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
)

type Config struct {
	HistoryPath  string `toml:"history_path"`
	DayStartHour int    `toml:"day_start_hour"`
	Timezone     string `toml:"timezone"` // IANA name, empty = local
	RecentDays   int    `toml:"recent_days"`
	LogLevel     string `toml:"log_level"`

	loc *time.Location
}

// DefaultPath returns ~/.config/krastat/config.toml.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "krastat", "config.toml")
}

func Default(home string) *Config {
	return &Config{
		HistoryPath:  filepath.Join(home, ".kra_history", "history"),
		DayStartHour: 6,
		RecentDays:   30,
		LogLevel:     "warn",
	}
}

// Read applies the TOML file at cfgPath over the defaults for home without
// validating, so callers can override fields first. A missing file is not an error.
func Read(home, cfgPath string) (*Config, error) {
	cfg := Default(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", cfgPath, err)
	}

	// expand ~ in paths
	cfg.HistoryPath = ExpandHome(cfg.HistoryPath, home)
	return cfg, nil
}

// Validate checks the values and resolves the timezone.
func (c *Config) Validate() error {
	if err := dayrange.ValidateHour(c.DayStartHour); err != nil {
		return fmt.Errorf("day_start_hour: %w", err)
	}
	if c.RecentDays < 1 {
		return fmt.Errorf("recent_days must be at least 1, got %d", c.RecentDays)
	}
	if c.HistoryPath == "" {
		return errors.New("history_path is empty")
	}
	loc := time.Local
	if c.Timezone != "" {
		l, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		loc = l
	}
	c.loc = loc
	return nil
}

// Location is the zone log timestamps are read in.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// ExpandHome replaces a leading "~/" with home.
func ExpandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
