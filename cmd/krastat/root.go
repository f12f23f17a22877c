package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Zuo-Peng/kra-stat/internal/config"
	"github.com/Zuo-Peng/kra-stat/internal/history"
	"github.com/Zuo-Peng/kra-stat/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// now is replaced in tests.
var now = time.Now

type globalFlags struct {
	configPath  string
	historyPath string
	dayStart    int
	logLevel    string
	logJSON     bool
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:           "krastat",
		Short:         "Painting time statistics from the Krita activity history",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default ~/.config/krastat/config.toml)")
	cmd.PersistentFlags().StringVar(&g.historyPath, "history", "", "History file (overrides history_path)")
	cmd.PersistentFlags().IntVar(&g.dayStart, "day-start", -1, "Hour a day begins at, 0-23 (overrides day_start_hour)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "Write logs to stderr as JSON")

	cmd.AddCommand(daysCmd(&g))
	cmd.AddCommand(summaryCmd(&g))
	cmd.AddCommand(resourcesCmd(&g))
	cmd.AddCommand(doctorCmd(&g))
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, g *globalFlags) (*config.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home dir: %w", err)
	}
	path := g.configPath
	if path == "" {
		path = config.DefaultPath(home)
	}
	cfg, err := config.Read(home, path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if g.historyPath != "" {
		cfg.HistoryPath = config.ExpandHome(g.historyPath, home)
	}
	if cmd.Flags().Changed("day-start") {
		cfg.DayStartHour = g.dayStart
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	logging.Init(cmd.ErrOrStderr(), g.logJSON, logging.ParseLevel(cfg.LogLevel))
	slog.Debug("config loaded", "path", path, "history", cfg.HistoryPath, "day_start_hour", cfg.DayStartHour)
	return cfg, nil
}

func loadHistory(cfg *config.Config) (*history.History, error) {
	h, err := history.Load(history.FileSource(cfg.HistoryPath),
		history.WithLocation(cfg.Location()),
		history.WithLogger(slog.Default()),
	)
	if errors.Is(err, history.ErrSourceUnavailable) {
		return nil, fmt.Errorf("no history found at %s (is the Krita plugin logging?): %w", cfg.HistoryPath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return h, nil
}

// isTerminal reports whether w is an interactive terminal; output to pipes is TSV.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
