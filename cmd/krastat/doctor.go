package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Zuo-Peng/kra-stat/internal/history"
	"github.com/spf13/cobra"
)

func doctorCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config and history file, show stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "=== Config ===")
			fmt.Fprintf(out, "  History:        %s\n", cfg.HistoryPath)
			fmt.Fprintf(out, "  Day starts at:  %02d:00\n", cfg.DayStartHour)
			fmt.Fprintf(out, "  Timezone:       %s\n", cfg.Location())

			fmt.Fprintln(out, "\n=== History File ===")
			info, err := os.Stat(cfg.HistoryPath)
			if err != nil {
				fmt.Fprintf(out, "  Status: NOT FOUND (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "  Size: %.1f KB\n", float64(info.Size())/1024)

			h, err := loadHistory(cfg)
			if err != nil {
				reportLoadError(out, err)
				return nil
			}

			fmt.Fprintln(out, "\n=== Records ===")
			fmt.Fprintf(out, "  Records: %d\n", h.Len())
			if first, last, ok := h.Span(); ok {
				fmt.Fprintf(out, "  From:    %s\n", first.Format(time.DateTime))
				fmt.Fprintf(out, "  To:      %s\n", last.Format(time.DateTime))
			}

			ids := make(map[string]struct{})
			unnamed := 0
			var logged time.Duration
			for rec := range h.All() {
				ids[rec.ID] = struct{}{}
				if !rec.HasPath {
					unnamed++
				}
				logged += rec.DurationValue()
			}
			fmt.Fprintf(out, "  Documents: %d\n", len(ids))
			fmt.Fprintf(out, "  Logged:    %s\n", logged)
			if unnamed == 0 {
				fmt.Fprintln(out, "  Paths: OK (all named)")
			} else {
				fmt.Fprintf(out, "  Paths: %d records have no known name\n", unnamed)
			}
			return nil
		},
	}
}

func reportLoadError(w io.Writer, err error) {
	var pe *history.ParseError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintf(w, "  Status: INVALID at line %d (%v)\n", pe.LineNo, pe.Kind)
		fmt.Fprintf(w, "  Line:   %s\n", pe.Line)
	case errors.Is(err, history.ErrSourceUnavailable):
		fmt.Fprintf(w, "  Status: UNREADABLE (%v)\n", err)
	default:
		fmt.Fprintf(w, "  Status: ERROR (%v)\n", err)
	}
}
