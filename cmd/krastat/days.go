package main

import (
	"fmt"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
	"github.com/Zuo-Peng/kra-stat/internal/render"
	"github.com/Zuo-Peng/kra-stat/internal/stats"
	"github.com/spf13/cobra"
)

func daysCmd(g *globalFlags) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show painting minutes for each of the last N days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("last") {
				last = cfg.RecentDays
			}
			if last < 1 {
				return fmt.Errorf("--last must be at least 1, got %d", last)
			}

			h, err := loadHistory(cfg)
			if err != nil {
				return err
			}

			today := dayrange.Today(cfg.DayStartHour, now().In(cfg.Location()))
			totals, err := stats.DailyTotals(h, cfg.DayStartHour, today.AddDays(1-last), today, cfg.Location())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return render.Days(out, totals, today, render.Options{TSV: !isTerminal(out)})
		},
	}

	cmd.Flags().IntVar(&last, "last", 30, "Number of days to show, ending today (default recent_days)")
	return cmd
}
