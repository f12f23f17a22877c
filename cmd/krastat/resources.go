package main

import (
	"fmt"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
	"github.com/Zuo-Peng/kra-stat/internal/render"
	"github.com/Zuo-Peng/kra-stat/internal/stats"
	"github.com/spf13/cobra"
)

func resourcesCmd(g *globalFlags) *cobra.Command {
	var last, limit, width int

	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"files"},
		Short:   "Show painting time per document over the last N days",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("last") {
				last = cfg.RecentDays
			}

			h, err := loadHistory(cfg)
			if err != nil {
				return err
			}

			r, err := dayrange.RecentRangeAt(cfg.DayStartHour, last, now().In(cfg.Location()))
			if err != nil {
				return fmt.Errorf("--last: %w", err)
			}
			totals := stats.ResourceTotals(h.Between(r))
			if limit > 0 && len(totals) > limit {
				totals = totals[:limit]
			}

			out := cmd.OutOrStdout()
			return render.Resources(out, totals, render.Options{TSV: !isTerminal(out), Width: width})
		},
	}

	cmd.Flags().IntVar(&last, "last", 30, "Number of days to include, ending today (default recent_days)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Max documents (0 = no limit)")
	cmd.Flags().IntVar(&width, "width", 60, "Max display width of a path (0 = no limit)")
	return cmd
}
