package main

import (
	"fmt"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
	"github.com/Zuo-Peng/kra-stat/internal/render"
	"github.com/Zuo-Peng/kra-stat/internal/stats"
	"github.com/spf13/cobra"
)

func summaryCmd(g *globalFlags) *cobra.Command {
	var year int
	var daily bool
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Max, total and average painting minutes for a year",
		Long: `Summarises the logical days of a year up to today: the longest day, the total,
and the average over days with at least one logged session. --from and --to
(YYYY-MM-DD) replace the year's first and last day. With --daily the per-day
minutes are printed as well, one line per day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			h, err := loadHistory(cfg)
			if err != nil {
				return err
			}

			today := dayrange.Today(cfg.DayStartHour, now().In(cfg.Location()))
			if year == 0 {
				year = today.Year
			}
			from, to := dayrange.YearBounds(dayrange.Date{Year: year, Month: 1, Day: 1})
			if to.After(today) {
				to = today
			}
			if fromStr != "" {
				if from, err = dayrange.ParseDate(fromStr); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if toStr != "" {
				if to, err = dayrange.ParseDate(toStr); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			opts := render.Options{TSV: !isTerminal(out)}
			if from.After(to) {
				if fromStr != "" || toStr != "" {
					return fmt.Errorf("--from %s is after --to %s: %w", from, to, dayrange.ErrInvalidRange)
				}
				return render.Summary(out, stats.Summary{}, opts)
			}

			totals, err := stats.DailyTotals(h, cfg.DayStartHour, from, to, cfg.Location())
			if err != nil {
				return err
			}
			if err := render.Summary(out, stats.Summarize(totals), opts); err != nil {
				return err
			}
			if daily {
				return render.Days(out, totals, today, opts)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to summarise (default: the current year)")
	cmd.Flags().StringVar(&fromStr, "from", "", "First day, YYYY-MM-DD (default: January 1st of --year)")
	cmd.Flags().StringVar(&toStr, "to", "", "Last day, YYYY-MM-DD (default: today or December 31st of --year)")
	cmd.Flags().BoolVar(&daily, "daily", false, "Also print minutes for every day of the year")
	return cmd
}
