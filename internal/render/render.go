package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
	"github.com/Zuo-Peng/kra-stat/internal/stats"
	"github.com/mattn/go-runewidth"
)

type Options struct {
	TSV   bool // tab-separated output for pipes
	Width int  // max display width of a document path (0 = no limit)
}

// Days writes one line per logical day. The line for today is labelled "today".
func Days(w io.Writer, totals []stats.DayTotal, today dayrange.Date, opts Options) error {
	for _, d := range totals {
		var err error
		if opts.TSV {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				d.Date, d.Date.Weekday().String()[:3],
				d.Range.Start.Format(time.DateTime), d.Range.End.Format(time.DateTime),
				stats.Minutes(d.Seconds))
		} else {
			label := d.Date.String()
			if d.Date == today {
				label = "today"
			}
			_, err = fmt.Fprintf(w, "%-10s %s: %s: %d minutes\n",
				label, d.Date.Weekday().String()[:3], d.Range, stats.Minutes(d.Seconds))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Summary writes max, sum and average in whole minutes.
func Summary(w io.Writer, s stats.Summary, opts Options) error {
	if opts.TSV {
		_, err := fmt.Fprintf(w, "max\t%d\nsum\t%d\naverage\t%d\ndays\t%d\nactive_days\t%d\n",
			stats.Minutes(s.Max), stats.Minutes(s.Sum), stats.Minutes(s.Average), s.Days, s.ActiveDays)
		return err
	}
	_, err := fmt.Fprintf(w, "max: %d, sum: %d, average: %d (minutes, %d of %d days active)\n",
		stats.Minutes(s.Max), stats.Minutes(s.Sum), stats.Minutes(s.Average), s.ActiveDays, s.Days)
	return err
}

// Resources writes one line per document, path first.
func Resources(w io.Writer, totals []stats.ResourceTotal, opts Options) error {
	width := 0
	if !opts.TSV {
		for _, rt := range totals {
			width = max(width, runewidth.StringWidth(fitWidth(displayPath(rt), opts.Width)))
		}
	}
	for _, rt := range totals {
		path := displayPath(rt)
		var err error
		if opts.TSV {
			_, err = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				rt.ID, oneLine(path), rt.Sessions, stats.Minutes(rt.Seconds), rt.Last.Format(time.DateTime))
		} else {
			_, err = fmt.Fprintf(w, "%s  %6d min  %4d sessions  last %s\n",
				runewidth.FillRight(fitWidth(path, opts.Width), width),
				stats.Minutes(rt.Seconds), rt.Sessions, rt.Last.Format(time.DateOnly))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func displayPath(rt stats.ResourceTotal) string {
	if rt.HasPath {
		return rt.Path
	}
	return "(unnamed " + rt.ID + ")"
}

// fitWidth truncates s to maxWidth display columns, keeping the end of the
// path since the file name is the informative part.
func fitWidth(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	const ellipsis = "..."
	keep := maxWidth - len(ellipsis)
	if keep <= 0 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	runes := []rune(s)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > keep {
			break
		}
		w += rw
		i--
	}
	return ellipsis + string(runes[i:])
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
