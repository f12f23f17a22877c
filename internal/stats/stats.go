// Package stats folds history records into per-day and per-document totals.
// All totals are exact integer seconds; Minutes floors.
package stats

import (
	"cmp"
	"iter"
	"slices"
	"time"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
	"github.com/Zuo-Peng/kra-stat/internal/history"
)

// DayTotal is the time spent during one logical day.
type DayTotal struct {
	Date     dayrange.Date
	Range    dayrange.Range
	Seconds  int64
	Sessions int // records logged during the day, zero-length ones included
}

// DailyTotals returns one entry per logical day in [from, to], including days
// with nothing logged.
func DailyTotals(h *history.History, startHour int, from, to dayrange.Date, loc *time.Location) ([]DayTotal, error) {
	span, err := dayrange.SpanRange(startHour, from, to, loc)
	if err != nil {
		return nil, err
	}
	days, err := dayrange.Days(startHour, from, to, loc)
	if err != nil {
		return nil, err
	}

	byDay := make(map[dayrange.Date]DayTotal)
	for rec := range h.Between(span) {
		d := dayrange.DayOf(startHour, rec.Time)
		t := byDay[d]
		t.Seconds += rec.Duration
		t.Sessions++
		byDay[d] = t
	}

	totals := make([]DayTotal, 0, from.DaysUntil(to)+1)
	for d, r := range days {
		t := byDay[d]
		t.Date, t.Range = d, r
		totals = append(totals, t)
	}
	return totals, nil
}

// Summary holds the max, sum and average of a set of day totals.
type Summary struct {
	Days       int
	ActiveDays int   // days with at least one record
	Sum        int64 // seconds
	Max        int64
	Average    int64 // Sum / ActiveDays, 0 when nothing was logged
}

func Summarize(totals []DayTotal) Summary {
	s := Summary{Days: len(totals)}
	for _, t := range totals {
		s.Sum += t.Seconds
		s.Max = max(s.Max, t.Seconds)
		if t.Sessions > 0 {
			s.ActiveDays++
		}
	}
	if s.ActiveDays > 0 {
		s.Average = s.Sum / int64(s.ActiveDays)
	}
	return s
}

// Sum totals the durations of seq.
func Sum(seq iter.Seq[*history.Record]) int64 {
	var total int64
	for rec := range seq {
		total += rec.Duration
	}
	return total
}

// ResourceTotal is the time spent on one document.
type ResourceTotal struct {
	ID       string
	Path     string
	HasPath  bool
	Seconds  int64
	Sessions int
	Last     time.Time
}

// ResourceTotals groups seq by document id, largest total first. The path
// shown for an id is the one on its latest named record.
func ResourceTotals(seq iter.Seq[*history.Record]) []ResourceTotal {
	byID := make(map[string]*ResourceTotal)
	named := make(map[string]time.Time)

	for rec := range seq {
		rt, ok := byID[rec.ID]
		if !ok {
			rt = &ResourceTotal{ID: rec.ID}
			byID[rec.ID] = rt
		}
		rt.Seconds += rec.Duration
		rt.Sessions++
		if rec.Time.After(rt.Last) {
			rt.Last = rec.Time
		}
		if rec.HasPath {
			if at, seen := named[rec.ID]; !seen || !rec.Time.Before(at) {
				named[rec.ID] = rec.Time
				rt.Path, rt.HasPath = rec.Path, true
			}
		}
	}

	out := make([]ResourceTotal, 0, len(byID))
	for _, rt := range byID {
		out = append(out, *rt)
	}
	slices.SortFunc(out, func(a, b ResourceTotal) int {
		if c := cmp.Compare(b.Seconds, a.Seconds); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Minutes converts seconds to whole minutes, rounding down.
func Minutes(seconds int64) int64 {
	return seconds / 60
}
