// Package history loads the painting activity log and answers range queries over it.
//
// Each line is
//
//	<YYYY-MM-DD HH:MM:SS>##<document path or empty>##<document id>##<seconds>
//
// A line with an empty path takes the name of the nearest later line with the
// same id. When no later line names the id, the path stays empty.
package history

import (
	"errors"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
)

// History is the ordered, repaired set of records. It is not modified after Load.
type History struct {
	records []*Record
}

type loadOptions struct {
	loc    *time.Location
	logger *slog.Logger
}

type Option func(*loadOptions)

// WithLocation sets the location naive timestamps are read in. Default time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *loadOptions) { o.loc = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

type numberedLine struct {
	no   int
	text string
}

// Load reads src, parses every non-blank line and backfills missing paths.
// The first bad line aborts the whole load.
func Load(src Source, opts ...Option) (*History, error) {
	o := loadOptions{loc: time.Local, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	content, err := readAll(src)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	records := make([]*Record, 0, len(lines))
	latestPath := make(map[string]string)
	var filled, unresolved int

	// Newest line first: an absent path takes the nearest later name for its id.
	for i := len(lines) - 1; i >= 0; i-- {
		rec, err := ParseLine(lines[i].text, o.loc)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.LineNo = lines[i].no
			}
			return nil, err
		}
		if rec.HasPath {
			latestPath[rec.ID] = rec.Path
		} else if p, ok := latestPath[rec.ID]; ok {
			rec.Path, rec.HasPath = p, true
			filled++
		} else {
			unresolved++
		}
		records = append(records, rec)
	}
	slices.Reverse(records)

	o.logger.Debug("history loaded",
		"source", src.String(),
		"records", len(records),
		"ids", len(latestPath),
		"paths_backfilled", filled,
		"paths_unresolved", unresolved,
	)
	return &History{records: records}, nil
}

func splitLines(content string) []numberedLine {
	var out []numberedLine
	for i, l := range strings.Split(content, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, numberedLine{no: i + 1, text: l})
	}
	return out
}

// New builds a History from records already in log order, without backfill.
func New(records []*Record) *History {
	return &History{records: slices.Clone(records)}
}

func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of the record slice in log order.
func (h *History) Records() []*Record {
	return slices.Clone(h.records)
}

// All yields every record in log order.
func (h *History) All() iter.Seq[*Record] {
	return slices.Values(h.records)
}

// Between yields the records whose time lies in r, both ends included, in log order.
func (h *History) Between(r dayrange.Range) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, rec := range h.records {
			if !r.Contains(rec.Time) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Span returns the earliest and latest record time, and false for an empty history.
// Records are in log order, which is not guaranteed to be time order.
func (h *History) Span() (first, last time.Time, ok bool) {
	for i, rec := range h.records {
		if i == 0 || rec.Time.Before(first) {
			first = rec.Time
		}
		if i == 0 || rec.Time.After(last) {
			last = rec.Time
		}
	}
	return first, last, len(h.records) > 0
}
