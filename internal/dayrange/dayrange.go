// Package dayrange maps instants to logical days that begin at a configurable
// hour instead of midnight, and logical days back to inclusive time ranges.
//
// Ranges are closed on both ends at one-second resolution, so membership is a
// single start <= t <= end comparison.
package dayrange

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

var (
	// ErrInvalidConfiguration indicates a day start hour outside [0, 24).
	ErrInvalidConfiguration = errors.New("invalid day start hour")

	// ErrInvalidRange indicates an empty or reversed span of days.
	ErrInvalidRange = errors.New("invalid day span")
)

// Range is an inclusive [Start, End] span covering one or more logical days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, both ends included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s ~ %s", r.Start.Format(time.DateTime), r.End.Format(time.DateTime))
}

// ValidateHour returns ErrInvalidConfiguration unless 0 <= hour < 24.
func ValidateHour(hour int) error {
	if hour < 0 || hour >= 24 {
		return fmt.Errorf("%w: %d (must be 0-23)", ErrInvalidConfiguration, hour)
	}
	return nil
}

// DayOf returns the logical day t belongs to: t's own date when its hour is
// at or after startHour, otherwise the previous date.
func DayOf(startHour int, t time.Time) Date {
	d := DateOf(t)
	if t.Hour() >= startHour {
		return d
	}
	return d.AddDays(-1)
}

// DayRange returns the inclusive range of logical day d: from d at startHour
// to one second before startHour on the next date.
func DayRange(startHour int, d Date, loc *time.Location) (Range, error) {
	if err := ValidateHour(startHour); err != nil {
		return Range{}, err
	}
	return dayRange(startHour, d, loc), nil
}

func dayRange(startHour int, d Date, loc *time.Location) Range {
	// Calendar arithmetic rather than +24h so DST transitions keep the start hour.
	start := d.At(startHour, loc)
	next := d.AddDays(1).At(startHour, loc)
	return Range{Start: start, End: next.Add(-time.Second)}
}

// SpanRange returns the range from the start of from to the end of to.
func SpanRange(startHour int, from, to Date, loc *time.Location) (Range, error) {
	if err := ValidateHour(startHour); err != nil {
		return Range{}, err
	}
	if from.After(to) {
		return Range{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, from, to)
	}
	return Range{
		Start: dayRange(startHour, from, loc).Start,
		End:   dayRange(startHour, to, loc).End,
	}, nil
}

// Today returns the logical day containing now.
func Today(startHour int, now time.Time) Date {
	return DayOf(startHour, now)
}

// RecentRange covers the n logical days ending with today, in loc.
func RecentRange(startHour, n int, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.Local
	}
	return RecentRangeAt(startHour, n, time.Now().In(loc))
}

// RecentRangeAt is RecentRange with an explicit current instant.
func RecentRangeAt(startHour, n int, now time.Time) (Range, error) {
	if n < 1 {
		return Range{}, fmt.Errorf("%w: need at least one day, got %d", ErrInvalidRange, n)
	}
	today := Today(startHour, now)
	return SpanRange(startHour, today.AddDays(1-n), today, now.Location())
}

// Days yields every date in [from, to] with its range, in ascending order.
// The sequence is empty when from is after to and may be ranged over repeatedly.
func Days(startHour int, from, to Date, loc *time.Location) (iter.Seq2[Date, Range], error) {
	if err := ValidateHour(startHour); err != nil {
		return nil, err
	}
	return func(yield func(Date, Range) bool) {
		for d := from; !d.After(to); d = d.AddDays(1) {
			if !yield(d, dayRange(startHour, d, loc)) {
				return
			}
		}
	}, nil
}

// YearBounds returns the first and last date of d's year.
func YearBounds(d Date) (Date, Date) {
	return Date{Year: d.Year, Month: time.January, Day: 1},
		Date{Year: d.Year, Month: time.December, Day: 31}
}
