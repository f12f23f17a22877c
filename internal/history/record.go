package history

import (
	"strconv"
	"strings"
	"time"
)

const (
	// TimeLayout is the timestamp format of the first field.
	TimeLayout = time.DateTime
	// Delimiter separates the four fields of a line.
	Delimiter = "##"
	numFields = 4
)

// Record is one logged work session on a document.
type Record struct {
	Time     time.Time
	Path     string // document name; empty when HasPath is false
	HasPath  bool
	ID       string // stable document id, never empty
	Duration int64  // seconds
}

// DurationValue returns the session length as a time.Duration.
func (r *Record) DurationValue() time.Duration {
	return time.Duration(r.Duration) * time.Second
}

// ParseLine parses a single history line. Times are read as wall-clock time in loc
// (time.Local when nil).
func ParseLine(line string, loc *time.Location) (*Record, error) {
	if loc == nil {
		loc = time.Local
	}
	line = strings.TrimSpace(line)

	fields := strings.Split(line, Delimiter)
	if len(fields) != numFields {
		return nil, newParseError(line, ErrMalformedLine, nil)
	}
	rawTime, path, id, rawDuration := fields[0], fields[1], strings.TrimSpace(fields[2]), fields[3]

	ts, err := time.ParseInLocation(TimeLayout, rawTime, loc)
	if err != nil {
		return nil, newParseError(line, ErrInvalidTimestamp, err)
	}
	if id == "" {
		return nil, newParseError(line, ErrMissingResourceID, nil)
	}
	if rawDuration == "" {
		return nil, newParseError(line, ErrMissingDuration, nil)
	}
	seconds, err := strconv.ParseUint(rawDuration, 10, 32)
	if err != nil {
		return nil, newParseError(line, ErrInvalidDuration, err)
	}

	return &Record{
		Time:     ts,
		Path:     path,
		HasPath:  path != "",
		ID:       id,
		Duration: int64(seconds),
	}, nil
}

// FormatLine renders r in the on-disk line format.
func FormatLine(r *Record) string {
	path := ""
	if r.HasPath {
		path = r.Path
	}
	return strings.Join([]string{
		r.Time.Format(TimeLayout),
		path,
		r.ID,
		strconv.FormatInt(r.Duration, 10),
	}, Delimiter)
}
