package history

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates the history could not be read at all.
	ErrSourceUnavailable = errors.New("history source unavailable")

	// ErrMalformedLine indicates a line that does not have exactly four fields.
	ErrMalformedLine = errors.New("malformed line")

	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrMissingResourceID = errors.New("missing document id")
	ErrMissingDuration   = errors.New("missing duration")
	ErrInvalidDuration   = errors.New("invalid duration")
)

// ParseError reports a line that could not be turned into a Record.
// Kind is one of the Err* sentinels; Err is the underlying cause, if any.
type ParseError struct {
	LineNo int // 1-based position in the source, 0 when parsed standalone
	Line   string
	Kind   error
	Err    error
}

func newParseError(line string, kind, cause error) *ParseError {
	return &ParseError{Line: line, Kind: kind, Err: cause}
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v: '%s'", e.Kind, e.Line)
	if e.LineNo > 0 {
		msg = fmt.Sprintf("line %d: %s", e.LineNo, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// SourceError reports a history source that could not be opened or read.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSourceUnavailable, e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}
