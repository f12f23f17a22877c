package history

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/kra-stat/internal/dayrange"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadString(t *testing.T, content string) (*History, error) {
	t.Helper()
	return Load(ReaderSource("fixture", strings.NewReader(content)), WithLocation(time.UTC))
}

func paths(h *History) []string {
	var out []string
	for rec := range h.All() {
		if rec.HasPath {
			out = append(out, rec.Path)
		} else {
			out = append(out, "<absent>")
		}
	}
	return out
}

func TestLoad_BackfillTakesNearestLaterName(t *testing.T) {
	id := uuid.NewString()
	content := strings.Join([]string{
		"2024-03-07 10:00:00##A.kra##" + id + "##10",
		"2024-03-07 11:00:00####" + id + "##20",
		"2024-03-07 12:00:00##B.kra##" + id + "##30",
		"2024-03-07 13:00:00####" + id + "##5",
	}, "\n")

	h, err := loadString(t, content)
	require.NoError(t, err)

	// The newest line has no later name to borrow, so it stays absent.
	assert.Equal(t, []string{"A.kra", "B.kra", "B.kra", "<absent>"}, paths(h))

	var durations []int64
	for rec := range h.All() {
		durations = append(durations, rec.Duration)
	}
	assert.Equal(t, []int64{10, 20, 30, 5}, durations, "log order is preserved")
}

func TestLoad_BackfillIsPerID(t *testing.T) {
	content := `
        2024-03-07 22:48:48####d18810fd-f9de-4ea6-a142-587ff2d7507a##180
        2024-03-07 22:49:48##h1ello.kra##d18810fd-f9de-4ea6-ae42-587ff2d7507a##180
        2024-03-07 22:50:48####d18810fd-f9de-4ea6-ae42-587ff2d7507a##180
        2024-03-07 22:51:48##hello.kra##d18810fd-f9de-4ea6-ae42-587ff2d7507a##180
        `
	h, err := loadString(t, content)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, []string{"<absent>", "h1ello.kra", "hello.kra", "hello.kra"}, paths(h))
}

func TestLoad_GapBeforeFirstNameIsFilledFromLater(t *testing.T) {
	id := uuid.NewString()
	content := "2024-01-01 08:00:00####" + id + "##60\n" +
		"2024-01-01 09:00:00##first.kra##" + id + "##60\n"
	h, err := loadString(t, content)
	require.NoError(t, err)
	assert.Equal(t, []string{"first.kra", "first.kra"}, paths(h))
}

func TestLoad_SkipsBlankLinesAndCRLF(t *testing.T) {
	id := uuid.NewString()
	content := "\r\n2024-01-01 08:00:00##a.kra##" + id + "##60\r\n   \r\n\n2024-01-01 09:00:00####" + id + "##30\r\n"
	h, err := loadString(t, content)
	require.NoError(t, err)
	require.Equal(t, 2, h.Len())
	assert.Equal(t, []string{"a.kra", "<absent>"}, paths(h))
}

func TestLoad_Empty(t *testing.T) {
	h, err := loadString(t, "\n  \n")
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
	_, _, ok := h.Span()
	assert.False(t, ok)
}

func TestLoad_FailsFastWithLineNumber(t *testing.T) {
	id := uuid.NewString()
	content := strings.Join([]string{
		"2024-01-01 08:00:00##a.kra##" + id + "##60",
		"",
		"2024-01-01 09:00:00##a.kra####60",
		"2024-01-01 10:00:00##a.kra##" + id + "##60",
	}, "\n")

	h, err := loadString(t, content)
	assert.Nil(t, h)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingResourceID)
	assert.NotErrorIs(t, err, ErrSourceUnavailable)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.LineNo)
	assert.Equal(t, "2024-01-01 09:00:00##a.kra####60", pe.Line)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoad_MalformedLine(t *testing.T) {
	_, err := loadString(t, "2024-01-01 08:00:00##a.kra##60\n")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestLoad_FileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	id := uuid.NewString()
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01 08:00:00##a.kra##"+id+"##60\n"), 0o644))

	h, err := Load(FileSource(path), WithLocation(time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())
}

func TestLoad_SourceUnavailable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		src  Source
	}{
		{"missing file", FileSource(filepath.Join(dir, "nope"))},
		{"directory", FileSource(dir)},
		{"read failure", ReaderSource("broken", failingReader{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSourceUnavailable)
			assert.NotErrorIs(t, err, ErrMalformedLine)

			var se *SourceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.src.String(), se.Source)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestBetween(t *testing.T) {
	id := uuid.NewString()
	content := strings.Join([]string{
		"2023-01-15 05:59:59##a.kra##" + id + "##1",
		"2023-01-15 06:00:00##a.kra##" + id + "##2",
		"2023-01-15 23:00:00##a.kra##" + id + "##3",
		"2023-01-16 05:59:59##a.kra##" + id + "##4",
		"2023-01-16 06:00:00##a.kra##" + id + "##5",
	}, "\n")
	h, err := loadString(t, content)
	require.NoError(t, err)

	day, err := dayrange.DayRange(6, dayrange.NewDate(2023, 1, 15), time.UTC)
	require.NoError(t, err)

	collect := func(r dayrange.Range) []int64 {
		var out []int64
		for rec := range h.Between(r) {
			out = append(out, rec.Duration)
		}
		return out
	}

	assert.Equal(t, []int64{2, 3, 4}, collect(day), "both boundaries are inclusive")
	assert.Equal(t, []int64{2, 3, 4}, collect(day), "sequence can be consumed again")

	before, err := dayrange.DayRange(6, dayrange.NewDate(2020, 1, 1), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, collect(before))

	after, err := dayrange.DayRange(6, dayrange.NewDate(2030, 1, 1), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, collect(after))

	all, err := dayrange.SpanRange(0, dayrange.NewDate(1, 1, 1), dayrange.NewDate(9999, 12, 30), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, collect(all))
	assert.Equal(t, 5, h.Len(), "history is not mutated")
}

func TestBetween_EarlyStop(t *testing.T) {
	id := uuid.NewString()
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "2023-01-15 10:00:00##a.kra##"+id+"##1")
	}
	h, err := loadString(t, strings.Join(lines, "\n"))
	require.NoError(t, err)

	r, err := dayrange.DayRange(6, dayrange.NewDate(2023, 1, 15), time.UTC)
	require.NoError(t, err)
	n := 0
	for range h.Between(r) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestSpanAndRecordsCopy(t *testing.T) {
	id := uuid.NewString()
	h, err := loadString(t, "2023-01-15 10:00:00##a.kra##"+id+"##1\n2023-01-14 10:00:00##a.kra##"+id+"##1\n")
	require.NoError(t, err)

	first, last, ok := h.Span()
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 1, 14, 10, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC), last)

	recs := h.Records()
	recs[0] = nil
	assert.NotNil(t, h.Records()[0])

	built := New([]*Record{{ID: "x", Duration: 1}})
	assert.Equal(t, 1, built.Len())
}
