package history

import (
	"fmt"
	"io"
	"os"
)

// Source is where the raw history text comes from.
type Source interface {
	Open() (io.ReadCloser, error)
	String() string
}

type fileSource struct {
	path string
}

// FileSource reads the history from a file on disk.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Open() (io.ReadCloser, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", s.path)
	}
	return os.Open(s.path)
}

func (s fileSource) String() string { return s.path }

type readerSource struct {
	name string
	r    io.Reader
}

// ReaderSource wraps an in-memory reader, mostly for tests and stdin.
func ReaderSource(name string, r io.Reader) Source {
	return readerSource{name: name, r: r}
}

func (s readerSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}

func (s readerSource) String() string { return s.name }

func readAll(src Source) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", &SourceError{Source: src.String(), Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", &SourceError{Source: src.String(), Err: err}
	}
	return string(data), nil
}
