// internal/benchlog/source.go
package benchlog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Source is a re-readable text source. Every call to Open starts from the
// beginning of the log, which is what makes the parser's sequences restartable.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource returns a Source backed by the file at path. It fails fast with
// ErrInvalidFilename for an empty path or a directory and with ErrFileNotFound
// when nothing exists at path.
func FileSource(path string) (Source, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidFilename)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not open %q: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("could not stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrInvalidFilename, path)
	}
	return fileSource{path: path}, nil
}

func (s fileSource) Name() string { return s.path }

func (s fileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not open %q: %w", s.path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("could not open %q: %w", s.path, err)
	}
	return f, nil
}

type readerSource struct {
	name string
	open func() io.Reader
}

// ReaderSource returns a Source that calls open for a fresh reader on every
// pass. open must return a reader positioned at the start of the log.
func ReaderSource(name string, open func() io.Reader) Source {
	return readerSource{name: name, open: open}
}

// StringSource returns a Source over an in-memory log.
func StringSource(name, text string) Source {
	return ReaderSource(name, func() io.Reader { return strings.NewReader(text) })
}

func (s readerSource) Name() string { return s.name }

func (s readerSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(s.open()), nil
}
