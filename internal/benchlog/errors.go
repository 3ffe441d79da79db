// internal/benchlog/errors.go
package benchlog

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

var (
	// ErrFileNotFound is returned when a log file does not exist. It wraps
	// fs.ErrNotExist so callers may test for either.
	ErrFileNotFound = fmt.Errorf("log file not found: %w", fs.ErrNotExist)

	// ErrInvalidFilename is returned when a path cannot name a log file,
	// i.e. it is empty or refers to a directory.
	ErrInvalidFilename = errors.New("invalid log filename")

	// ErrUnsupportedBatchSize matches every *UnsupportedBatchSizeError.
	ErrUnsupportedBatchSize = errors.New("unsupported batch size")
)

// UnsupportedBatchSizeError reports a batch-size label whose value is not in
// the configured set of supported sizes.
type UnsupportedBatchSizeError struct {
	Source    string
	Line      int
	Size      int
	Supported []int
}

func (e *UnsupportedBatchSizeError) Error() string {
	sizes := make([]string, len(e.Supported))
	for i, s := range e.Supported {
		sizes[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("%s:%d: unsupported batch size %d; supported sizes are %s",
		e.Source, e.Line, e.Size, strings.Join(sizes, ", "))
}

// Is reports whether target is ErrUnsupportedBatchSize.
func (e *UnsupportedBatchSizeError) Is(target error) bool {
	return target == ErrUnsupportedBatchSize
}
