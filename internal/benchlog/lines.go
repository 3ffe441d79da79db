// internal/benchlog/lines.go
package benchlog

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// errLineTooLong reports a line dropped for exceeding the reader's limit.
var errLineTooLong = errors.New("line exceeds maximum length")

// lineReader splits input on '\n' like bufio.ScanLines. Unlike a Scanner it
// survives lines longer than max: they are consumed and reported with
// errLineTooLong, and reading resumes at the next line.
type lineReader struct {
	br  *bufio.Reader
	max int
	buf []byte
}

func newLineReader(r io.Reader, max int) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, 64*1024), max: max}
}

// next returns the next line without its line ending and the number of bytes
// consumed. It returns io.EOF once the input is exhausted.
func (lr *lineReader) next() (string, int, error) {
	lr.buf = lr.buf[:0]
	n := 0
	over := false
	for {
		chunk, err := lr.br.ReadSlice('\n')
		n += len(chunk)
		if !over {
			// Room for a trailing "\r\n" so the limit applies to content only.
			if len(lr.buf)+len(chunk) > lr.max+2 {
				over = true
				lr.buf = lr.buf[:0]
			} else {
				lr.buf = append(lr.buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return "", 0, io.EOF
			}
			break
		}
		if err != nil {
			return "", n, err
		}
		break
	}
	if over {
		return "", n, errLineTooLong
	}
	line := strings.TrimSuffix(string(lr.buf), "\n")
	line = strings.TrimSuffix(line, "\r")
	if len(line) > lr.max {
		return "", n, errLineTooLong
	}
	return line, n, nil
}
