package benchlog

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader(t *testing.T) {
	lr := newLineReader(strings.NewReader("short\r\n"+strings.Repeat("y", 20)+"\nlast"), 10)

	line, n, err := lr.next()
	require.NoError(t, err)
	assert.Equal(t, "short", line)
	assert.Equal(t, 7, n)

	_, n, err = lr.next()
	assert.ErrorIs(t, err, errLineTooLong)
	assert.Equal(t, 21, n)

	line, _, err = lr.next()
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, _, err = lr.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_LongerThanBuffer(t *testing.T) {
	long := strings.Repeat("z", 200*1024)
	lr := newLineReader(strings.NewReader(long+"\nok\n"), 256*1024)

	line, _, err := lr.next()
	require.NoError(t, err)
	assert.Equal(t, long, line)

	line, _, err = lr.next()
	require.NoError(t, err)
	assert.Equal(t, "ok", line)
}
