// internal/benchlog/machine.go
package benchlog

import (
	"slices"
	"strings"

	"go.uber.org/zap"
)

// State is the parser's position relative to context blocks.
type State int

const (
	// AwaitingMarker ignores everything until a context marker appears.
	AwaitingMarker State = iota
	// InBatchContext sub-parses lines into labels, metrics and timestamps.
	InBatchContext
)

func (s State) String() string {
	switch s {
	case AwaitingMarker:
		return "AWAITING_MARKER"
	case InBatchContext:
		return "IN_BATCH_CONTEXT"
	default:
		return "UNKNOWN"
	}
}

// machine is the per-pass parsing state for one source. It is fed one line at
// a time and emits at most one record and one closed block per line.
type machine struct {
	opts   *Options
	lg     *zap.Logger
	source string

	state State
	line  int

	// labelOnly marks a block opened by a label marker; it ends as soon as
	// its batch-size label has been read.
	labelOnly bool
	batchSize int
	block     *Block
	nextIndex int
	// recent is the last BatchTimestamp read inside the open block.
	recent float64
}

func newMachine(opts *Options, lg *zap.Logger, source string) *machine {
	return &machine{
		opts:      opts,
		lg:        lg,
		source:    source,
		state:     AwaitingMarker,
		batchSize: opts.DefaultBatchSize,
	}
}

type step struct {
	record *Record
	closed *Block
}

func (m *machine) feed(line string) (step, error) {
	m.line++

	if marker, labelOnly := m.matchMarker(line); marker {
		closed := m.close()
		m.open(labelOnly)
		// A marker may carry its own label: "Run the benchmarks for batch size 128".
		if _, err := m.applyLabel(line); err != nil {
			return step{}, err
		}
		return step{closed: closed}, nil
	}
	if m.state == AwaitingMarker {
		return step{}, nil
	}
	if containsAny(line, m.opts.Terminators) {
		closed := m.close()
		m.state = AwaitingMarker
		return step{closed: closed}, nil
	}

	stamps, rest, badStamps := parseTimestamps(line)
	m.logBad(badStamps...)

	// The label applies before anything else on the line, so a metric that
	// names its batch size is tagged with it.
	closed, err := m.applyLabel(rest)
	if err != nil {
		return step{}, err
	}
	if m.state == AwaitingMarker {
		return step{closed: closed}, nil
	}

	for _, ts := range stamps {
		m.touch()
		m.block.observeTimestamp(ts)
		m.recent = ts
	}

	met, isMetric, badMetric := parseMetric(rest)
	m.logBad(badMetric...)
	if !isMetric {
		return step{closed: closed}, nil
	}
	m.touch()
	m.block.Records++
	rec := &Record{
		Source:         m.source,
		Block:          m.block.Index,
		Line:           m.line,
		BatchSize:      m.batchSize,
		GlobalStep:     met.globalStep,
		TimeTaken:      met.timeTaken,
		ExamplesPerSec: met.examplesPerSec,
	}
	if m.block.Timestamps > 0 {
		rec.Timestamp = m.recent
	}
	return step{record: rec, closed: closed}, nil
}

// applyLabel applies the batch-size label on line, if there is one, and
// returns the block the label closed.
func (m *machine) applyLabel(line string) (*Block, error) {
	size, isLabel, bad := parseBatchLabel(line)
	if bad != nil {
		m.logBad(*bad)
	}
	if !isLabel {
		return nil, nil
	}
	if len(m.opts.SupportedBatchSizes) > 0 && !slices.Contains(m.opts.SupportedBatchSizes, size) {
		return nil, &UnsupportedBatchSizeError{
			Source:    m.source,
			Line:      m.line,
			Size:      size,
			Supported: slices.Clone(m.opts.SupportedBatchSizes),
		}
	}
	return m.relabel(size), nil
}

// skip counts a line the reader dropped for being too long.
func (m *machine) skip(size int) {
	m.line++
	m.lg.Debug("skipping overlong line",
		zap.String("source", m.source),
		zap.Int("line", m.line),
		zap.Int("bytes", size),
	)
}

// finish closes the block left open at end of input.
func (m *machine) finish() *Block {
	closed := m.close()
	m.state = AwaitingMarker
	return closed
}

func (m *machine) matchMarker(line string) (marker, labelOnly bool) {
	if containsAny(line, m.opts.LabelMarkers) {
		return true, true
	}
	if containsAny(line, m.opts.Markers) {
		return true, false
	}
	return false, false
}

func (m *machine) open(labelOnly bool) {
	m.state = InBatchContext
	m.labelOnly = labelOnly
	m.block = &Block{Source: m.source, Index: -1, BatchSize: m.batchSize}
	m.recent = 0
}

// touch assigns the open block its index the first time it receives content,
// so blocks that stay empty never consume an index.
func (m *machine) touch() {
	if m.block.Index < 0 {
		m.block.Index = m.nextIndex
		m.nextIndex++
	}
}

// close returns the open block if it has content and clears it.
func (m *machine) close() *Block {
	b := m.block
	m.block = nil
	m.labelOnly = false
	if b == nil || b.empty() {
		return nil
	}
	return b
}

// relabel applies a batch-size label. A label that changes the size of a
// block which already holds content splits the block so that every block
// covers exactly one batch size.
func (m *machine) relabel(size int) *Block {
	m.batchSize = size
	if m.labelOnly {
		closed := m.close()
		m.state = AwaitingMarker
		return closed
	}
	if m.block.empty() || m.block.BatchSize == size {
		m.block.BatchSize = size
		return nil
	}
	closed := m.close()
	m.open(false)
	return closed
}

func (m *machine) logBad(bad ...badToken) {
	for _, b := range bad {
		m.lg.Debug("skipping malformed token",
			zap.String("source", m.source),
			zap.Int("line", m.line),
			zap.String("key", b.key),
			zap.String("value", b.value),
			zap.Error(b.err),
		)
	}
}

func containsAny(line string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(line, n) {
			return true
		}
	}
	return false
}
