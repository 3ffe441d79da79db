// internal/benchlog/parser.go

// Package benchlog turns free-text training benchmark logs into benchmark
// sample records.
//
// The parser is a two-state machine. It waits for a context marker such as
// "Run the benchmarks" or "TASK [debug]", then reads batch-size labels,
// BenchmarkMetric key-value lines and BatchTimestamp entries until a
// terminator line (by default any line containing "Epoch") returns it to
// waiting. Malformed numeric tokens are skipped; a batch-size label outside
// the supported set stops parsing with an *UnsupportedBatchSizeError.
package benchlog

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"go.uber.org/zap"
)

// MaxLineBytes bounds a single log line. Longer lines are skipped.
const MaxLineBytes = 1 << 20

// DefaultSupportedBatchSizes are the batch sizes accepted when none are configured.
var DefaultSupportedBatchSizes = []int{16, 32, 64, 128, 256, 512, 1024}

// Options configures a Parser.
type Options struct {
	// SupportedBatchSizes is the set a batch-size label must belong to.
	// An empty set accepts any size.
	SupportedBatchSizes []int
	// Markers open a context block.
	Markers []string
	// LabelMarkers open a context block that ends once a batch-size label
	// has been read.
	LabelMarkers []string
	// Terminators close the open context block.
	Terminators []string
	// DefaultBatchSize tags records read before any label. 0 means unknown.
	DefaultBatchSize int
	// Logger receives debug output about skipped tokens. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the marker set used by the TensorFlow benchmark
// harness logs.
func DefaultOptions() Options {
	return Options{
		SupportedBatchSizes: slices.Clone(DefaultSupportedBatchSizes),
		Markers:             []string{"Run the benchmarks"},
		LabelMarkers:        []string{"TASK [debug]"},
		Terminators:         []string{"Epoch"},
	}
}

// Parser converts benchmark logs into records. A Parser holds no per-source
// state and may be reused across sources.
type Parser struct {
	opts Options
	lg   *zap.Logger
}

// New returns a Parser for opts.
func New(opts Options) *Parser {
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Parser{opts: opts, lg: lg}
}

// Records returns a lazy sequence of the records in src. Each range over the
// sequence reopens src and parses it from the start. The sequence ends after
// the first error it yields.
func (p *Parser) Records(src Source) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		err := p.walk(src, func(s step) bool {
			if s.record == nil {
				return true
			}
			return yield(*s.record, nil)
		})
		if err != nil {
			yield(Record{}, err)
		}
	}
}

// Blocks returns a lazy sequence of the non-empty context blocks in src, in
// the order they close.
func (p *Parser) Blocks(src Source) iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		err := p.walk(src, func(s step) bool {
			if s.closed == nil {
				return true
			}
			return yield(*s.closed, nil)
		})
		if err != nil {
			yield(Block{}, err)
		}
	}
}

// Parse reads src once and collects its records and blocks.
func (p *Parser) Parse(src Source) (*Result, error) {
	res := &Result{Source: src.Name()}
	err := p.walk(src, func(s step) bool {
		if s.record != nil {
			res.Records = append(res.Records, *s.record)
		}
		if s.closed != nil {
			res.Blocks = append(res.Blocks, *s.closed)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	p.lg.Debug("parsed log",
		zap.String("source", res.Source),
		zap.Int("records", len(res.Records)),
		zap.Int("blocks", len(res.Blocks)),
	)
	return res, nil
}

// walk drives one pass of the state machine over src. emit returning false
// stops the pass early without error.
func (p *Parser) walk(src Source, emit func(step) bool) error {
	rc, err := src.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	m := newMachine(&p.opts, p.lg, src.Name())
	lr := newLineReader(rc, MaxLineBytes)
	for {
		line, n, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, errLineTooLong) {
			m.skip(n)
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", src.Name(), err)
		}
		s, err := m.feed(line)
		if err != nil {
			return err
		}
		if (s.record != nil || s.closed != nil) && !emit(s) {
			return nil
		}
	}
	if b := m.finish(); b != nil {
		emit(step{closed: b})
	}
	return nil
}
