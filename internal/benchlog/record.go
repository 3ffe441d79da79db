// internal/benchlog/record.go
package benchlog

// Record is a single benchmark sample extracted from a metric line.
type Record struct {
	// Source is the name of the log the record came from.
	Source string `json:"source"`
	// Block is the index of the context block inside Source.
	Block int `json:"block"`
	// Line is the 1-based line number of the metric line.
	Line int `json:"line"`
	// BatchSize is the active batch-size label, 0 when unknown.
	BatchSize int `json:"batch_size"`
	// GlobalStep is the training-iteration counter, 0 when not logged.
	GlobalStep int64 `json:"global_step"`
	// TimeTaken is the logged step time in seconds.
	TimeTaken float64 `json:"time_taken"`
	// ExamplesPerSec is the logged throughput.
	ExamplesPerSec float64 `json:"examples_per_sec"`
	// Timestamp is the most recent BatchTimestamp in the block at or before
	// the record, in unix seconds. 0 when none was seen yet.
	Timestamp float64 `json:"timestamp"`
}

// Block summarizes one context block: the lines between a marker and its
// terminator for a single batch size.
type Block struct {
	Source         string  `json:"source"`
	Index          int     `json:"index"`
	BatchSize      int     `json:"batch_size"`
	Records        int     `json:"records"`
	Timestamps     int     `json:"timestamps"`
	FirstTimestamp float64 `json:"first_timestamp"`
	LastTimestamp  float64 `json:"last_timestamp"`
}

// Hours is the elapsed time between the earliest and latest BatchTimestamp of
// the block, converted from seconds to hours.
func (b Block) Hours() float64 {
	if b.Timestamps < 2 {
		return 0
	}
	return (b.LastTimestamp - b.FirstTimestamp) / 60 / 60
}

func (b *Block) observeTimestamp(ts float64) {
	if b.Timestamps == 0 || ts < b.FirstTimestamp {
		b.FirstTimestamp = ts
	}
	if b.Timestamps == 0 || ts > b.LastTimestamp {
		b.LastTimestamp = ts
	}
	b.Timestamps++
}

func (b *Block) empty() bool {
	return b.Records == 0 && b.Timestamps == 0
}

// Result holds everything parsed from one source in a single pass.
type Result struct {
	Source  string   `json:"source"`
	Records []Record `json:"records"`
	Blocks  []Block  `json:"blocks"`
}

// Rates returns the examples/sec values of the records with the given batch size.
func (r *Result) Rates(batchSize int) []float64 {
	var out []float64
	for _, rec := range r.Records {
		if rec.BatchSize == batchSize {
			out = append(out, rec.ExamplesPerSec)
		}
	}
	return out
}

// Hours returns the summed block durations for the given batch size.
func (r *Result) Hours(batchSize int) float64 {
	var total float64
	for _, b := range r.Blocks {
		if b.BatchSize == batchSize {
			total += b.Hours()
		}
	}
	return total
}
