// internal/report/aggregate.go

// Package report folds parsed benchmark logs into per-batch-size and per-file
// statistics and writes them as text, JSON or CSV.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mwiater/benchlog/internal/benchlog"
	"github.com/mwiater/benchlog/internal/stats"
)

// ErrUnknownBaseline is returned by Compare when the baseline was never added.
var ErrUnknownBaseline = errors.New("baseline source not found")

// Group is the aggregate of every record sharing a batch size and, for
// per-file groups, a source.
type Group struct {
	// Source is empty for groups that span every file.
	Source    string `json:"source,omitempty"`
	BatchSize int    `json:"batch_size"`
	Label     string `json:"label"`
	Records   int    `json:"records"`
	Files     int    `json:"files"`
	// Rate summarizes examples/sec. Nil when the group holds no records.
	Rate *stats.Summary `json:"examples_per_sec,omitempty"`
	// TimeTaken summarizes the logged step times that were present.
	TimeTaken *stats.Summary `json:"time_taken,omitempty"`
	// Hours is the summed BatchTimestamp span of the group's blocks.
	Hours float64 `json:"total_hours"`

	Rates []float64 `json:"-"`
}

// Aggregator accumulates results from many sources in the order they were added.
type Aggregator struct {
	results []*benchlog.Result
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add folds one parsed source. Adding the same source twice replaces the
// earlier result.
func (a *Aggregator) Add(res *benchlog.Result) {
	for i, r := range a.results {
		if r.Source == res.Source {
			a.results[i] = res
			return
		}
	}
	a.results = append(a.results, res)
}

// Sources returns the added source names in insertion order.
func (a *Aggregator) Sources() []string {
	out := make([]string, len(a.results))
	for i, r := range a.results {
		out[i] = r.Source
	}
	return out
}

// Len returns the total number of records added.
func (a *Aggregator) Len() int {
	n := 0
	for _, r := range a.results {
		n += len(r.Records)
	}
	return n
}

// ByBatch returns one group per batch size across all sources, sorted by
// batch size.
func (a *Aggregator) ByBatch() []Group {
	sizes := a.batchSizes()
	out := make([]Group, 0, len(sizes))
	for _, size := range sizes {
		g := Group{BatchSize: size, Label: BatchLabel(size)}
		var times []float64
		for _, r := range a.results {
			rates := r.Rates(size)
			if len(rates) == 0 && r.Hours(size) == 0 {
				continue
			}
			g.Files++
			g.Rates = append(g.Rates, rates...)
			times = append(times, timesFor(r, size)...)
			g.Hours += r.Hours(size)
		}
		out = append(out, finish(g, times))
	}
	return out
}

// ByFile returns one group per (source, batch size), sources in insertion
// order and batch sizes ascending within a source.
//
// Labels use the shortest trailing part of each source path that no other
// source shares, so logs with the same base name in different directories
// stay distinguishable.
func (a *Aggregator) ByFile() []Group {
	names := displayNames(a.Sources())
	var out []Group
	for _, r := range a.results {
		for _, size := range sizesOf(r) {
			g := Group{
				Source:    r.Source,
				BatchSize: size,
				Label:     names[r.Source] + " " + BatchLabel(size),
				Files:     1,
				Rates:     r.Rates(size),
				Hours:     r.Hours(size),
			}
			out = append(out, finish(g, timesFor(r, size)))
		}
	}
	return out
}

// Comparison is the change of one source's mean rate relative to a baseline
// source at the same batch size.
type Comparison struct {
	Source       string  `json:"source"`
	Label        string  `json:"label"`
	BatchSize    int     `json:"batch_size"`
	BaselineMean float64 `json:"baseline_mean"`
	Mean         float64 `json:"mean"`
	ChangePct    float64 `json:"change_pct"`
}

// Compare reports every non-baseline source's mean examples/sec against the
// baseline's mean for each batch size both contain.
func (a *Aggregator) Compare(baseline string) ([]Comparison, error) {
	groups := a.ByFile()
	base := map[int]*stats.Summary{}
	found := false
	for _, g := range groups {
		if g.Source != baseline {
			continue
		}
		found = true
		if g.Rate != nil {
			base[g.BatchSize] = g.Rate
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBaseline, baseline)
	}

	var out []Comparison
	for _, g := range groups {
		if g.Source == baseline || g.Rate == nil {
			continue
		}
		b, ok := base[g.BatchSize]
		if !ok {
			continue
		}
		pct, err := stats.PercentChange(b.Mean, g.Rate.Mean)
		if err != nil {
			return nil, fmt.Errorf("comparing %s at batch size %d: %w", g.Source, g.BatchSize, err)
		}
		out = append(out, Comparison{
			Source:       g.Source,
			Label:        g.Label,
			BatchSize:    g.BatchSize,
			BaselineMean: b.Mean,
			Mean:         g.Rate.Mean,
			ChangePct:    pct,
		})
	}
	return out, nil
}

// BatchLabel names a batch size for tables and plots.
func BatchLabel(size int) string {
	if size == 0 {
		return "bs=?"
	}
	return fmt.Sprintf("bs=%d", size)
}

// FileLabel names a source/batch pair on its own, dropping the directory and
// the .log suffix from the source.
func FileLabel(source string, size int) string {
	return displayNames([]string{source})[source] + " " + BatchLabel(size)
}

// displayNames maps every source to the fewest trailing path elements, .log
// suffix dropped, that no other source ends with. Sources that clean to the
// same path keep their full text.
func displayNames(sources []string) map[string]string {
	parts := make([][]string, len(sources))
	for i, s := range sources {
		p := strings.Split(filepath.ToSlash(filepath.Clean(s)), "/")
		p[len(p)-1] = strings.TrimSuffix(p[len(p)-1], ".log")
		parts[i] = p
	}
	tail := func(p []string, k int) string {
		return strings.Join(p[max(0, len(p)-k):], "/")
	}
	shared := func(i, k int) bool {
		for j := range parts {
			if j != i && tail(parts[j], k) == tail(parts[i], k) {
				return true
			}
		}
		return false
	}

	out := make(map[string]string, len(sources))
	for i, s := range sources {
		n := len(parts[i])
		k := 1
		for k < n && shared(i, k) {
			k++
		}
		name := tail(parts[i], k)
		if k == n && shared(i, k) {
			for j := range parts {
				if j != i && tail(parts[j], len(parts[j])) == name {
					name = s
					break
				}
			}
		}
		out[s] = name
	}
	return out
}

func finish(g Group, times []float64) Group {
	g.Records = len(g.Rates)
	if s, err := stats.Describe(g.Rates); err == nil {
		g.Rate = &s
	}
	if s, err := stats.Describe(times); err == nil {
		g.TimeTaken = &s
	}
	return g
}

func (a *Aggregator) batchSizes() []int {
	seen := map[int]struct{}{}
	for _, r := range a.results {
		for _, s := range sizesOf(r) {
			seen[s] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func sizesOf(r *benchlog.Result) []int {
	seen := map[int]struct{}{}
	for _, rec := range r.Records {
		seen[rec.BatchSize] = struct{}{}
	}
	for _, b := range r.Blocks {
		seen[b.BatchSize] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func timesFor(r *benchlog.Result, size int) []float64 {
	var out []float64
	for _, rec := range r.Records {
		if rec.BatchSize == size && rec.TimeTaken > 0 {
			out = append(out, rec.TimeTaken)
		}
	}
	return out
}
