// internal/chart/boxplot.go

// Package chart renders examples/sec box plots for aggregated benchmark groups.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/benchlog/internal/report"
)

// ErrNothingToPlot is returned when no group carries any samples.
var ErrNothingToPlot = errors.New("no examples/sec samples to plot")

// Mode selects how groups are laid out across charts.
type Mode string

const (
	// Combined draws one chart with a box per file and batch size.
	Combined Mode = "combined"
	// PerBatch draws one chart per batch size with a box per file.
	PerBatch Mode = "per-batch"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Combined, PerBatch:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown plot mode %q (want %q or %q)", s, Combined, PerBatch)
	}
}

// Options controls chart text and size.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	// Format is the image format, "svg" or "png".
	Format string
}

// DefaultOptions returns the training-rate chart labels at 9x6 inches as SVG.
func DefaultOptions() Options {
	return Options{
		Title:  "Training rates",
		XLabel: "Log file",
		YLabel: "Average # of Examples / sec",
		Width:  9 * vg.Inch,
		Height: 6 * vg.Inch,
		Format: "svg",
	}
}

// BoxPlot builds a chart with one box per group. Groups without samples are
// skipped. Each box is annotated with its average, minimum and maximum.
func BoxPlot(title string, groups []report.Group, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	var (
		names  []string
		annots plotter.XYLabels
	)
	for _, g := range groups {
		if g.Rate == nil || len(g.Rates) == 0 {
			continue
		}
		loc := float64(len(names))
		box, err := plotter.NewBoxPlot(vg.Points(20), loc, plotter.Values(g.Rates))
		if err != nil {
			return nil, fmt.Errorf("box for %s: %w", g.Label, err)
		}
		box.FillColor = color.RGBA{R: 98, G: 114, B: 164, A: 96}
		p.Add(box)
		names = append(names, g.Label)

		offset := 0.25
		annots.XYs = append(annots.XYs,
			plotter.XY{X: loc + offset, Y: g.Rate.Mean},
			plotter.XY{X: loc + offset, Y: g.Rate.Min},
			plotter.XY{X: loc + offset, Y: g.Rate.Max},
		)
		annots.Labels = append(annots.Labels,
			fmt.Sprintf("average: %d", int(g.Rate.Mean)),
			fmt.Sprintf("min: %d", int(g.Rate.Min)),
			fmt.Sprintf("max: %d", int(g.Rate.Max)),
		)
	}
	if len(names) == 0 {
		return nil, ErrNothingToPlot
	}

	labels, err := plotter.NewLabels(annots)
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	p.Add(labels)
	p.NominalX(names...)
	return p, nil
}

// Chart is a rendered chart and the file name it should be saved under.
type Chart struct {
	Name string
	Plot *plot.Plot
}

// Build lays groups out according to mode. groups should be per-file groups.
func Build(mode Mode, groups []report.Group, opts Options) ([]Chart, error) {
	switch mode {
	case Combined:
		p, err := BoxPlot(opts.Title, groups, opts)
		if err != nil {
			return nil, err
		}
		return []Chart{{Name: "combined", Plot: p}}, nil

	case PerBatch:
		bySize := map[int][]report.Group{}
		for _, g := range groups {
			bySize[g.BatchSize] = append(bySize[g.BatchSize], g)
		}
		sizes := make([]int, 0, len(bySize))
		for s := range bySize {
			sizes = append(sizes, s)
		}
		slices.Sort(sizes)

		var charts []Chart
		for _, s := range sizes {
			title := fmt.Sprintf("%s (%s)", opts.Title, report.BatchLabel(s))
			p, err := BoxPlot(title, bySize[s], opts)
			if errors.Is(err, ErrNothingToPlot) {
				continue
			}
			if err != nil {
				return nil, err
			}
			charts = append(charts, Chart{Name: "batch-" + batchSlug(s), Plot: p})
		}
		if len(charts) == 0 {
			return nil, ErrNothingToPlot
		}
		return charts, nil

	default:
		return nil, fmt.Errorf("unknown plot mode %q", mode)
	}
}

// Save writes every chart into dir and returns the written paths.
func Save(charts []Chart, dir string, opts Options) ([]string, error) {
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format != "svg" && format != "png" {
		return nil, fmt.Errorf("unsupported image format %q", opts.Format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, c.Name+"."+format)
		if err := c.Plot.Save(opts.Width, opts.Height, path); err != nil {
			return nil, fmt.Errorf("saving %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func batchSlug(size int) string {
	if size == 0 {
		return "unknown"
	}
	return fmt.Sprint(size)
}
