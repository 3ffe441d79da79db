// internal/report/export.go
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

// Document is the JSON export artifact.
type Document struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Sources     []string     `json:"sources"`
	Groups      []Group      `json:"groups"`
	Comparisons []Comparison `json:"comparisons,omitempty"`
}

// WriteJSON writes an indented Document for groups.
func WriteJSON(w io.Writer, sources []string, groups []Group, cmps []Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{
		GeneratedAt: time.Now().UTC(),
		Sources:     sources,
		Groups:      groups,
		Comparisons: cmps,
	})
}

var csvHeader = []string{
	"source", "batch_size", "records", "files",
	"mean", "std_dev", "min", "median", "max", "total_hours",
}

// WriteCSV writes a header and one row per group. Rate columns are left
// empty for groups without samples.
func WriteCSV(w io.Writer, groups []Group) error {
	wr := csv.NewWriter(w)
	if err := wr.Write(csvHeader); err != nil {
		return err
	}
	for _, g := range groups {
		row := []string{
			g.Source,
			strconv.Itoa(g.BatchSize),
			strconv.Itoa(g.Records),
			strconv.Itoa(g.Files),
			"", "", "", "", "",
			formatFloat(g.Hours),
		}
		if r := g.Rate; r != nil {
			row[4] = formatFloat(r.Mean)
			row[5] = formatFloat(r.StdDev)
			row[6] = formatFloat(r.Min)
			row[7] = formatFloat(r.Median)
			row[8] = formatFloat(r.Max)
		}
		if err := wr.Write(row); err != nil {
			return err
		}
	}
	wr.Flush()
	return wr.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
