// internal/report/text.go
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SummaryLine formats a group as a single line:
//
//	p3_2xlarge bs=128  n=3  mean 298.67 ± 2.49 ex/s  min 296.00  median 298.00  max 302.00  total 1.00 h
func SummaryLine(g Group) string {
	if g.Rate == nil {
		return fmt.Sprintf("%s  n=0  no examples/sec samples  total %.2f h", g.Label, g.Hours)
	}
	r := g.Rate
	return fmt.Sprintf("%s  n=%s  mean %.2f ± %.2f ex/s  min %.2f  median %.2f  max %.2f  total %.2f h",
		g.Label, humanize.Comma(int64(r.N)), r.Mean, r.StdDev, r.Min, r.Median, r.Max, g.Hours)
}

// WriteText writes a heading followed by one summary line per group.
func WriteText(w io.Writer, title string, groups []Group) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render(title)); err != nil {
		return err
	}
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, faintStyle.Render("  no benchmark records found"))
		return err
	}
	for _, g := range groups {
		if _, err := fmt.Fprintln(w, "  "+SummaryLine(g)); err != nil {
			return err
		}
	}
	return nil
}

// WriteComparisonText writes one line per comparison, coloring gains and losses.
func WriteComparisonText(w io.Writer, baseline string, cmps []Comparison) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Compared against "+baseline)); err != nil {
		return err
	}
	if len(cmps) == 0 {
		_, err := fmt.Fprintln(w, faintStyle.Render("  no common batch sizes"))
		return err
	}
	for _, c := range cmps {
		change := fmt.Sprintf("%+.2f%%", c.ChangePct)
		if c.ChangePct >= 0 {
			change = upStyle.Render(change)
		} else {
			change = downStyle.Render(change)
		}
		if _, err := fmt.Fprintf(w, "  %s  mean %.2f vs %.2f ex/s  %s\n",
			c.Label, c.Mean, c.BaselineMean, change); err != nil {
			return err
		}
	}
	return nil
}
