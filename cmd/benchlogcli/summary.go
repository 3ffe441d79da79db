// cmd/benchlogcli/summary.go
package benchlogcli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mwiater/benchlog/internal/report"
)

var (
	summaryBy     string
	summaryFormat string
	summaryOutput string
)

// summaryCmd implements 'summary', which prints descriptive statistics of
// examples/sec grouped by batch size or by log file.
var summaryCmd = &cobra.Command{
	Use:   "summary <log>...",
	Short: "Print examples/sec statistics per batch size or per file",
	Long: `The 'summary' command parses each log and prints the mean, population standard
deviation, min, median and max examples/sec together with the total benchmark
time in hours, grouped by batch size (--by batch) or by log file (--by file).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkSummaryFlags(); err != nil {
			return err
		}
		agg, parseErr := parseLogs(args)
		if len(agg.Sources()) == 0 {
			return parseErr
		}
		groups, title := selectGroups(agg, summaryBy)
		err := withOutput(cmd, summaryOutput, func(w io.Writer) error {
			switch summaryFormat {
			case "json":
				return report.WriteJSON(w, agg.Sources(), groups, nil)
			case "csv":
				return report.WriteCSV(w, groups)
			default:
				return report.WriteText(w, title, groups)
			}
		})
		return multierr.Append(parseErr, err)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryBy, "by", "batch", "grouping: batch or file")
	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "f", "text", "output format: text, json or csv")
	summaryCmd.Flags().StringVarP(&summaryOutput, "output", "o", "", "write to FILE instead of stdout")
}

// checkSummaryFlags rejects --by and --format values before any log is read.
func checkSummaryFlags() error {
	switch summaryBy {
	case "batch", "file":
	default:
		return fmt.Errorf("unknown grouping %q (want batch or file)", summaryBy)
	}
	switch summaryFormat {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q (want text, json or csv)", summaryFormat)
	}
	return nil
}

// selectGroups returns the groups and heading for a validated --by value.
func selectGroups(agg *report.Aggregator, by string) ([]report.Group, string) {
	if by == "file" {
		return agg.ByFile(), "Examples/sec by log file"
	}
	return agg.ByBatch(), "Examples/sec by batch size"
}

// withOutput runs write against path, or the command's stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
