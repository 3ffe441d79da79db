// cmd/benchlogcli/compare.go
package benchlogcli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mwiater/benchlog/internal/report"
)

var (
	compareBaseline string
	compareFormat   string
)

// compareCmd implements 'compare', which reports each log's mean examples/sec
// relative to a baseline log at matching batch sizes.
var compareCmd = &cobra.Command{
	Use:   "compare --baseline <log> <log>...",
	Short: "Compare mean examples/sec against a baseline log",
	Long:  `The 'compare' command prints the percent change of each log's mean examples/sec relative to the --baseline log, for every batch size both logs contain.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if compareBaseline == "" {
			return errors.New("--baseline is required")
		}
		paths := args
		if !slices.Contains(paths, compareBaseline) {
			paths = append([]string{compareBaseline}, args...)
		}
		if compareFormat != "text" && compareFormat != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", compareFormat)
		}
		agg, parseErr := parseLogs(paths)
		cmps, err := agg.Compare(compareBaseline)
		if err != nil {
			return multierr.Append(parseErr, err)
		}
		w := cmd.OutOrStdout()
		if compareFormat == "json" {
			err = report.WriteJSON(w, agg.Sources(), agg.ByFile(), cmps)
		} else {
			err = report.WriteComparisonText(w, compareBaseline, cmps)
		}
		return multierr.Append(parseErr, err)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&compareBaseline, "baseline", "b", "", "baseline log file")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "text", "output format: text or json")
}
