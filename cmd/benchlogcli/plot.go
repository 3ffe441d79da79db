// cmd/benchlogcli/plot.go
package benchlogcli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mwiater/benchlog/internal/chart"
)

var (
	plotMode   string
	plotOutDir string
	plotFormat string
	plotTitle  string
)

// plotCmd implements 'plot', which renders examples/sec box plots.
var plotCmd = &cobra.Command{
	Use:   "plot <log>...",
	Short: "Render examples/sec box plots",
	Long: `The 'plot' command renders box plots of examples/sec with average, min and max
annotations. --mode combined draws one chart with a box per log file and batch
size; --mode per-batch draws one chart per batch size.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := chart.ParseMode(plotMode)
		if err != nil {
			return err
		}
		agg, parseErr := parseLogs(args)
		if len(agg.Sources()) == 0 {
			return parseErr
		}
		opts := chart.DefaultOptions()
		opts.Format = plotFormat
		if plotTitle != "" {
			opts.Title = plotTitle
		}
		charts, err := chart.Build(mode, agg.ByFile(), opts)
		if err != nil {
			return multierr.Append(parseErr, err)
		}
		paths, err := chart.Save(charts, plotOutDir, opts)
		if err != nil {
			return multierr.Append(parseErr, err)
		}
		for _, p := range paths {
			lg.Info("wrote chart", zap.String("path", p))
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return parseErr
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotMode, "mode", "m", string(chart.Combined), "chart layout: combined or per-batch")
	plotCmd.Flags().StringVar(&plotOutDir, "out", "charts", "directory to write charts into")
	plotCmd.Flags().StringVar(&plotFormat, "image-format", "svg", "image format: svg or png")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "chart title")
}
