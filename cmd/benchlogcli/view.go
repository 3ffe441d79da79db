// cmd/benchlogcli/view.go
package benchlogcli

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mwiater/benchlog/internal/tui"
)

var runViewer = tui.Run

// viewCmd represents the 'view' command.
var viewCmd = &cobra.Command{
	Use:   "view <log>...",
	Short: "Browse summaries in an interactive table",
	Long:  `The 'view' command opens an interactive table of examples/sec statistics. Press tab to switch between batch-size and per-file grouping and q to quit.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, parseErr := parseLogs(args)
		if len(agg.Sources()) == 0 {
			return parseErr
		}
		return multierr.Append(parseErr, runViewer(agg))
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
