// cmd/benchlogcli/list_batchsizes.go
package benchlogcli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// batchSizesCmd implements 'list batch-sizes', which prints the batch sizes
// the parser accepts under the current configuration.
var batchSizesCmd = &cobra.Command{
	Use:   "batch-sizes",
	Short: "List the supported batch sizes",
	Long:  `The 'batch-sizes' subcommand prints the batch sizes accepted by the parser under the current configuration. Any other labelled size aborts parsing of that log.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		if len(appConfig.SupportedBatchSizes) == 0 {
			fmt.Fprintln(w, "any")
			return
		}
		for _, size := range appConfig.SupportedBatchSizes {
			fmt.Fprintln(w, size)
		}
	},
}

func init() {
	listCmd.AddCommand(batchSizesCmd)
}
