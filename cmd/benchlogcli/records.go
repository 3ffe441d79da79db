// cmd/benchlogcli/records.go
package benchlogcli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/mwiater/benchlog/internal/benchlog"
)

// recordsCmd implements 'records', which streams every parsed sample as one
// JSON object per line.
var recordsCmd = &cobra.Command{
	Use:   "records <log>...",
	Short: "Stream parsed benchmark records as JSON lines",
	Long:  `The 'records' command streams each benchmark sample found in the logs as a JSON object per line, in file order, without buffering whole files.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newParser()
		enc := json.NewEncoder(cmd.OutOrStdout())
		var errs error
		for _, path := range args {
			src, err := benchlog.FileSource(path)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			for rec, err := range p.Records(src) {
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("parsing %s: %w", path, err))
					break
				}
				if err := enc.Encode(rec); err != nil {
					return err
				}
			}
		}
		return errs
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}
