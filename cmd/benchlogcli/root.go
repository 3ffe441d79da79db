// cmd/benchlogcli/root.go
package benchlogcli

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mwiater/benchlog/internal/config"
	"github.com/mwiater/benchlog/internal/logutil"
)

var (
	// cfgFile holds the --config flag; viper reads it through the "config" key.
	cfgFile string

	// appConfig and lg are populated by loadConfig before any subcommand runs.
	appConfig *config.Config
	lg        = zap.NewNop()
)

// rootCmd is the base Cobra command for the benchlog application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "benchlog",
	Short: "Analyze TensorFlow benchmark logs",
	Long: `benchlog parses TensorFlow benchmark logs, extracts examples/sec samples
per batch size and reports descriptive statistics, comparisons and box plots.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (JSON, YAML or TOML)")
	flags.String("log-level", logutil.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.Bool("debug", false, "dump the effective configuration to stderr")

	viper.BindPFlag("config", flags.Lookup("config"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("debug", flags.Lookup("debug"))
}

// loadConfig builds the shared configuration and logger for every subcommand.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper(), viper.GetString("config"))
	if err != nil {
		return err
	}
	logger, err := logutil.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}
	appConfig = cfg
	lg = logger
	return nil
}
