package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd starts the monitor; it takes no positional arguments.
var rootCmd = &cobra.Command{
	Use:   "cpuwatch",
	Short: "Continuous per-core CPU utilization monitor",
	Long: `Cpuwatch samples per-core CPU time counters once a second, shows the
aggregate and per-core utilization, and records every reading to a log file.
It exits with a non-zero status when the counters stop advancing.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMonitor,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cpuwatch:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}
