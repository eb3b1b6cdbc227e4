package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haskel/cpuwatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long:  `Display the effective configuration (loaded from file or defaults) as YAML.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var validateOnly bool

func init() {
	configCmd.Flags().BoolVar(&validateOnly, "validate", false, "only validate config, don't print")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		fmt.Fprintf(out, "Configuration invalid: %v\n", err)
		return err
	}

	if validateOnly {
		fmt.Fprintln(out, "Configuration is valid")
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))

	return nil
}
