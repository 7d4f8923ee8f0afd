package cli

import (
	"github.com/spf13/cobra"
)

// CommandFlags holds the flag values shared by the console-app commands.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, plain, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Debug enables debug logging
	Debug bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
}

// RegisterCommonFlags registers the flags used by every command that reads
// the tool configuration.
//
// The registered flags are:
//   - --debug: Enable debug logging
//   - --config-path: Configuration directory
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags, defaultConfigPath string) {
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", defaultConfigPath, "Configuration directory")
}

// RegisterOutputFlags registers the output formatting flags.
//
// The registered flags are:
//   - --output/-o: Output format (table, plain, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
func RegisterOutputFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, plain, json, yaml)")
	cmd.Flags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
}
