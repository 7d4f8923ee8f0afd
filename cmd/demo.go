package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tycho-core/console-app/internal/cli"
	"github.com/tycho-core/console-app/internal/demo"
	"github.com/tycho-core/console-app/pkg/consoleapp"
)

// newDemoCmd creates the command hosting the demo application.
func newDemoCmd(flags *cli.CommandFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [-- <arguments>]",
		Short: "Run the demo application with the configured store",
		Long: `Run the demo application. Everything after -- is passed to the application,
which resolves its options from the command line, a response file and the
configured persistent store, then reports each value and its source.

Examples:
  console-app demo -- --help
  console-app demo -- nightly --net.port=9090
  console-app demo -- --genresponse=demo.cfg
  console-app demo -- @demo.cfg nightly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(flags)
			if err != nil {
				return err
			}

			opts := append(a.ConsoleOptions(), consoleapp.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			console := consoleapp.New(demo.Name, demo.Description, demo.New(cmd.OutOrStdout()), opts...)
			if code := console.Run(cmd.Context(), args); code != consoleapp.ExitCodeSuccess {
				// The console has already reported the failure.
				cmd.SilenceErrors = true
				return &consoleapp.ExitError{Code: code}
			}
			return nil
		},
	}
}
