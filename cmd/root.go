package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tycho-core/console-app/internal/app"
	"github.com/tycho-core/console-app/internal/cli"
	"github.com/tycho-core/console-app/internal/config"
	"github.com/tycho-core/console-app/pkg/consoleapp"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeNotFound indicates a requested store entry does not exist.
	ExitCodeNotFound = 2
	// ExitCodeStoreUnavailable indicates the configured store backend could not be opened.
	ExitCodeStoreUnavailable = 3
)

// rootCmd is the base command, executed by main.
var rootCmd = newRootCmd()

// newRootCmd builds the complete command tree. Tests build a fresh tree per
// case so flag values do not leak between them.
func newRootCmd() *cobra.Command {
	flags := &cli.CommandFlags{}

	root := &cobra.Command{
		Use:   "console-app",
		Short: "Resolve console application options from the command line, response files and a persistent store",
		Long: `console-app manages the configuration sources of console applications.

Options reach an application from three sources, applied in order:
  1. the command line
  2. a response file (--response-file=<file> or @<file>)
  3. the persistent store, one namespace per vendor and application

Use the store commands to inspect and edit persistent values, tokens to see
how a response file is read, and template to generate a response file.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
	}

	defaultConfigPath, err := config.GetDefaultConfigPath()
	if err != nil {
		defaultConfigPath = ""
	}
	cli.RegisterCommonFlags(root, flags, defaultConfigPath)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newStoreCmd(flags))
	root.AddCommand(newTokensCmd())
	root.AddCommand(newTemplateCmd())
	root.AddCommand(newDemoCmd(flags))
	return root
}

// bootstrap loads the tool configuration and opens the store backend.
func bootstrap(flags *cli.CommandFlags) (*app.Application, error) {
	return app.NewApplication(app.NewConfig(flags.Debug, flags.ConfigPath))
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "console-app version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var exitErr *consoleapp.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var notFound *cli.EntryNotFoundError
	if errors.As(err, &notFound) {
		return ExitCodeNotFound
	}

	var unavailable *cli.StoreUnavailableError
	if errors.As(err, &unavailable) {
		return ExitCodeStoreUnavailable
	}

	// Default to general error
	return ExitCodeError
}

// exactArgs is cobra.ExactArgs with the argument names in the message.
func exactArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != len(names) {
			return fmt.Errorf("%s requires %d argument(s): %v, received %d", cmd.CommandPath(), len(names), names, len(args))
		}
		return nil
	}
}
