package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tycho-core/console-app/internal/cli"
	"github.com/tycho-core/console-app/pkg/respfile"
)

// newTokensCmd creates the command that shows how a response file is read.
func newTokensCmd() *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the command line tokens a response file expands to",
		Long: `Print the command line tokens a response file expands to, one per line.

Comments are stripped, [group] headers prefix the keys that follow them,
and bare lines become switches. Lines that set an empty value produce
no token.

With --watch the file is read again after every change until interrupted.

Examples:
  console-app tokens demo.cfg
  console-app tokens demo.cfg --watch`,
		Args: exactArgs("file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			if !watch {
				tokens, err := respfile.ReadFile(path)
				if err != nil {
					return err
				}
				writeTokens(out, tokens)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchTokens(ctx, out, path, debounce)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Print the tokens again whenever the file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", respfile.DefaultDebounce, "Quiet period before a change is read")
	return cmd
}

func watchTokens(ctx context.Context, out io.Writer, path string, debounce time.Duration) error {
	first := true
	return respfile.Watch(ctx, path, debounce, func(tokens []string, err error) {
		if !first {
			fmt.Fprintln(out, "---")
		}
		first = false

		if err != nil {
			fmt.Fprintln(out, cli.FormatWarning(err.Error()))
			return
		}
		writeTokens(out, tokens)
	})
}

func writeTokens(w io.Writer, tokens []string) {
	for _, token := range tokens {
		fmt.Fprintln(w, token)
	}
}
