package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tycho-core/console-app/internal/demo"
	"github.com/tycho-core/console-app/pkg/schema"
	"github.com/tycho-core/console-app/pkg/template"
)

// newTemplateCmd creates the command that renders the demo application's
// option schema.
func newTemplateCmd() *cobra.Command {
	var (
		usage      bool
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the response file template of the demo application",
		Long: `Print the response file template of the demo application, the same
file "console-app demo -- --genresponse=<file>" writes. Valued options are
written with their defaults; switches that default to false are commented out.

With --usage the usage listing is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := schema.New()
			s.AddInternalOptions()
			demo.New(nil).RegisterOptions(s)
			if err := s.Err(); err != nil {
				return fmt.Errorf("invalid option declarations: %w", err)
			}

			var buf bytes.Buffer
			var err error
			if usage {
				err = template.WriteUsage(&buf, demo.Description, s)
			} else {
				err = template.WriteConfigFile(&buf, demo.Name, s)
			}
			if err != nil {
				return err
			}

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&usage, "usage", false, "Print the usage listing instead of the template")
	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Write to a file instead of stdout")
	return cmd
}
