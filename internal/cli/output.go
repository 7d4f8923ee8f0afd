package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/tycho-core/console-app/pkg/store"
	pkgstrings "github.com/tycho-core/console-app/pkg/strings"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table" // Rounded table
	OutputFormatPlain OutputFormat = "plain" // kubectl-style columns without borders
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates an --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputFormatTable, OutputFormatPlain, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, plain, json or yaml)", s)
	}
}

// plainStyle renders tables without box-drawing characters, suitable for
// grep, awk and cut.
var plainStyle = func() table.Style {
	s := table.StyleDefault
	s.Name = "Plain"
	s.Options = table.Options{}
	s.Box.PaddingLeft = ""
	s.Box.PaddingRight = "   "
	return s
}()

// WriteEntries renders store entries in the given format. An empty table
// is replaced by a short notice naming the namespace. Long values are
// shortened in the rounded table only.
func WriteEntries(w io.Writer, ns store.Namespace, entries []store.Entry, format OutputFormat, noHeaders bool) error {
	switch format {
	case OutputFormatJSON:
		if entries == nil {
			entries = []store.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case OutputFormatYAML:
		if entries == nil {
			entries = []store.Entry{}
		}
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "%s\n", text.FgYellow.Sprintf("No entries in %s", ns))
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	if format == OutputFormatPlain {
		t.SetStyle(plainStyle)
	} else {
		t.SetStyle(table.StyleRounded)
	}

	if !noHeaders {
		t.AppendHeader(table.Row{"NAME", "VALUE"})
	}
	for _, e := range entries {
		value := e.Value
		if format == OutputFormatTable {
			value = pkgstrings.Truncate(value, pkgstrings.DefaultValueMaxLen)
		}
		t.AppendRow(table.Row{e.Name, value})
	}
	t.Render()
	return nil
}
