package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tycho-core/console-app/pkg/logging"
	"github.com/tycho-core/console-app/pkg/schema"
	pkgstrings "github.com/tycho-core/console-app/pkg/strings"
)

const (
	// Name is the application name, and the store namespace app.
	Name = "demo"

	// Description heads the usage text.
	Description = "Demo application: reports the options it resolved and where each value came from"
)

// App is a sample console application. It declares options in every
// segment and reports the resolved values.
type App struct {
	out io.Writer
}

// New returns an App writing its report to out, or stdout when out is nil.
func New(out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{out: out}
}

// RegisterOptions declares the demo options.
func (a *App) RegisterOptions(s *schema.Schema) {
	s.Global().
		Switch("verbose", "print every option, not only the explicitly set ones", false).
		Duration("wait", "keep running for this long, or until interrupted", 0)

	s.Visible().
		String("net.host", "host to report", "localhost").
		Int("net.port", "port to report", 8080).
		Float("net.backoff", "retry backoff factor", 1.5).
		Switch("output.color", "colour the report", true).
		Strings("output.tags", "tags to attach to the report", nil)

	schema.Required[string](s.Run(), "target", "name of the report")
	s.Positional("target")
}

// Run prints the report and optionally waits.
func (a *App) Run(ctx context.Context, values *schema.Values) error {
	target, err := values.GetString("target")
	if err != nil {
		return err
	}
	logging.Debug("Demo", "Reporting %s", target)

	fmt.Fprintf(a.out, "Report: %s\n", target)
	if err := a.writeReport(values); err != nil {
		return err
	}

	for _, c := range values.Collisions() {
		fmt.Fprintf(a.out, "--%s: %s value kept over %s\n", c.Name, c.Kept, collisionLoser(c))
	}

	wait, err := values.GetDuration("wait")
	if err != nil {
		return err
	}
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		fmt.Fprintln(a.out, "Interrupted")
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (a *App) writeReport(values *schema.Values) error {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleRounded)
	if values.Bool("output.color") {
		t.Style().Color.Header = text.Colors{text.Bold, text.FgHiCyan}
	}
	t.AppendHeader(table.Row{"OPTION", "VALUE", "SOURCE"})

	verbose := values.Bool("verbose")
	for _, d := range values.Schema().Descriptors(schema.SegmentGlobal, schema.SegmentVisible, schema.SegmentRun) {
		if !verbose && !values.IsSet(d.Name) {
			continue
		}
		value, ok := values.Lookup(d.Name)
		if !ok {
			return fmt.Errorf("option --%s has no value", d.Name)
		}
		t.AppendRow(table.Row{d.Name, pkgstrings.Truncate(value, pkgstrings.DefaultValueMaxLen), values.Source(d.Name).String()})
	}
	t.Render()
	return nil
}

func collisionLoser(c schema.Collision) schema.Source {
	if c.Kept == c.Previous {
		return c.Incoming
	}
	return c.Previous
}

// PrintExtraHelp appends examples to --help.
func (a *App) PrintExtraHelp(w io.Writer) {
	fmt.Fprint(w, `Examples:
  demo nightly --net.port=9090
  demo @demo.cfg nightly
  demo --genresponse=demo.cfg
`)
}
