package consoleapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tycho-core/console-app/pkg/logging"
	"github.com/tycho-core/console-app/pkg/respfile"
	"github.com/tycho-core/console-app/pkg/schema"
	"github.com/tycho-core/console-app/pkg/store"
	"github.com/tycho-core/console-app/pkg/template"
)

// Application is hosted by a Console.
type Application interface {
	// RegisterOptions declares the application's options. It is called once
	// per run, after the internal options have been declared.
	RegisterOptions(s *schema.Schema)

	// Run executes the application with the resolved values. ctx is
	// cancelled on interrupt unless the application implements ExitHandler.
	Run(ctx context.Context, values *schema.Values) error
}

// ExtraHelper is implemented by applications that append text to --help.
type ExtraHelper interface {
	PrintExtraHelp(w io.Writer)
}

// ExitHandler is implemented by applications that handle interrupts
// themselves. HandleExit is called at most once per run.
type ExitHandler interface {
	HandleExit()
}

// Console hosts an Application: it resolves options from the command line,
// a response file and the persistent store, handles --help and
// --genresponse, and maps failures to exit codes.
type Console struct {
	name        string
	description string
	app         Application

	store      store.Store
	vendor     string
	policy     schema.Policy
	stdout     io.Writer
	stderr     io.Writer
	interrupts *Interrupts
}

// New creates a console for app. Without WithStore the console has no
// persistent store.
func New(name, description string, app Application, opts ...Option) *Console {
	c := &Console{
		name:        name,
		description: description,
		app:         app,
		store:       store.NoopStore{},
		policy:      schema.PolicyOverride,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.interrupts == nil {
		c.interrupts = DefaultInterrupts()
	}
	return c
}

// Main runs app with the process arguments and exits with its exit code.
func Main(name, description string, app Application, opts ...Option) {
	os.Exit(New(name, description, app, opts...).Run(context.Background(), os.Args[1:]))
}

// Namespace returns the store namespace the console reads.
func (c *Console) Namespace() store.Namespace {
	return store.Namespace{Vendor: c.vendor, App: c.name}
}

// Run resolves the options in args and runs the application. It returns
// the process exit code and never panics.
func (c *Console) Run(ctx context.Context, args []string) (code int) {
	runID := uuid.NewString()
	logging.Debug("Console", "Run %s of %s started with %d arguments", runID, c.name, len(args))

	defer func() {
		if r := recover(); r != nil {
			logging.Debug("Console", "Run %s panicked: %v", runID, r)
			c.fatal(panicMessage(r))
			code = ExitCodeError
		}
	}()

	s := schema.New()
	s.AddInternalOptions()
	c.app.RegisterOptions(s)
	if err := s.Err(); err != nil {
		c.fatal(fmt.Sprintf("invalid option declarations: %v", err))
		return ExitCodeError
	}

	args = expandResponseFileArgs(args)
	values := schema.NewValues(s, c.policy)

	cliErr := values.Apply(schema.SourceCommandLine, args)
	if wantsHelp(args) || (cliErr == nil && values.Bool(schema.OptionHelp)) {
		c.writeUsage(c.stdout, s, true)
		return ExitCodeSuccess
	}
	if cliErr != nil {
		return c.usageError(s, cliErr)
	}

	if values.IsSet(schema.OptionGenResponse) {
		return c.generateResponseFile(s, values.String(schema.OptionGenResponse))
	}

	if values.IsSet(schema.OptionResponseFile) {
		path := values.String(schema.OptionResponseFile)
		tokens, err := respfile.ReadFile(path)
		if err != nil {
			fmt.Fprintf(c.stderr, "Unable to open response file %s: %v\n", path, ioReason(err))
			return ExitCodeError
		}
		if err := values.Apply(schema.SourceResponseFile, tokens); err != nil {
			return c.usageError(s, err)
		}
	}

	ns := c.Namespace()
	entries, err := c.store.Enumerate(ctx, ns)
	if err != nil {
		fmt.Fprintf(c.stderr, "Unable to read persistent store %s: %v\n", ns, err)
		return ExitCodeError
	}
	if err := values.Apply(schema.SourceStore, store.Tokens(entries)); err != nil {
		return c.usageError(s, err)
	}

	if err := values.CheckRequired(); err != nil {
		return c.usageError(s, &schema.SourceError{Source: schema.SourceCommandLine, Err: err})
	}

	for _, name := range values.Names() {
		logging.Debug("Resolve", "--%s set by %s", name, values.Source(name))
	}

	return c.runApplication(ctx, runID, values)
}

func (c *Console) runApplication(ctx context.Context, runID string, values *schema.Values) int {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var interrupted atomic.Bool
	onInterrupt := func() {
		interrupted.Store(true)
		cancel()
	}
	if h, ok := c.app.(ExitHandler); ok {
		onInterrupt = func() {
			interrupted.Store(true)
			h.HandleExit()
		}
	}
	unregister := c.interrupts.Register(onInterrupt)
	defer unregister()

	err := c.app.Run(runCtx, values)
	if err == nil {
		logging.Debug("Console", "Run %s finished", runID)
		return ExitCodeSuccess
	}

	if interrupted.Load() && errors.Is(err, context.Canceled) {
		logging.Info("Console", "%s interrupted", c.name)
		return ExitCodeInterrupted
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return exitErr.Code
	}

	c.fatal(err.Error())
	return exitCode(err)
}

func (c *Console) generateResponseFile(s *schema.Schema, path string) int {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "Unable to create response file %s: %v\n", path, ioReason(err))
		return ExitCodeError
	}

	werr := template.WriteConfigFile(f, c.name, s)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		fmt.Fprintf(c.stderr, "Unable to create response file %s: %v\n", path, ioReason(werr))
		return ExitCodeError
	}

	logging.Info("Console", "Wrote response file template to %s", path)
	return ExitCodeSuccess
}

// usageError reports a rejected source followed by the short usage.
func (c *Console) usageError(s *schema.Schema, err error) int {
	fmt.Fprintln(c.stderr, sentence(err))
	c.writeUsage(c.stderr, s, false)
	return ExitCodeError
}

func (c *Console) writeUsage(w io.Writer, s *schema.Schema, long bool) {
	if err := template.WriteUsage(w, c.description, s); err != nil {
		logging.Debug("Console", "writing usage: %v", err)
		return
	}
	if h, ok := c.app.(ExtraHelper); ok && long {
		fmt.Fprintln(w)
		h.PrintExtraHelp(w)
	}
}

func (c *Console) fatal(msg string) {
	fmt.Fprintf(c.stderr, "Fatal error, terminating: %s\n", msg)
}

// expandResponseFileArgs rewrites @file arguments to --response-file=file.
func expandResponseFileArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if len(arg) > 1 && arg[0] == '@' {
			arg = "--" + schema.OptionResponseFile + "=" + arg[1:]
		}
		out = append(out, arg)
	}
	return out
}

// wantsHelp reports whether args ask for help, whether or not the rest of
// the command line is valid.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case arg == "-h" || arg == "--"+schema.OptionHelp:
			return true
		case strings.HasPrefix(arg, "--"+schema.OptionHelp+"="):
			on, err := strconv.ParseBool(strings.TrimPrefix(arg, "--"+schema.OptionHelp+"="))
			if err == nil && on {
				return true
			}
		}
	}
	return false
}
