package consoleapp

import (
	"io"

	"github.com/tycho-core/console-app/pkg/schema"
	"github.com/tycho-core/console-app/pkg/store"
)

// Option configures a Console.
type Option func(*Console)

// WithStore reads persistent options from st, in the namespace vendor/<app name>.
func WithStore(st store.Store, vendor string) Option {
	return func(c *Console) {
		c.store = st
		c.vendor = vendor
	}
}

// WithPolicy selects how values set by several sources are merged.
func WithPolicy(p schema.Policy) Option {
	return func(c *Console) {
		c.policy = p
	}
}

// WithOutput redirects usage and diagnostics. Help goes to stdout; errors
// and usage after errors go to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Console) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithInterrupts sets the registry the console registers its shutdown
// callback with.
func WithInterrupts(i *Interrupts) Option {
	return func(c *Console) {
		c.interrupts = i
	}
}
