package consoleapp

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tycho-core/console-app/pkg/logging"
)

// Interrupts holds at most one shutdown callback and invokes it when an
// interrupt arrives. Registering replaces the current callback.
type Interrupts struct {
	mu      sync.Mutex
	signals []os.Signal
	active  *registration
	sigCh   chan os.Signal
	done    chan struct{}
}

type registration struct {
	fn   func()
	once sync.Once
}

var (
	defaultInterruptsOnce sync.Once
	defaultInterrupts     *Interrupts
)

// DefaultInterrupts returns the process wide registry watching SIGINT and
// SIGTERM.
func DefaultInterrupts() *Interrupts {
	defaultInterruptsOnce.Do(func() {
		defaultInterrupts = NewInterrupts(syscall.SIGINT, syscall.SIGTERM)
	})
	return defaultInterrupts
}

// NewInterrupts returns a registry relaying the given signals while a
// callback is registered. Without signals the registry only fires on
// Trigger.
func NewInterrupts(signals ...os.Signal) *Interrupts {
	return &Interrupts{signals: signals}
}

// Register makes fn the active callback and returns a function removing it.
// Removing a callback that has since been replaced does nothing.
func (i *Interrupts) Register(fn func()) (unregister func()) {
	reg := &registration{fn: fn}

	i.mu.Lock()
	i.active = reg
	if len(i.signals) > 0 && i.sigCh == nil {
		i.sigCh = make(chan os.Signal, 1)
		i.done = make(chan struct{})
		signal.Notify(i.sigCh, i.signals...)
		go i.relay(i.sigCh, i.done)
	}
	i.mu.Unlock()

	return func() {
		i.mu.Lock()
		defer i.mu.Unlock()

		if i.active != reg {
			return
		}
		i.active = nil
		if i.sigCh != nil {
			signal.Stop(i.sigCh)
			close(i.done)
			i.sigCh, i.done = nil, nil
		}
	}
}

// Trigger invokes the active callback. Each registration fires at most
// once; Trigger reports whether this call fired it.
func (i *Interrupts) Trigger() bool {
	i.mu.Lock()
	reg := i.active
	i.mu.Unlock()

	if reg == nil {
		return false
	}

	fired := false
	reg.once.Do(func() {
		fired = true
		reg.fn()
	})
	return fired
}

func (i *Interrupts) relay(sigCh <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-sigCh:
			logging.Info("Console", "Received %s, shutting down", sig)
			i.Trigger()
		case <-done:
			return
		}
	}
}
