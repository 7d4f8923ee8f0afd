package demo

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-core/console-app/pkg/consoleapp"
	"github.com/tycho-core/console-app/pkg/store"
)

type run struct {
	out, stdout, stderr bytes.Buffer
	mem                 *store.MemoryStore
	interrupts          *consoleapp.Interrupts
}

func newRun() *run {
	return &run{mem: store.NewMemoryStore(), interrupts: consoleapp.NewInterrupts()}
}

func (r *run) exec(ctx context.Context, args ...string) int {
	c := consoleapp.New(Name, Description, New(&r.out),
		consoleapp.WithStore(r.mem, "acme"),
		consoleapp.WithOutput(&r.stdout, &r.stderr),
		consoleapp.WithInterrupts(r.interrupts))
	return c.Run(ctx, args)
}

func TestRun_ReportsExplicitOptions(t *testing.T) {
	r := newRun()
	code := r.exec(context.Background(), "nightly", "--net.port=9090", "--output.tags=a,b")
	require.Equal(t, consoleapp.ExitCodeSuccess, code, r.stderr.String())

	out := r.out.String()
	assert.Contains(t, out, "Report: nightly")
	assert.Contains(t, out, "9090")
	assert.Contains(t, out, "a,b")
	assert.Contains(t, out, "command line")
	assert.NotContains(t, out, "localhost", "defaults are hidden without --verbose")
}

func TestRun_VerboseShowsDefaults(t *testing.T) {
	r := newRun()
	code := r.exec(context.Background(), "--verbose", "--output.color=false", "nightly")
	require.Equal(t, consoleapp.ExitCodeSuccess, code, r.stderr.String())

	out := r.out.String()
	assert.Contains(t, out, "localhost")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "default")
}

func TestRun_StoreValueAndCollision(t *testing.T) {
	r := newRun()
	ns := store.Namespace{Vendor: "acme", App: Name}
	require.NoError(t, r.mem.Set(context.Background(), ns, "net.host", "example.org"))
	require.NoError(t, r.mem.Set(context.Background(), ns, "net.port", "7000"))

	code := r.exec(context.Background(), "nightly", "--net.port=9090")
	require.Equal(t, consoleapp.ExitCodeSuccess, code, r.stderr.String())

	out := r.out.String()
	assert.Contains(t, out, "example.org")
	assert.Contains(t, out, "persistent store")
	assert.Contains(t, out, "7000")
	assert.Contains(t, out, "--net.port: persistent store value kept over command line")
	assert.NotContains(t, out, "9090")
}

func TestRun_MissingTarget(t *testing.T) {
	r := newRun()
	code := r.exec(context.Background(), "--net.port=9090")

	assert.Equal(t, consoleapp.ExitCodeError, code)
	assert.Contains(t, r.stderr.String(), "required option --target is missing")
	assert.Empty(t, r.out.String())
}

func TestRun_WaitInterrupted(t *testing.T) {
	r := newRun()
	done := make(chan int, 1)
	go func() {
		done <- r.exec(context.Background(), "--wait=1h", "nightly")
	}()

	require.Eventually(t, r.interrupts.Trigger, 5*time.Second, 10*time.Millisecond)

	select {
	case code := <-done:
		assert.Equal(t, consoleapp.ExitCodeInterrupted, code)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after the interrupt")
	}
	assert.Contains(t, r.out.String(), "Interrupted")
}

func TestRun_WaitElapses(t *testing.T) {
	r := newRun()
	code := r.exec(context.Background(), "--wait=10ms", "nightly")
	assert.Equal(t, consoleapp.ExitCodeSuccess, code, r.stderr.String())
}

func TestHelpIncludesExamples(t *testing.T) {
	r := newRun()
	code := r.exec(context.Background(), "--help")
	require.Equal(t, consoleapp.ExitCodeSuccess, code)

	help := r.stdout.String()
	assert.Contains(t, help, Description)
	assert.Contains(t, help, "--target")
	assert.Contains(t, help, "--verbose")
	assert.Contains(t, help, "Examples:")
	assert.Empty(t, r.out.String())
}
