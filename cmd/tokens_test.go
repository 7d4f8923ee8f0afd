package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponseFile = `# sample
verbose
[net]
port = 9090   # trailing comment
host =
log.level = debug
`

func TestTokensCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.cfg")
	require.NoError(t, os.WriteFile(path, []byte(sampleResponseFile), 0644))

	r := execute(context.Background(), testEnv{}, "tokens", path)
	require.NoError(t, r.err)
	assert.Equal(t, "--verbose\n--net.port=9090\n--log.level=debug\n", r.stdout)
}

func TestTokensCommand_MissingFile(t *testing.T) {
	r := execute(context.Background(), testEnv{}, "tokens", filepath.Join(t.TempDir(), "missing.cfg"))
	assert.ErrorContains(t, r.err, "failed to read response file")
}

func TestTokensCommand_WatchStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.cfg")
	require.NoError(t, os.WriteFile(path, []byte("verbose\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	r := execute(ctx, testEnv{}, "tokens", path, "--watch")
	require.NoError(t, r.err)
	assert.Equal(t, "--verbose", strings.TrimSpace(r.stdout))
}
