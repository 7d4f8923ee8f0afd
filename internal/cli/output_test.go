package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-core/console-app/pkg/store"
)

var (
	testNamespace = store.Namespace{Vendor: "acme", App: "demo"}
	testEntries   = []store.Entry{
		{Name: "net.port", Value: "8080"},
		{Name: "verbose", Value: "true"},
	}
)

func TestParseOutputFormat(t *testing.T) {
	for _, valid := range []string{"table", "plain", "json", "yaml", "YAML"} {
		_, err := ParseOutputFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseOutputFormat("xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestWriteEntries_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, testNamespace, testEntries, OutputFormatTable, false))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "net.port")
	assert.Contains(t, out, "8080")
	assert.Contains(t, out, "╭")
}

func TestWriteEntries_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, testNamespace, testEntries, OutputFormatPlain, true))

	out := buf.String()
	assert.NotContains(t, out, "NAME")
	assert.NotContains(t, out, "│")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"net.port", "8080"}, strings.Fields(lines[0]))
}

func TestWriteEntries_LongValues(t *testing.T) {
	long := []store.Entry{{Name: "hosts", Value: strings.Repeat("host.example.org,", 10)}}

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, testNamespace, long, OutputFormatTable, false))
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), long[0].Value)

	buf.Reset()
	require.NoError(t, WriteEntries(&buf, testNamespace, long, OutputFormatPlain, true))
	assert.Contains(t, buf.String(), long[0].Value)
}

func TestWriteEntries_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, testNamespace, testEntries, OutputFormatJSON, false))

	var decoded []store.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testEntries, decoded)

	buf.Reset()
	require.NoError(t, WriteEntries(&buf, testNamespace, nil, OutputFormatJSON, false))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteEntries_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, testNamespace, testEntries, OutputFormatYAML, false))
	assert.Contains(t, buf.String(), "- name: net.port\n  value: \"8080\"\n")
}

func TestWriteEntries_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, testNamespace, nil, OutputFormatTable, false))
	assert.Contains(t, buf.String(), "No entries in acme/demo")
}

func TestErrors(t *testing.T) {
	notFound := fmt.Errorf("lookup: %w", &EntryNotFoundError{Name: "port", Namespace: "acme/demo"})
	assert.True(t, errors.Is(notFound, &EntryNotFoundError{}))
	assert.Contains(t, notFound.Error(), `Entry "port" not found in acme/demo`)

	reason := errors.New("no kubeconfig")
	unavailable := &StoreUnavailableError{Backend: "configmap", Reason: reason}
	assert.ErrorIs(t, unavailable, reason)
	assert.True(t, errors.Is(unavailable, &StoreUnavailableError{}))
	assert.Contains(t, unavailable.Error(), `Store backend "configmap" is unavailable: no kubeconfig`)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatError(errors.New("broken")), "broken")
}
