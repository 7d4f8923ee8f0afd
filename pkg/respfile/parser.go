package respfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tycho-core/console-app/pkg/logging"
)

// maxLineSize bounds a single response file line.
const maxLineSize = 1024 * 1024

// Parse converts a response file stream into an ordered list of argument
// tokens of the form "--name" or "--name=value".
//
// Parse never fails: lines that fit no rule degrade into switches and empty
// lines are skipped. A read error ends parsing early and the tokens gathered
// so far are returned.
func Parse(r io.Reader) []string {
	var (
		tokens []string
		scope  string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := Classify(scanner.Text())

		switch line.Kind {
		case LineEmpty:
			continue
		case LineGroup:
			scope = line.Group
			continue
		}

		if token, ok := line.Token(scope); ok {
			tokens = append(tokens, token)
		} else {
			logging.Debug("ResponseFile", "line %d: %s without value skipped", lineNo, line.Key)
		}
	}

	if err := scanner.Err(); err != nil {
		logging.Warn("ResponseFile", "stopped reading at line %d: %v", lineNo, err)
	}

	return tokens
}

// ReadFile reads and parses the response file at path. Only I/O failures are
// reported; the content itself cannot make ReadFile fail.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response file: %w", err)
	}

	tokens := Parse(bytes.NewReader(data))
	logging.Debug("ResponseFile", "parsed %d tokens from %s", len(tokens), path)
	return tokens, nil
}
