package consoleapp

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Exit codes returned by Console.Run.
const (
	// ExitCodeSuccess indicates a successful run, --help or --genresponse.
	ExitCodeSuccess = 0
	// ExitCodeError indicates invalid options, an I/O failure or an
	// application error.
	ExitCodeError = 1
	// ExitCodeInterrupted indicates the application stopped because of an
	// interrupt signal.
	ExitCodeInterrupted = 130
)

// ExitError lets an application choose its exit code. A nil Err exits
// silently with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit returns an *ExitError with the given code and message.
func Exit(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// exitCode maps an application error to a process exit code.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeError
}

// panicMessage extracts a message from a recovered panic value.
func panicMessage(r any) string {
	var msg string
	switch v := r.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	case fmt.Stringer:
		msg = v.String()
	}
	if strings.TrimSpace(msg) == "" {
		return "unknown"
	}
	return msg
}

// ioReason strips the operation and path from file system errors so the
// path is not repeated in console messages.
func ioReason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

// sentence capitalises the first letter of an error message.
func sentence(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
