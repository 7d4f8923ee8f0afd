package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateOption is returned when two descriptors share a name.
	ErrDuplicateOption = errors.New("duplicate option")

	// ErrInvalidOption is returned for a descriptor that cannot be declared.
	ErrInvalidOption = errors.New("invalid option declaration")

	// ErrUnknownOption is returned when a value is requested for a name the
	// schema does not declare.
	ErrUnknownOption = errors.New("unknown option")

	// ErrMissingRequired is returned when run options are still unset after
	// every source has been applied.
	ErrMissingRequired = errors.New("missing required option")
)

// SourceError reports that the tokens of one source were rejected.
type SourceError struct {
	Source Source
	Err    error
}

func (e *SourceError) Error() string {
	if e.Source == SourceCommandLine {
		return fmt.Sprintf("invalid command line: %v", e.Err)
	}
	return fmt.Sprintf("invalid option in %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// MissingRequiredError lists the run options that no source provided.
type MissingRequiredError struct {
	Names []string
}

func (e *MissingRequiredError) Error() string {
	flags := make([]string, len(e.Names))
	for i, name := range e.Names {
		flags[i] = "--" + name
	}
	if len(flags) == 1 {
		return fmt.Sprintf("required option %s is missing", flags[0])
	}
	return fmt.Sprintf("required options %s are missing", strings.Join(flags, ", "))
}

func (e *MissingRequiredError) Is(target error) bool {
	return target == ErrMissingRequired
}
