package cli

import (
	"fmt"
)

// EntryNotFoundError indicates a store entry does not exist.
type EntryNotFoundError struct {
	// Name is the entry that was requested.
	Name string
	// Namespace is the vendor/app namespace that was searched.
	Namespace string
}

// Error returns a user-friendly error message with actionable guidance.
func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf(`Entry %q not found in %s

To list the stored entries, run:
  console-app store list %s`, e.Name, e.Namespace, e.Namespace)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *EntryNotFoundError) Is(target error) bool {
	_, ok := target.(*EntryNotFoundError)
	return ok
}

// StoreUnavailableError indicates the configured store backend could not be
// opened.
type StoreUnavailableError struct {
	// Backend is the configured backend name.
	Backend string
	// Reason is the underlying error.
	Reason error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf(`Store backend %q is unavailable: %v

Check the store section of the console-app configuration, or select
another backend with:
  store:
    backend: file`, e.Backend, e.Reason)
}

// Unwrap returns the underlying error.
func (e *StoreUnavailableError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *StoreUnavailableError) Is(target error) bool {
	_, ok := target.(*StoreUnavailableError)
	return ok
}
