// Package logging provides subsystem-tagged structured logging for console-app
// and the applications it hosts.
//
// It is a thin layer over the standard slog package: every entry carries a
// subsystem attribute, messages use printf-style formatting and level
// filtering happens in the handler.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Resolve", "loaded %d tokens from %s", n, path)
//	logging.Warn("Resolve", "option --%s set by both %s and %s", name, a, b)
//	logging.Error("Store", err, "failed to enumerate %s", ns)
//
// # Subsystems
//
//   - Console: special commands and the application run phase
//   - Resolve: the per-source merge passes
//   - ResponseFile: response file loading
//   - Store: persistent store backends
//   - Bootstrap: tool configuration and backend selection
//
// Before InitForCLI is called, Debug and Info are discarded and Warn/Error go
// to stderr, so embedding applications that never configure logging still see
// problems.
//
// InitForCLI also points the controller-runtime logger at the same handler,
// which keeps the ConfigMap store quiet about an unset logger.
package logging
