// Package cli provides command-line interface utilities for the console-app tool.
//
// It holds the pieces shared by the cobra commands:
//   - CommandFlags and the registration helpers for --config-path, --debug,
//     --output and --no-headers
//   - WriteEntries, which renders store entries as a rounded table, a
//     kubectl-style plain table, JSON or YAML
//   - typed errors that the root command maps to exit codes
//   - small helpers for coloured success, warning and error lines
package cli
