// Package app bootstraps the console-app tool.
//
// NewApplication loads the tool configuration, initialises logging and opens
// the configured persistent store backend:
//
//   - file: YAML documents under store.root (default ~/.config)
//   - configmap: one ConfigMap per namespace in store.namespace, using the
//     current kubeconfig or in-cluster configuration
//   - none: an empty read-only store
//
// The resulting Application hands the store and merge policy to the cobra
// commands and, through ConsoleOptions, to hosted console applications.
package app
