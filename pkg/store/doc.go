// Package store provides the persistent per-application option stores.
//
// A store holds flat name/value pairs per Namespace (vendor and application
// name). The console enumerates the namespace on every run and replays the
// entries as --name=value tokens through Tokens. Backends:
//
//   - FileStore: one YAML file per namespace under ~/.config/<vendor>/<app>.yaml
//   - ConfigMapStore: one Kubernetes ConfigMap per namespace
//   - MemoryStore: process-local, for tests and embedding
//   - NoopStore: for platforms without a store
//
// FileStore, ConfigMapStore and MemoryStore also implement Manager, which the
// console-app tool uses to edit entries.
package store
