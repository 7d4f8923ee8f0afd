package config

// ToolConfig is the top-level configuration structure for the console-app tool.
type ToolConfig struct {
	Vendor   string      `yaml:"vendor,omitempty"`   // Vendor prefix of store namespaces (default: tycho)
	LogLevel string      `yaml:"logLevel,omitempty"` // debug, info, warn or error (default: info)
	Policy   string      `yaml:"policy,omitempty"`   // Merge policy: override or fallback (default: override)
	Store    StoreConfig `yaml:"store"`
}

// StoreBackend names a persistent store implementation.
type StoreBackend string

const (
	StoreBackendFile      StoreBackend = "file"
	StoreBackendConfigMap StoreBackend = "configmap"
	StoreBackendNone      StoreBackend = "none"
)

// StoreConfig selects and configures the persistent store.
type StoreConfig struct {
	Backend   StoreBackend `yaml:"backend,omitempty"`   // file, configmap or none (default: file)
	Root      string       `yaml:"root,omitempty"`      // Root directory of the file backend (default: ~/.config)
	Namespace string       `yaml:"namespace,omitempty"` // Kubernetes namespace of the configmap backend (default: default)
}
