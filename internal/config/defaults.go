package config

const (
	// DefaultVendor is the namespace vendor used when none is configured.
	DefaultVendor = "tycho"

	// DefaultKubernetesNamespace holds the store ConfigMaps by default.
	DefaultKubernetesNamespace = "default"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() ToolConfig {
	return ToolConfig{
		Vendor:   DefaultVendor,
		LogLevel: "info",
		Policy:   "override",
		Store: StoreConfig{
			Backend:   StoreBackendFile,
			Namespace: DefaultKubernetesNamespace,
		},
	}
}
