// Package config provides configuration management for the console-app tool.
//
// Configuration is read from config.yaml in a single directory. The default
// directory is ~/.config/console-app; commands accept --config-path to use
// another one. A missing file means all defaults apply.
//
// # File Format
//
//	vendor: acme          # vendor part of store namespaces
//	logLevel: info        # debug, info, warn, error
//	policy: override      # override or fallback
//	store:
//	  backend: file       # file, configmap or none
//	  root: /srv/config   # file backend root, default ~/.config
//	  namespace: tools    # Kubernetes namespace for the configmap backend
//
// Values are applied on top of GetDefaultConfig and validated after loading.
package config
