package app

import (
	"fmt"
	"io"
	"os"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/tycho-core/console-app/internal/cli"
	"github.com/tycho-core/console-app/internal/config"
	"github.com/tycho-core/console-app/pkg/consoleapp"
	"github.com/tycho-core/console-app/pkg/logging"
	"github.com/tycho-core/console-app/pkg/schema"
	"github.com/tycho-core/console-app/pkg/store"
)

// getRestConfig is replaced in tests.
var getRestConfig = ctrl.GetConfig

// Application is the bootstrapped state shared by the console-app commands:
// the loaded tool configuration, the selected store backend and the merge
// policy.
//
// Example usage:
//
//	a, err := app.NewApplication(app.NewConfig(false, ""))
//	if err != nil {
//	    return err
//	}
//	entries, err := a.Store().Enumerate(ctx, a.Namespace("demo"))
type Application struct {
	config *Config
	tool   config.ToolConfig
	store  store.Manager
	policy schema.Policy
}

// NewApplication performs the bootstrap sequence:
//
//  1. Loads config.yaml from cfg.ConfigPath (or ~/.config/console-app)
//  2. Configures logging from the configured level, or debug when cfg.Debug is set
//  3. Opens the configured store backend
//
// A backend that cannot be opened is reported as *cli.StoreUnavailableError.
func NewApplication(cfg *Config) (*Application, error) {
	if cfg.ConfigPath == "" {
		path, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		cfg.ConfigPath = path
	}

	toolCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load console-app configuration: %w", err)
	}

	level, _ := logging.ParseLogLevel(toolCfg.LogLevel)
	if cfg.Debug {
		level = logging.LevelDebug
	}
	var logOutput io.Writer = os.Stderr
	if cfg.LogOutput != nil {
		logOutput = cfg.LogOutput
	}
	logging.InitForCLI(level, logOutput)
	logging.Debug("Bootstrap", "Loaded configuration from %s", cfg.ConfigPath)

	st, err := openStore(toolCfg.Store)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to open %s store", toolCfg.Store.Backend)
		return nil, err
	}
	logging.Debug("Bootstrap", "Using %s store", toolCfg.Store.Backend)

	policy, _ := schema.ParsePolicy(toolCfg.Policy)

	return &Application{
		config: cfg,
		tool:   toolCfg,
		store:  st,
		policy: policy,
	}, nil
}

func openStore(cfg config.StoreConfig) (store.Manager, error) {
	switch cfg.Backend {
	case config.StoreBackendNone:
		return store.NoopStore{}, nil

	case config.StoreBackendConfigMap:
		restCfg, err := getRestConfig()
		if err != nil {
			return nil, &cli.StoreUnavailableError{Backend: string(cfg.Backend), Reason: err}
		}
		st, err := store.NewConfigMapStoreForConfig(restCfg, cfg.Namespace)
		if err != nil {
			return nil, &cli.StoreUnavailableError{Backend: string(cfg.Backend), Reason: err}
		}
		return st, nil

	default:
		if cfg.Root != "" {
			return store.NewFileStoreWithRoot(cfg.Root), nil
		}
		st, err := store.NewFileStore()
		if err != nil {
			return nil, &cli.StoreUnavailableError{Backend: string(config.StoreBackendFile), Reason: err}
		}
		return st, nil
	}
}

// ToolConfig returns the loaded configuration.
func (a *Application) ToolConfig() config.ToolConfig {
	return a.tool
}

// ConfigPath returns the directory the configuration was loaded from.
func (a *Application) ConfigPath() string {
	return a.config.ConfigPath
}

// Store returns the configured store backend.
func (a *Application) Store() store.Manager {
	return a.store
}

// Policy returns the configured merge policy.
func (a *Application) Policy() schema.Policy {
	return a.policy
}

// Namespace returns the store namespace of appName under the configured vendor.
func (a *Application) Namespace(appName string) store.Namespace {
	return store.Namespace{Vendor: a.tool.Vendor, App: appName}
}

// ConsoleOptions returns the console options that host an application
// with the configured store and policy.
func (a *Application) ConsoleOptions() []consoleapp.Option {
	return []consoleapp.Option{
		consoleapp.WithStore(a.store, a.tool.Vendor),
		consoleapp.WithPolicy(a.policy),
	}
}
