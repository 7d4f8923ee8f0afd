package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/client"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/tycho-core/console-app/internal/app"
	"github.com/tycho-core/console-app/internal/cli"
	"github.com/tycho-core/console-app/pkg/store"
)

// storeFlags holds the flags of the store command group.
type storeFlags struct {
	vendor        string
	kubeNamespace string
	outputFile    string
}

// newStoreCmd creates the store command group.
func newStoreCmd(flags *cli.CommandFlags) *cobra.Command {
	sf := &storeFlags{}

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and edit persistent option values",
		Long: `Inspect and edit the option values an application reads from the
persistent store. Values are kept per application, in the namespace
<vendor>/<app>; the vendor comes from the configuration unless --vendor is given.

The store backend is selected in config.yaml:
  store:
    backend: file        # file, configmap or none
    root: ~/.config      # file backend: <root>/<vendor>/<app>.yaml
    namespace: default   # configmap backend: Kubernetes namespace

Examples:
  console-app store list demo
  console-app store set demo net.port 9090
  console-app store get demo net.port
  console-app store unset demo net.port
  console-app store export demo > demo-configmap.yaml`,
	}
	storeCmd.PersistentFlags().StringVar(&sf.vendor, "vendor", "", "Vendor part of the namespace (default: from configuration)")

	listCmd := &cobra.Command{
		Use:     "list <app>",
		Aliases: []string{"ls"},
		Short:   "List the stored values of an application",
		Args:    exactArgs("app"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ns, err := openNamespace(flags, sf, args[0])
			if err != nil {
				return err
			}
			format, err := cli.ParseOutputFormat(flags.OutputFormat)
			if err != nil {
				return err
			}
			entries, err := a.Store().Enumerate(cmd.Context(), ns)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", ns, err)
			}
			return cli.WriteEntries(cmd.OutOrStdout(), ns, entries, format, flags.NoHeaders)
		},
	}
	cli.RegisterOutputFlags(listCmd, flags)

	getCmd := &cobra.Command{
		Use:   "get <app> <name>",
		Short: "Print one stored value",
		Args:  exactArgs("app", "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ns, err := openNamespace(flags, sf, args[0])
			if err != nil {
				return err
			}
			value, ok, err := a.Store().Get(cmd.Context(), ns, args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", ns, err)
			}
			if !ok {
				return &cli.EntryNotFoundError{Name: args[1], Namespace: ns.String()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <app> <name> <value>",
		Short: "Store a value",
		Long: `Store a value. Switches are stored as true or false.

The value is replayed as --<name>=<value> on every run of the application.`,
		Args: exactArgs("app", "name", "value"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ns, err := openNamespace(flags, sf, args[0])
			if err != nil {
				return err
			}
			if err := a.Store().Set(cmd.Context(), ns, args[1], args[2]); err != nil {
				return fmt.Errorf("failed to update %s: %w", ns, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s set in %s", args[1], ns)))
			return nil
		},
	}

	unsetCmd := &cobra.Command{
		Use:     "unset <app> <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored value",
		Args:    exactArgs("app", "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ns, err := openNamespace(flags, sf, args[0])
			if err != nil {
				return err
			}
			removed, err := a.Store().Unset(cmd.Context(), ns, args[1])
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", ns, err)
			}
			if !removed {
				return &cli.EntryNotFoundError{Name: args[1], Namespace: ns.String()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s removed from %s", args[1], ns)))
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <app>",
		Short: "Render the stored values as a Kubernetes ConfigMap manifest",
		Long: `Render the stored values of an application as the ConfigMap the
configmap backend would hold. Apply it to move values from a workstation
into a cluster.`,
		Args: exactArgs("app"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ns, err := openNamespace(flags, sf, args[0])
			if err != nil {
				return err
			}
			entries, err := a.Store().Enumerate(cmd.Context(), ns)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", ns, err)
			}
			manifest, err := exportManifest(a, ns, entries, sf.kubeNamespace)
			if err != nil {
				return err
			}

			if sf.outputFile == "" {
				_, err = cmd.OutOrStdout().Write(manifest)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(sf.outputFile), 0755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", sf.outputFile, err)
			}
			if err := os.WriteFile(sf.outputFile, manifest, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", sf.outputFile, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("%s exported to %s", ns, sf.outputFile)))
			return nil
		},
	}
	exportCmd.Flags().StringVar(&sf.kubeNamespace, "namespace", "", "Kubernetes namespace of the ConfigMap (default: store.namespace from configuration)")
	exportCmd.Flags().StringVarP(&sf.outputFile, "file", "f", "", "Write the manifest to a file instead of stdout")

	storeCmd.AddCommand(listCmd, getCmd, setCmd, unsetCmd, exportCmd)
	return storeCmd
}

// openNamespace bootstraps the tool and resolves the namespace of appName.
func openNamespace(flags *cli.CommandFlags, sf *storeFlags, appName string) (*app.Application, store.Namespace, error) {
	a, err := bootstrap(flags)
	if err != nil {
		return nil, store.Namespace{}, err
	}

	ns := a.Namespace(appName)
	if sf.vendor != "" {
		ns.Vendor = sf.vendor
	}
	if err := ns.Validate(); err != nil {
		return nil, store.Namespace{}, err
	}
	return a, ns, nil
}

// exportManifest renders entries as a ConfigMap manifest.
func exportManifest(a *app.Application, ns store.Namespace, entries []store.Entry, kubeNamespace string) ([]byte, error) {
	name, err := store.ConfigMapName(ns)
	if err != nil {
		return nil, err
	}
	if kubeNamespace == "" {
		kubeNamespace = a.ToolConfig().Store.Namespace
	}

	data := make(map[string]string, len(entries))
	for _, e := range entries {
		data[e.Name] = e.Value
	}

	cm := store.NewConfigMap(client.ObjectKey{Namespace: kubeNamespace, Name: name}, ns, data)
	out, err := sigsyaml.Marshal(cm)
	if err != nil {
		return nil, fmt.Errorf("failed to render ConfigMap %s: %w", name, err)
	}
	return out, nil
}
