package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/config"
)

var (
	configScopeFlag      string
	configPluginOnlyFlag bool
	configByNameFlag     bool
	configByUUIDFlag     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write the Scoped Config Store",
}

func resolveStore() (*config.Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	var kind config.Kind
	switch configScopeFlag {
	case "", "global":
		kind = config.KindGlobal
	case "plugin":
		kind = config.KindPlugin
	case "library":
		kind = config.KindLibrary
	default:
		return nil, fmt.Errorf("unknown scope %q: want global, plugin, or library", configScopeFlag)
	}

	scope := config.Scope{
		Kind:           kind,
		ThisPluginOnly: configPluginOnlyFlag,
		UseLibraryName: configByNameFlag,
		UseLibraryUUID: configByUUIDFlag,
	}
	if kind == config.KindLibrary {
		if resolvedLibraryPath == "" {
			return nil, fmt.Errorf("library scope requires --library or a configured default_library_path")
		}
		scope.LibraryRoot = resolvedLibraryPath
		if fsHost != nil {
			if identity, err := fsHost.LibraryIdentity(); err == nil {
				scope.LibraryName = identity.Name
			}
		}
	}

	return config.New(homeDir, scope), nil
}

func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configScopeFlag, "scope", "global", "global, plugin, or library")
	cmd.Flags().BoolVar(&configPluginOnlyFlag, "this-plugin-only", false, "restrict a global/library scope to this plugin's own section")
	cmd.Flags().BoolVar(&configByNameFlag, "use-library-name", false, "key the library scope by library name instead of its root path")
	cmd.Flags().BoolVar(&configByUUIDFlag, "use-library-uuid", false, "key the library scope by its persistent identity uuid (takes precedence over --use-library-name)")
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a single key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := resolveStore()
		if err != nil {
			return handleError("bad_scope", err)
		}
		v, ok, err := store.Get(args[0])
		if err != nil {
			return handleError("read_failed", err)
		}
		if !ok {
			return handleError("not_found", fmt.Errorf("key not set: %s", args[0]))
		}
		if isJSONOutput() {
			outputSuccess(v, nil)
			return nil
		}
		data, _ := json.Marshal(v)
		fmt.Println(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <json-value>",
	Short: "Set a single key to a JSON-encoded value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := resolveStore()
		if err != nil {
			return handleError("bad_scope", err)
		}
		var value interface{}
		if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
			// Not valid JSON — treat the raw argument as a plain string.
			value = args[1]
		}
		if err := store.Set(args[0], value); err != nil {
			return handleError("write_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(nil, nil)
			return nil
		}
		fmt.Println(Success(fmt.Sprintf("set %s", args[0])))
		return nil
	},
}

var configRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a single key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := resolveStore()
		if err != nil {
			return handleError("bad_scope", err)
		}
		existed, err := store.Remove(args[0])
		if err != nil {
			return handleError("write_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]bool{"existed": existed}, nil)
			return nil
		}
		fmt.Println(Success(fmt.Sprintf("removed %s (existed=%v)", args[0], existed)))
		return nil
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear this scope's section",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := resolveStore()
		if err != nil {
			return handleError("bad_scope", err)
		}
		if err := store.Clear(); err != nil {
			return handleError("write_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(nil, nil)
			return nil
		}
		fmt.Println(Success("cleared"))
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List keys set in this scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := resolveStore()
		if err != nil {
			return handleError("bad_scope", err)
		}
		keys, err := store.Keys()
		if err != nil {
			return handleError("read_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(keys, &Meta{Count: len(keys)})
			return nil
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{configGetCmd, configSetCmd, configRemoveCmd, configClearCmd, configKeysCmd} {
		addScopeFlags(cmd)
		configCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(configCmd)
}
