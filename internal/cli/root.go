// Package cli implements eaglecoolctl, a maintainer-facing demo CLI that
// exercises all four of this module's core subsystems — the Filter
// Engine, Bare Library I/O, the Scoped Config Store, and the Change
// Subscription Manager — against a real or fixture library directory.
// Structured after the teacher's internal/cli: a rootCmd carrying
// PersistentPreRunE that resolves shared state, one command per file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/config"
	"github.com/eaglecooler/core/internal/hostapi"
	"github.com/eaglecooler/core/internal/toolconfig"
)

var (
	libraryFlag  string
	hostFlag     string
	tokenFlag    string
	pluginIDFlag string
	configFlag   string
	stateFlag    string
	profileFlag  string

	resolvedLibraryPath string
	resolvedHostURL     string
	resolvedConfigPath  string
	resolvedStatePath   string
	toolCfg             *toolconfig.Config
	toolState           *toolconfig.State
	fsHost              *FSHost
)

var rootCmd = &cobra.Command{
	Use:   "eaglecoolctl",
	Short: "Exercise the eaglecooler core against a library directory",
	Long: `eaglecoolctl is a maintainer CLI over this module's core packages:
the Filter Engine, Bare Library I/O, the Scoped Config Store, and the
Change Subscription Manager. It is not a plugin host — it's the operator
tool the teacher repo's own "rvn" is for its vault core.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}

		var err error
		if configFlag != "" {
			resolvedConfigPath = configFlag
			toolCfg, err = loadToolConfig(resolvedConfigPath)
		} else {
			resolvedConfigPath = toolconfig.DefaultPath()
			toolCfg, err = toolconfig.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		resolvedStatePath = toolconfig.ResolveStatePath(stateFlag, resolvedConfigPath)
		toolState, err = toolconfig.LoadState(resolvedStatePath)
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		ConfigureTheme(toolCfg.UI.Accent)

		resolvedLibraryPath = libraryFlag
		if resolvedLibraryPath == "" {
			resolvedLibraryPath = toolCfg.DefaultLibraryPath
		}
		if resolvedLibraryPath == "" {
			resolvedLibraryPath = toolState.ActiveLibrary
		}

		resolvedHostURL = hostFlag
		if resolvedHostURL == "" {
			resolvedHostURL = toolCfg.DefaultHostURL
		}

		if profileFlag != "" {
			profiles, err := toolconfig.LoadProfiles(toolconfig.ProfilesPath(resolvedConfigPath))
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			profile, ok := profiles[profileFlag]
			if !ok {
				return fmt.Errorf("unknown profile %q in %s", profileFlag, toolconfig.ProfilesPath(resolvedConfigPath))
			}
			if libraryFlag == "" && profile.LibraryPath != "" {
				resolvedLibraryPath = profile.LibraryPath
			}
			if hostFlag == "" && profile.HostURL != "" {
				resolvedHostURL = profile.HostURL
			}
		}

		pluginID := pluginIDFlag
		if pluginID == "" {
			pluginID = toolState.CachedPluginID
		}
		if pluginID == "" {
			pluginID = "eaglecoolctl"
		}
		manifest := hostapi.Manifest{ID: pluginID, Name: "eaglecoolctl"}
		config.InitPlugin(manifest)

		if resolvedLibraryPath != "" {
			fsHost = NewFSHost(resolvedLibraryPath)
			fsHost.FireOnCreate(manifest)
		}

		return nil
	},
}

// loadToolConfig loads an explicit --config path, defaulting to an empty
// config when the file doesn't exist yet (mirrors toolconfig.Load's
// behavior for the default path).
func loadToolConfig(path string) (*toolconfig.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &toolconfig.Config{}, nil
	}
	return toolconfig.LoadFrom(path)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&libraryFlag, "library", "l", "", "library root directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "host control-plane base URL (default http://localhost:41595)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "explicit host API token")
	rootCmd.PersistentFlags().StringVar(&pluginIDFlag, "plugin-id", "", "plugin id to report to the Scoped Config Store")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "eaglecoolctl config.toml path")
	rootCmd.PersistentFlags().StringVar(&stateFlag, "state", "", "eaglecoolctl state.toml path")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "named library/host profile from eaglecoolctl.yaml")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON output")
}
