package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sandfall/internal/config"
	"sandfall/internal/settings"
)

var (
	configFile string
	preset     string
	overrides  map[string]string
	verbose    bool
)

// main registers the sandsim commands and exits non-zero when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sandsim",
		Short:         "falling sand simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "load a saved preset")
	rootCmd.PersistentFlags().StringToStringVar(&overrides, "set", nil, "override settings, e.g. --set gravity=0.5,theme=light")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newRunCmd(), newTUICmd(), newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// resolveConfig layers the preset or config file, then --set overrides.
func resolveConfig(store *settings.Store) (config.Config, error) {
	return settings.Resolve(store, preset, configFile, overrides)
}

// openStore opens preset storage, falling back to a degraded store.
func openStore() *settings.Store {
	store, err := settings.Open(settings.AppName)
	if err != nil {
		slog.Warn("settings storage unavailable, presets will not persist", "error", err)
	}
	return store
}
