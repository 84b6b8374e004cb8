package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sandfall/internal/settings"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect and persist settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "print the resolved configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(openStore())
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	save := &cobra.Command{
		Use:   "save [name]",
		Short: "save the resolved configuration as a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			cfg, err := resolveConfig(store)
			if err != nil {
				return err
			}
			name := presetArg(args)
			if !store.Persistent() {
				return fmt.Errorf("cannot save preset %q: settings storage unavailable", name)
			}
			if err := store.Save(name, cfg); err != nil {
				return err
			}
			slog.Info("preset saved", "preset", name)
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset [name]",
		Short: "restore a preset to the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			name := presetArg(args)
			if err := store.Reset(name); err != nil {
				return err
			}
			slog.Info("preset reset", "preset", name)
			return nil
		},
	}

	cmd.AddCommand(show, save, reset)
	return cmd
}

func presetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return settings.DefaultPreset
}
