package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/modhooks/internal/log"
	"github.com/dshills/modhooks/internal/settings"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit the global settings file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := opts.store(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), store.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the settings in canonical form",
			Long:  "Print the settings in canonical form. A corrupt file is quarantined and the defaults are shown.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := opts.store(cmd)
				if err != nil {
					return err
				}
				return printSettings(cmd, store.Load())
			},
		},
		&cobra.Command{
			Use:   "get <path>",
			Short: "Print one value, for example extensionEnabled.Benchwarp",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.store(cmd)
				if err != nil {
					return err
				}
				raw, ok := store.Get(args[0])
				if !ok {
					return fmt.Errorf("%s is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), raw)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <path> <json>",
			Short: "Set one value and save",
			Example: `  modhooks settings set loggingLevel '"debug"'
  modhooks settings set extensionEnabled.Benchwarp false`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.store(cmd)
				if err != nil {
					return err
				}
				g, err := store.Set(args[0], args[1])
				if err != nil {
					return err
				}
				return printSettings(cmd, g)
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Print the settings every time the file changes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := opts.store(cmd)
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return watchSettings(ctx, cmd, store)
			},
		},
	)
	return cmd
}

func (o *rootOptions) store(cmd *cobra.Command) (*settings.Store, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	sink := log.NewSink(log.New(cmd.ErrOrStderr(), log.Format(cfg.LogFormat), nil))
	return settings.NewStore(cfg.SettingsPath, sink), nil
}

func printSettings(cmd *cobra.Command, g settings.GlobalSettings) error {
	data, err := settings.Marshal(g)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func watchSettings(ctx context.Context, cmd *cobra.Command, store *settings.Store) error {
	if err := printSettings(cmd, store.Load()); err != nil {
		return err
	}
	return store.Watch(ctx, func(g settings.GlobalSettings) {
		if err := printSettings(cmd, g); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	})
}
