package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/modhooks/internal/config"
	"github.com/dshills/modhooks/internal/runtime"
)

type rootOptions struct {
	configPath   string
	settingsPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "modhooks",
		Short:         "Extension hook engine tools",
		Long:          "modhooks lists the dispatch points, edits the global settings file and runs dispatches against loaded Lua extensions.",
		Version:       buildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultFile, "configuration file")
	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "global settings file (overrides settings_path)")
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetVersionTemplate("modhooks {{.Version}} (" + commit + ")\n")

	cmd.AddCommand(
		newVersionCmd(opts),
		newPointsCmd(),
		newSettingsCmd(opts),
		newDispatchCmd(opts),
	)
	return cmd
}

// load reads the configuration and applies command-line overrides.
func (o *rootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.settingsPath != "" {
		cfg.SettingsPath = o.settingsPath
	}
	return cfg, nil
}

// newRuntime builds an unstarted runtime logging to the command's stderr.
func (o *rootOptions) newRuntime(cmd *cobra.Command) (*runtime.Runtime, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return runtime.New(cfg, runtime.WithOutput(cmd.ErrOrStderr())), nil
}
