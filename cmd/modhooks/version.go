package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/modhooks/internal/log"
	"github.com/dshills/modhooks/internal/version"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine and host version identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			sink := log.NewSink(log.New(cmd.ErrOrStderr(), log.Format(cfg.LogFormat), nil))
			info := version.Parse(cfg.HostVersion, sink)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "modhooks %s (%s)\n", buildVersion, commit)
			fmt.Fprintf(out, "host %s\n", version.Identifier(info))
			return nil
		},
	}
}
