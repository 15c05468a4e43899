package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/modhooks/internal/points"
)

func newPointsCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "points",
		Short: "List the dispatch points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := points.Catalog()
			out := cmd.OutOrStdout()

			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(catalog); err != nil {
					return fmt.Errorf("encode points: %w", err)
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPOLICY\tPAYLOAD")
			for _, p := range catalog {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Policy, p.Payload)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the catalog as YAML")
	return cmd
}
