package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/lews/internal/lockin"
)

func newPresetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in example dimension sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets := lockin.Presets()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), presets)
			}
			for _, p := range presets {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", p.Name, p.Strategy)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print full values as JSON")
	return cmd
}
