package main

import (
	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

func newTrajectoryCmd(a *app) *cobra.Command {
	var species, tech string
	var list bool

	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Print a historical trajectory, or the index with --list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			if list {
				return printJSON(cmd.OutOrStdout(), store.Index())
			}
			t, err := store.Lookup(species, tech)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().StringVar(&species, "species", trajectory.DefaultSpecies, "species name")
	cmd.Flags().StringVar(&tech, "tech", trajectory.DefaultTechnology, "technology name")
	cmd.Flags().BoolVar(&list, "list", false, "list technologies per species")
	return cmd
}
