package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sphereconfig/internal/config"
)

func newEnvironmentsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "environments",
		Aliases: []string{"envs"},
		Short:   "List environments defined under the configuration root",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := config.NewStore(root.ConfigRoot).ListEnvironments()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No environments found in %s\n", root.ConfigRoot)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
