package cmd

import (
	"github.com/spf13/cobra"

	"sphereconfig/internal/batch"
	"sphereconfig/internal/cli"
	"sphereconfig/internal/config"
)

func newGenerateCmd(root *rootFlags) *cobra.Command {
	flags := &cli.GenerateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sphere-agent-config files for one or more devices",
		Long: `Generate sphere-agent-config files from an environment definition.

Every config of a batch is validated before the first file is written; if
any of them fails, nothing is written and the command exits with status 1.`,
		Example: `  # One config for LDPlayer clone #42 of a workstation
  sphere-config generate --env development --workstation-id ws-PC-FARM-01 \
    --start-index 42 --location msk-office-1

  # Batch: 30 configs for one workstation
  sphere-config generate --env development --workstation-id ws-PC-FARM-01 \
    --count 30 --start-index 0 --location msk-office-1 --output-dir ./output

  # A physical device
  sphere-config generate --env production --location fra-dc-2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.ToOptions(cmd.Flags())
			if err != nil {
				return err
			}

			driver := batch.NewDriver(config.NewStore(root.ConfigRoot))
			result, err := driver.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if opts.DryRun {
				return cli.PrintDryRun(cmd.OutOrStdout(), result, opts.Format)
			}
			cli.PrintSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cli.RegisterGenerateFlags(cmd.Flags(), flags)
	_ = cmd.MarkFlagRequired("env")

	return cmd
}
