package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sphereconfig/internal/batch"
	"sphereconfig/internal/cli"
	"sphereconfig/internal/config"
	"sphereconfig/internal/deviceconfig"
)

// newValidateCmd checks already generated config files against the schema.
func newValidateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate existing sphere-agent-config files",
		Long: `Validate existing sphere-agent-config files against the schema's
required fields and the enrollment key format. Exits with status 1 if any
file is invalid or unreadable.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := config.NewStore(root.ConfigRoot).LoadSchema()
			if err != nil {
				return fmt.Errorf("failed to load schema: %w", err)
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := 0
			for _, path := range args {
				doc, err := batch.ReadArtifact(path)
				if err != nil {
					failed++
					fmt.Fprintln(errOut, cli.FormatError(err))
					continue
				}

				errs := deviceconfig.Check(doc, schema)
				if errs.HasErrors() {
					failed++
					fmt.Fprintf(errOut, "%s:\n", path)
					for _, msg := range errs.Messages() {
						fmt.Fprintf(errOut, "  - %s\n", msg)
					}
					continue
				}
				fmt.Fprintln(out, cli.FormatSuccess(path))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d config(s) failed validation", failed, len(args))
			}
			return nil
		},
	}
}
