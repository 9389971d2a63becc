package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"sphereconfig/internal/cli"
	"sphereconfig/internal/config"
	"sphereconfig/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates any failure: unknown environment, invalid
	// arguments, validation or write errors.
	ExitCodeError = 1
)

// rootFlags holds the persistent flags shared by all subcommands.
type rootFlags struct {
	ConfigRoot string
	LogLevel   string
	Debug      bool
}

// rootCmd represents the base command for the sphere-config application.
var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Tests build their own tree so flag
// state never leaks between runs.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "sphere-config",
		Short: "Generate sphere-agent-config files for mass agent deployment",
		Long: `sphere-config generates and validates per-device sphere agent
configuration files. An environment's base configuration is merged with
workstation, instance and location parameters, checked against the schema
and written to an output directory, one file per device.`,
		// Errors are reported by Execute so each failure is printed exactly once.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(flags.LogLevel)
			if err != nil {
				return err
			}
			if flags.Debug {
				level = logging.LevelDebug
			}
			logging.InitForCLI(level, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.ConfigRoot, "config-root", config.DefaultRoot(), "Directory holding schema.json and environments/ (env: "+config.RootEnvVar+")")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newEnvironmentsCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It runs the root command and exits with ExitCodeError on any failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sphere-config version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		cli.ReportError(os.Stderr, err)
		os.Exit(ExitCodeError)
	}
}
