package root

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/cmd/fixtures/diagnose"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/greet"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/hello"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/multigprof"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/recurse"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/run"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/version"
	"github.com/flarebyte/surface-fixtures/internal/appenv"
	"github.com/flarebyte/surface-fixtures/internal/logging"
	"github.com/flarebyte/surface-fixtures/internal/settings"
)

// NewRootCmd creates the root command for fixtures.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Minimal fixture programs: mutual recursion, greetings, factorial and fibonacci",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), logging.Options{Level: s.LogLevel, JSON: s.LogJSON}).
				With("cmd", cmd.Name())
			if s.File != "" {
				logger.Debug("settings loaded", "file", s.File)
			}
			cmd.SetContext(appenv.With(cmd.Context(), appenv.Env{Settings: s, Logger: logger}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	settings.BindFlags(cmd.PersistentFlags())

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(run.Cmd)
	cmd.AddCommand(diagnose.Cmd)
	cmd.AddCommand(hello.NewCmd())
	cmd.AddCommand(recurse.NewCmd())
	cmd.AddCommand(greet.NewCmd())
	cmd.AddCommand(multigprof.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
