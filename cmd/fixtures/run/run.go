package run

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/appenv"
)

var (
	cfgPath     string
	rootDir     string
	noGitignore bool
	filterLua   string
	mapLua      string
	reduceLua   string
	format      string
	pretty      bool
	outPath     string
	keepGoing   bool
	embedErrors bool
	progress    bool
	progressMs  int
)

// Cmd represents the `fixtures run` command.
var Cmd = &cobra.Command{
	Use:           "run",
	Short:         "Run the scenarios of a config file or a directory of scenario files",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" && rootDir == "" {
			return errors.New("missing required flag: --config or --dir")
		}
		if cfgPath != "" && rootDir != "" {
			return errors.New("flags --config and --dir are mutually exclusive")
		}
		env := appenv.From(cmd.Context())
		logger := env.Logger.With("run", uuid.NewString())
		in, err := prepareEnvelope(cmd, env.Settings.MaxSteps)
		if err != nil {
			return err
		}
		logger.Info("run start", "config", cfgPath, "dir", rootDir)
		reporter := newProgressReporter(progress, progressMs, cmd.ErrOrStderr())
		ctx := withProgressReporter(cmd.Context(), reporter)
		out, err := executePipeline(ctx, in, cmd.OutOrStdout(), logger)
		if err != nil {
			return err
		}
		logger.Info("run done", "records", len(out.Records), "errors", len(out.Errors))
		return evaluateRunExit(out)
	},
}

func init() {
	Cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a scenario file (.cue)")
	Cmd.Flags().StringVar(&rootDir, "dir", "", "Discover *.fixture.cue files under this directory")
	Cmd.Flags().BoolVar(&noGitignore, "no-gitignore", false, "Do not honor .gitignore during discovery")
	Cmd.Flags().StringVar(&filterLua, "filter", "", "Inline Lua predicate over each record")
	Cmd.Flags().StringVar(&mapLua, "map", "", "Inline Lua mapping over each record")
	Cmd.Flags().StringVar(&reduceLua, "reduce", "", "Inline Lua fold over acc and item")
	Cmd.Flags().StringVar(&format, "format", "", "Output format (lines|json|yaml)")
	Cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	Cmd.Flags().StringVar(&outPath, "out", "", "Output path (- for stdout)")
	Cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Collect errors instead of stopping at the first one")
	Cmd.Flags().BoolVar(&embedErrors, "embed-errors", false, "Keep failed records with their error in the output")
	Cmd.Flags().BoolVar(&progress, "progress", false, "Report stage progress on stderr")
	Cmd.Flags().IntVar(&progressMs, "progress-interval-ms", defaultProgressIntervalMs, "Progress report interval")
}
