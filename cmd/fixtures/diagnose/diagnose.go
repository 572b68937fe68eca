package diagnose

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/appenv"
	"github.com/flarebyte/surface-fixtures/internal/config"
	"github.com/flarebyte/surface-fixtures/internal/stage"
)

var (
	flagStage   string
	flagPrepare []string
	flagIn      string
	flagDumpDir string
	flagConfig  string
	flagRoot    string
	flagNoGit   bool
)

// Cmd implements `fixtures diagnose`: run a single stage, optionally after
// preparation stages, and print the resulting envelope as one JSON line.
var Cmd = &cobra.Command{
	Use:           "diagnose",
	Short:         "Run a single pipeline stage and print its envelope",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagStage == "" {
			return errors.New("missing required flag: --stage")
		}
		in, err := prepareDiagnoseInput(flagIn, flagConfig, flagRoot, flagNoGit)
		if err != nil {
			return err
		}
		if in.Meta != nil && in.Meta.MaxSteps == 0 {
			in.Meta.MaxSteps = appenv.From(cmd.Context()).Settings.MaxSteps
		}
		stages := append(append([]string(nil), flagPrepare...), flagStage)
		out, err := runStageSequence(cmd, in, stages)
		if err != nil {
			return err
		}
		return printEnvelopeOneLine(cmd.OutOrStdout(), out)
	},
}

func init() {
	Cmd.Flags().StringVar(&flagStage, "stage", "", "Stage name (required)")
	Cmd.Flags().StringSliceVar(&flagPrepare, "prepare", nil, "Stages to run before --stage, in order")
	Cmd.Flags().StringVar(&flagIn, "in", "", "Path to input envelope JSON")
	Cmd.Flags().StringVar(&flagDumpDir, "dump-dir", "", "Directory to write per-stage dumps (<seq>_<stage>_{in,out}.json)")
	Cmd.Flags().StringVar(&flagConfig, "config", "", "Scenario file used when --in is omitted")
	Cmd.Flags().StringVar(&flagRoot, "root", "", "Discovery root used when --in is omitted")
	Cmd.Flags().BoolVar(&flagNoGit, "no-gitignore", false, "Disable .gitignore during discovery")
}

func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dump dir: %w", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func prepareDiagnoseInput(inPath, cfg, root string, noGit bool) (stage.Envelope, error) {
	if inPath != "" {
		b, err := os.ReadFile(inPath)
		if err != nil {
			return stage.Envelope{}, fmt.Errorf("failed to read input: %w", err)
		}
		var env stage.Envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return stage.Envelope{}, fmt.Errorf("invalid input JSON: %v", err)
		}
		return env, nil
	}
	if cfg != "" {
		if err := config.LoadAndValidate(cfg); err != nil {
			return stage.Envelope{}, err
		}
	}
	env := stage.Envelope{Records: []stage.Record{}, Meta: &stage.Meta{ConfigPath: cfg}}
	if root != "" {
		env.Meta.Discovery = &stage.DiscoveryMeta{Root: root, NoGitignore: noGit}
	}
	return env, nil
}
