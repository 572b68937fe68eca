package diagnose

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/appenv"
	"github.com/flarebyte/surface-fixtures/internal/stage"
)

func dumpStageBoundary(seq int, stageName string, suffix string, env stage.Envelope) error {
	if flagDumpDir == "" {
		return nil
	}
	base := fmt.Sprintf("%03d_%s_%s.json", seq, stageName, suffix)
	return writeJSONFile(filepath.Join(flagDumpDir, base), env)
}

// runStageSequence runs stages in order. Stage output goes to the command's
// stderr so stdout only carries the envelope.
func runStageSequence(cmd *cobra.Command, in stage.Envelope, stages []string) (stage.Envelope, error) {
	deps := stage.Deps{Stdout: cmd.ErrOrStderr(), Logger: appenv.From(cmd.Context()).Logger}
	out := in
	for i, stageName := range stages {
		seq := i + 1
		if err := dumpStageBoundary(seq, stageName, "in", out); err != nil {
			return stage.Envelope{}, err
		}
		next, err := stage.Run(cmd.Context(), stageName, out, deps)
		if err != nil {
			return stage.Envelope{}, err
		}
		if err := dumpStageBoundary(seq, stageName, "out", next); err != nil {
			return stage.Envelope{}, err
		}
		out = next
	}
	return out, nil
}

func printEnvelopeOneLine(w io.Writer, env stage.Envelope) error {
	if env.Meta == nil {
		env.Meta = &stage.Meta{}
	} else {
		m := *env.Meta
		env.Meta = &m
	}
	env.Meta.ContractVersion = stage.ContractVersion
	stage.SortEnvelopeErrors(&env)
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
