package run

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/flarebyte/surface-fixtures/internal/stage"
)

// pipelineStages is the fixed stage order of `fixtures run`.
var pipelineStages = []string{
	"discover-scenarios",
	"load-scenarios",
	"execute-scenarios",
	"lua-filter",
	"lua-map",
	"lua-reduce",
	"write-output",
}

func executePipeline(ctx context.Context, in stage.Envelope, stdout io.Writer, logger *log.Logger) (stage.Envelope, error) {
	return runStages(ctx, in, pipelineStages, stage.Deps{Stdout: stdout, Logger: logger})
}

// runStages executes the provided list of stage names in order.
func runStages(ctx context.Context, in stage.Envelope, stages []string, deps stage.Deps) (stage.Envelope, error) {
	reporter := progressReporterFromContext(ctx)
	out := in
	var err error
	for _, name := range stages {
		out, err = reporter.runStage(ctx, name, out, deps)
		if err != nil {
			return stage.Envelope{}, err
		}
	}
	return out, nil
}
