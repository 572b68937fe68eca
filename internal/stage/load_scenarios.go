package stage

import (
	"context"
	"fmt"

	"github.com/flarebyte/surface-fixtures/internal/config"
)

const loadScenariosStage = "load-scenarios"

func scenarioMetaFrom(locator string, s config.Scenario) ScenarioMeta {
	return ScenarioMeta{
		Locator:   locator,
		Name:      s.Name,
		Action:    s.Action,
		Seed:      s.Seed,
		Start:     s.Start,
		Decrement: s.Decrement,
		Code:      s.Code,
		Number:    s.Number,
	}
}

// loadScenariosRunner parses every file in meta.ConfigFiles and appends its
// scenarios to meta.Scenarios, in file order.
func loadScenariosRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	if in.Meta == nil || len(in.Meta.ConfigFiles) == 0 {
		return out, nil
	}
	mode, _ := errorMode(in.Meta)
	var envErrs []Error
	for _, path := range in.Meta.ConfigFiles {
		f, err := config.Parse(path)
		if err != nil {
			if mode == modeKeepGoing {
				envErrs = append(envErrs, Error{Stage: loadScenariosStage, Locator: path, Message: err.Error()})
				continue
			}
			return Envelope{}, fmt.Errorf("%s: %s: %w", loadScenariosStage, path, err)
		}
		for _, s := range f.Scenarios {
			out.Meta.Scenarios = append(out.Meta.Scenarios, scenarioMetaFrom(path, s))
		}
		deps.logger().Debug("loaded scenario file", "path", path, "scenarios", len(f.Scenarios))
	}
	appendSanitizedErrors(&out, envErrs)
	return out, nil
}

func init() { Register(loadScenariosStage, loadScenariosRunner) }
