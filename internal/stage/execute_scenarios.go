package stage

import (
	"context"
	"fmt"
	"math"

	"github.com/flarebyte/surface-fixtures/internal/config"
	"github.com/flarebyte/surface-fixtures/internal/greeting"
	"github.com/flarebyte/surface-fixtures/internal/mathseq"
	"github.com/flarebyte/surface-fixtures/internal/recursion"
)

const executeScenariosStage = "execute-scenarios"

// executeScenario returns the records produced by one scenario. On error the
// records emitted so far are returned alongside it.
func executeScenario(s ScenarioMeta, maxSteps int) ([]Record, error) {
	base := Record{Locator: s.Locator, Scenario: s.Name, Action: s.Action}
	var recs []Record
	add := func(r Record) {
		r.Index = len(recs)
		recs = append(recs, r)
	}

	switch s.Action {
	case config.ActionRecurse:
		start, err := recursion.ParseStep(s.Start)
		if err != nil {
			return nil, err
		}
		dec, err := recursion.ParseDecrement(s.Decrement)
		if err != nil {
			return nil, err
		}
		opts := recursion.Options{Start: start, Decrement: dec, MaxSteps: maxSteps}
		_, err = recursion.Run(s.Seed, opts, recursion.EmitterFunc(func(ev recursion.Event) error {
			r := base
			r.Step = ev.Step.String()
			r.Value = int64(ev.Value)
			add(r)
			return nil
		}))
		return recs, err
	case config.ActionGreet:
		r := base
		r.Value = int64(s.Code)
		r.Text = greeting.Message(s.Code)
		add(r)
		return recs, nil
	case config.ActionFact:
		n, err := mathseq.Factorial(s.Number)
		if err != nil {
			return nil, err
		}
		r := base
		r.Value = int64(n)
		r.Text = fmt.Sprintf("%d! is %d", s.Number, n)
		add(r)
		return recs, nil
	case config.ActionFibo:
		seq, err := mathseq.Fibonacci(s.Number)
		if err != nil {
			return nil, err
		}
		for _, v := range seq {
			if v > math.MaxInt64 {
				return recs, fmt.Errorf("fibonacci value exceeds int64 after %d numbers", len(recs))
			}
			r := base
			r.Value = int64(v)
			add(r)
		}
		return recs, nil
	default:
		return nil, fmt.Errorf("unknown action: %q", s.Action)
	}
}

// executeScenariosRunner replaces the envelope records with the output events
// of every loaded scenario.
func executeScenariosRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	out.Records = []Record{}
	if in.Meta == nil {
		return out, nil
	}
	mode, embed := errorMode(in.Meta)
	var envErrs []Error
	for _, s := range in.Meta.Scenarios {
		if err := ctx.Err(); err != nil {
			return Envelope{}, err
		}
		recs, err := executeScenario(s, in.Meta.MaxSteps)
		out.Records = append(out.Records, recs...)
		if err == nil {
			deps.logger().Debug("scenario done", "scenario", s.Name, "records", len(recs))
			continue
		}
		key := scenarioKey(s.Locator, s.Name)
		if mode != modeKeepGoing {
			return Envelope{}, fmt.Errorf("%s: %s: %v", executeScenariosStage, key, err)
		}
		deps.logger().Warn("scenario failed", "scenario", key, "err", err)
		envErrs = append(envErrs, Error{Stage: executeScenariosStage, Locator: key, Message: err.Error()})
		if embed {
			out.Records = append(out.Records, Record{
				Locator:  s.Locator,
				Scenario: s.Name,
				Action:   s.Action,
				Index:    len(recs),
				Error:    &RecError{Stage: executeScenariosStage, Message: sanitizeErrorMessage(err.Error())},
			})
		}
	}
	appendSanitizedErrors(&out, envErrs)
	return out, nil
}

func init() { Register(executeScenariosStage, executeScenariosRunner) }
