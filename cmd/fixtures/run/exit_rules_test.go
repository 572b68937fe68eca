package run

import (
	"testing"

	"github.com/flarebyte/surface-fixtures/internal/stage"
)

func keepGoingMeta() *stage.Meta {
	return &stage.Meta{Errors: &stage.ErrorsMeta{Mode: "keep-going"}}
}

func TestEvaluateRunExit_KeepGoing_SuccessRecord(t *testing.T) {
	env := stage.Envelope{
		Meta:    keepGoingMeta(),
		Records: []stage.Record{{Locator: "a.cue", Scenario: "ok"}},
		Errors:  []stage.Error{{Stage: "lua-map", Locator: "b.cue#x", Message: "boom"}},
	}
	if err := evaluateRunExit(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluateRunExit_KeepGoing_AllFailed(t *testing.T) {
	cases := map[string]stage.Envelope{
		"embedded": {
			Meta:    keepGoingMeta(),
			Records: []stage.Record{{Locator: "a.cue", Error: &stage.RecError{Stage: "x", Message: "m"}}},
			Errors:  []stage.Error{{Stage: "x", Locator: "a.cue", Message: "m"}},
		},
		"dropped": {
			Meta:    keepGoingMeta(),
			Records: []stage.Record{},
			Errors:  []stage.Error{{Stage: "execute-scenarios", Locator: "a.cue#big", Message: "overflow"}},
		},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			err := evaluateRunExit(env)
			if err == nil {
				t.Fatalf("expected error")
			}
			if err.Error() != "keep-going: no successful records" {
				t.Fatalf("unexpected error: %v", err)
			}
			ec, ok := err.(interface{ ExitCode() int })
			if !ok || ec.ExitCode() != exitCodeExecErr {
				t.Fatalf("unexpected exit code")
			}
		})
	}
}

func TestEvaluateRunExit_KeepGoing_NothingToDo(t *testing.T) {
	env := stage.Envelope{Meta: keepGoingMeta(), Records: []stage.Record{}}
	if err := evaluateRunExit(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluateRunExit_FailFastMode(t *testing.T) {
	env := stage.Envelope{
		Meta:   &stage.Meta{Errors: &stage.ErrorsMeta{Mode: "fail-fast"}},
		Errors: []stage.Error{{Stage: "x", Message: "m"}},
	}
	if err := evaluateRunExit(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
