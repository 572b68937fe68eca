package stage

import "testing"

func TestSortEnvelopeErrors_ByStageLocatorMessage(t *testing.T) {
	env := Envelope{
		Errors: []Error{
			{Stage: "write-output", Locator: "b.fixture.cue#x", Message: "m2"},
			{Stage: "lua-map", Locator: "z.fixture.cue#y", Message: "m2"},
			{Stage: "lua-map", Locator: "a.fixture.cue#y", Message: "m3"},
			{Stage: "lua-map", Locator: "a.fixture.cue#y", Message: "m1"},
		},
	}
	SortEnvelopeErrors(&env)
	got := env.Errors
	want := []Error{
		{Stage: "lua-map", Locator: "a.fixture.cue#y", Message: "m1"},
		{Stage: "lua-map", Locator: "a.fixture.cue#y", Message: "m3"},
		{Stage: "lua-map", Locator: "z.fixture.cue#y", Message: "m2"},
		{Stage: "write-output", Locator: "b.fixture.cue#x", Message: "m2"},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected count: %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d mismatch: got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestAppendSanitizedErrors(t *testing.T) {
	env := Envelope{Errors: []Error{{Stage: "lua-map", Locator: "b", Message: "x"}}}
	appendSanitizedErrors(&env, []Error{{Stage: "lua-filter", Locator: "a", Message: "  multi\n line   message "}, {Stage: "lua-filter", Message: "   "}})
	want := []Error{
		{Stage: "lua-filter", Message: "error"},
		{Stage: "lua-filter", Locator: "a", Message: "multi line message"},
		{Stage: "lua-map", Locator: "b", Message: "x"},
	}
	if len(env.Errors) != len(want) {
		t.Fatalf("unexpected count: %d", len(env.Errors))
	}
	for i := range want {
		if env.Errors[i] != want[i] {
			t.Fatalf("index %d mismatch: got=%+v want=%+v", i, env.Errors[i], want[i])
		}
	}
}
