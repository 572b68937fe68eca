package recursion

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func values(evs []Event) []int {
	out := make([]int, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Value)
	}
	return out
}

func TestTrace_FromA(t *testing.T) {
	cases := []struct {
		name string
		seed int
		want []int
	}{
		{"odd seed ends at zero", 5, []int{5, 4, 3, 2, 1, 0}},
		{"one", 1, []int{1, 0}},
		{"even seed ends below zero", 4, []int{4, 3, 2, 1, 0, -1}},
		{"zero", 0, []int{0, -1}},
		{"negative", -3, []int{-3, -4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evs, err := Trace(tc.seed, Options{})
			if err != nil {
				t.Fatalf("trace: %v", err)
			}
			if diff := cmp.Diff(tc.want, values(evs)); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrace_AlternatesSteps(t *testing.T) {
	evs, err := Trace(3, Options{})
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	want := []Event{{StepA, 3}, {StepB, 2}, {StepA, 1}, {StepB, 0}}
	if diff := cmp.Diff(want, evs); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTrace_StrictlyDecreasing(t *testing.T) {
	for seed := 0; seed < 50; seed++ {
		evs, err := Trace(seed, Options{})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i := 1; i < len(evs); i++ {
			if evs[i].Value != evs[i-1].Value-1 {
				t.Fatalf("seed %d: event %d is %d after %d", seed, i, evs[i].Value, evs[i-1].Value)
			}
		}
		last := evs[len(evs)-1]
		if last.Step != StepB || last.Value > 0 {
			t.Fatalf("seed %d: unexpected last event %+v", seed, last)
		}
	}
}

func TestTrace_FromB(t *testing.T) {
	evs, err := Trace(10, Options{Start: StepB})
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	want := []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if diff := cmp.Diff(want, values(evs)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	evs, err = Trace(-2, Options{Start: StepB})
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if diff := cmp.Diff([]Event{{StepB, -2}}, evs); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_PostDecrementHitsStepLimit(t *testing.T) {
	n, err := Run(3, Options{Decrement: DecrementPost, MaxSteps: 8}, EmitterFunc(func(Event) error { return nil }))
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 events, got %d", n)
	}
}

func TestRun_PostDecrementNonPositiveTerminates(t *testing.T) {
	evs, err := Trace(0, Options{Decrement: DecrementPost})
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if diff := cmp.Diff([]int{0, 0}, values(evs)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_EmitErrorStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	n, err := Run(5, Options{}, EmitterFunc(func(Event) error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 emitted events, got %d", n)
	}
}

func TestLineEmitter(t *testing.T) {
	var buf bytes.Buffer
	if err := RecursiveA(2, LineEmitter(&buf)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "2\n1\n0\n-1\n" {
		t.Fatalf("unexpected output: %q", got)
	}
	buf.Reset()
	if err := RecursiveB(1, LineEmitter(&buf)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "1\n0\n-1\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestParse(t *testing.T) {
	if s, err := ParseStep("b"); err != nil || s != StepB {
		t.Fatalf("ParseStep(b) = %v, %v", s, err)
	}
	if _, err := ParseStep("c"); err == nil {
		t.Fatalf("expected error for step c")
	}
	if d, err := ParseDecrement("post"); err != nil || d != DecrementPost {
		t.Fatalf("ParseDecrement(post) = %v, %v", d, err)
	}
	if d, err := ParseDecrement(""); err != nil || d != DecrementPre {
		t.Fatalf("ParseDecrement(\"\") = %v, %v", d, err)
	}
	if _, err := ParseDecrement("--"); err == nil {
		t.Fatalf("expected error for decrement --")
	}
}
