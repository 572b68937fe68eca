// Package recursion implements the recursive_a / recursive_b pair as an
// explicit loop over tagged steps. Each hand-off between the two halves
// decrements the counter once; the run stops when B sees a non-positive value.
package recursion

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxSteps bounds a run when Options.MaxSteps is zero.
const DefaultMaxSteps = 1 << 20

// ErrStepLimit is returned when a run emits more events than allowed.
var ErrStepLimit = errors.New("step limit reached")

// Step names the half of the pair currently holding the counter.
type Step int

const (
	StepA Step = iota
	StepB
)

func (s Step) String() string {
	switch s {
	case StepA:
		return "a"
	case StepB:
		return "b"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ParseStep accepts "a" or "b"; the empty string selects A.
func ParseStep(s string) (Step, error) {
	switch s {
	case "", "a", "A":
		return StepA, nil
	case "b", "B":
		return StepB, nil
	default:
		return StepA, fmt.Errorf("invalid start step: %q (expected a|b)", s)
	}
}

// Decrement selects what value a hand-off carries.
type Decrement int

const (
	// DecrementPre hands off i-1 (--i).
	DecrementPre Decrement = iota
	// DecrementPost hands off i unchanged (i--).
	DecrementPost
)

func (d Decrement) String() string {
	if d == DecrementPost {
		return "post"
	}
	return "pre"
}

// ParseDecrement accepts "pre" or "post"; the empty string selects pre.
func ParseDecrement(s string) (Decrement, error) {
	switch s {
	case "", "pre":
		return DecrementPre, nil
	case "post":
		return DecrementPost, nil
	default:
		return DecrementPre, fmt.Errorf("invalid decrement: %q (expected pre|post)", s)
	}
}

func (d Decrement) handOff(i int) int {
	if d == DecrementPost {
		return i
	}
	return i - 1
}

// Event is one observable output of the pair.
type Event struct {
	Step  Step
	Value int
}

// Emitter receives events in call order.
type Emitter interface {
	Emit(Event) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event) error

func (f EmitterFunc) Emit(ev Event) error { return f(ev) }

// LineEmitter writes each value on its own line.
func LineEmitter(w io.Writer) Emitter {
	return EmitterFunc(func(ev Event) error {
		_, err := fmt.Fprintf(w, "%d\n", ev.Value)
		return err
	})
}

// Options configures a run. The zero value starts at A with pre-decrement.
type Options struct {
	Start     Step
	Decrement Decrement
	MaxSteps  int
}

func (o Options) maxSteps() int {
	if o.MaxSteps > 0 {
		return o.MaxSteps
	}
	return DefaultMaxSteps
}

// RecursiveA emits seed, then hands off to B.
func RecursiveA(seed int, e Emitter) error {
	_, err := Run(seed, Options{Start: StepA}, e)
	return err
}

// RecursiveB emits seed, then hands off to A while seed > 0.
func RecursiveB(seed int, e Emitter) error {
	_, err := Run(seed, Options{Start: StepB}, e)
	return err
}

// Run drives the pair from opts.Start and returns the number of events
// emitted.
func Run(seed int, opts Options, e Emitter) (int, error) {
	limit := opts.maxSteps()
	step, i := opts.Start, seed
	n := 0
	for {
		if n >= limit {
			return n, fmt.Errorf("%w: %d events from seed %d", ErrStepLimit, n, seed)
		}
		if err := e.Emit(Event{Step: step, Value: i}); err != nil {
			return n, fmt.Errorf("emit %s(%d): %w", step, i, err)
		}
		n++
		switch step {
		case StepA:
			step, i = StepB, opts.Decrement.handOff(i)
		case StepB:
			if i <= 0 {
				return n, nil
			}
			step, i = StepA, opts.Decrement.handOff(i)
		default:
			return n, fmt.Errorf("invalid step: %s", step)
		}
	}
}

// Trace collects the events of a run.
func Trace(seed int, opts Options) ([]Event, error) {
	var out []Event
	_, err := Run(seed, opts, EmitterFunc(func(ev Event) error {
		out = append(out, ev)
		return nil
	}))
	return out, err
}
