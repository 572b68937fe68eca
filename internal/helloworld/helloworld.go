// Package helloworld runs the hello world fixture: two greetings each
// followed by a countdown, a line read, a runtime-selected sum and the
// greeter object.
package helloworld

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/flarebyte/surface-fixtures/internal/greeting"
	"github.com/flarebyte/surface-fixtures/internal/logging"
	"github.com/flarebyte/surface-fixtures/internal/mathseq"
	"github.com/flarebyte/surface-fixtures/internal/prompt"
	"github.com/flarebyte/surface-fixtures/internal/recursion"
)

const (
	DefaultSeedA = 5
	DefaultSeedB = 10
)

// Options overrides the fixture constants. A nil Input skips the line read.
type Options struct {
	SeedA     int
	SeedB     int
	Decrement recursion.Decrement
	MaxSteps  int
	Input     io.Reader
	MaxLine   int
	Logger    *log.Logger
}

// DefaultOptions returns the fixture constants.
func DefaultOptions() Options {
	return Options{SeedA: DefaultSeedA, SeedB: DefaultSeedB}
}

type program struct {
	w    io.Writer
	opts Options
	log  *log.Logger
}

// Run writes the whole program output to w.
func Run(w io.Writer, opts Options) error {
	p := &program{w: w, opts: opts, log: opts.Logger}
	if p.log == nil {
		p.log = logging.Discard()
	}
	if err := p.greetA(opts.SeedA); err != nil {
		return err
	}
	if err := p.greetB(opts.SeedB); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "lol"); err != nil {
		return err
	}

	op := mathseq.BinaryOp(mathseq.Add)
	sum := mathseq.Apply(op, 2, 3)

	g := greeting.NewGreeter(w)
	if err := g.SayHi(); err != nil {
		return err
	}
	if err := g.SayHiTo(100); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "---> %d\n", sum)
	return err
}

func (p *program) countdown(start recursion.Step, seed int) error {
	n, err := recursion.Run(seed, recursion.Options{
		Start:     start,
		Decrement: p.opts.Decrement,
		MaxSteps:  p.opts.MaxSteps,
	}, recursion.LineEmitter(p.w))
	p.log.Debug("countdown finished", "start", start, "seed", seed, "events", n)
	return err
}

func (p *program) greetA(seed int) error {
	if err := greeting.Greet(p.w, int(greeting.Casual)); err != nil {
		return err
	}
	return p.countdown(recursion.StepA, seed)
}

func (p *program) greetB(seed int) error {
	if p.opts.Input != nil {
		line, err := prompt.ReadLine(p.opts.Input, p.opts.MaxLine)
		switch {
		case err == nil:
			p.log.Debug("read input line", "bytes", len(line))
		case errors.Is(err, io.EOF):
			p.log.Debug("no input line")
		case errors.Is(err, prompt.ErrLineTooLong):
			p.log.Warn("input line rejected", "err", err)
		default:
			return fmt.Errorf("read input: %w", err)
		}
	}
	if err := greeting.Greet(p.w, int(greeting.Casual)); err != nil {
		return err
	}
	return p.countdown(recursion.StepB, seed)
}
