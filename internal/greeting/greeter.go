package greeting

import (
	"fmt"
	"io"
)

// Greeter says hi on a writer.
type Greeter interface {
	SayHi() error
	SayHiTo(value int) error
}

type writerGreeter struct {
	w io.Writer
}

// NewGreeter returns a Greeter printing to w.
func NewGreeter(w io.Writer) Greeter {
	return &writerGreeter{w: w}
}

func (g *writerGreeter) SayHi() error {
	_, err := fmt.Fprintln(g.w, "Hello from greeter!!")
	return err
}

func (g *writerGreeter) SayHiTo(value int) error {
	_, err := fmt.Fprintf(g.w, "Hello %d from greeter!!\n", value)
	return err
}

// Named builds salutations for a person.
type Named struct {
	name string
}

func NewNamed(name string) *Named {
	return &Named{name: name}
}

func (n *Named) Name() string { return n.name }

func (n *Named) SetName(name string) { n.name = name }

func (n *Named) SayHello() string { return "Hello, " + n.name }

func (n *Named) SayHelloInSpanish() string { return "Hola, " + n.name }
