package stage

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/flarebyte/surface-fixtures/internal/logging"
)

// Deps carries what stages need from the process.
type Deps struct {
	Stdout io.Writer
	Logger *log.Logger
}

func (d Deps) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d Deps) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logging.Discard()
}

// Runner executes a stage.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	deps.logger().Debug("stage start", "stage", name, "records", len(in.Records), "errors", len(in.Errors))
	return r(ctx, in, deps)
}

// RunAll executes stages in order, stopping at the first error.
func RunAll(ctx context.Context, in Envelope, deps Deps, names ...string) (Envelope, error) {
	out := in
	var err error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Envelope{}, err
		}
		out, err = Run(ctx, name, out, deps)
		if err != nil {
			return Envelope{}, err
		}
	}
	return out, nil
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
