// Package appenv carries resolved settings and the logger through a command
// context.
package appenv

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/flarebyte/surface-fixtures/internal/logging"
	"github.com/flarebyte/surface-fixtures/internal/recursion"
	"github.com/flarebyte/surface-fixtures/internal/settings"
)

// Env is what every command needs from the process.
type Env struct {
	Settings settings.Settings
	Logger   *log.Logger
}

// Default is used when no Env was attached, e.g. in standalone binaries.
func Default() Env {
	return Env{
		Settings: settings.Settings{LogLevel: logging.DefaultLevel, MaxSteps: recursion.DefaultMaxSteps},
		Logger:   logging.Discard(),
	}
}

type envKey struct{}

func With(ctx context.Context, env Env) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, envKey{}, env)
}

// From returns the attached Env or Default.
func From(ctx context.Context) Env {
	if ctx == nil {
		return Default()
	}
	env, ok := ctx.Value(envKey{}).(Env)
	if !ok {
		return Default()
	}
	if env.Logger == nil {
		env.Logger = logging.Discard()
	}
	return env
}
