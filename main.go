// Command surface-fixtures runs the hello world fixture program: two greeting
// countdowns, a line read from stdin, and the greeter object.
package main

import (
	"io"
	"os"

	"github.com/flarebyte/surface-fixtures/cli"
	"github.com/flarebyte/surface-fixtures/internal/helloworld"
	"github.com/flarebyte/surface-fixtures/internal/logging"
	"github.com/flarebyte/surface-fixtures/internal/settings"
)

func main() {
	opts, err := loadOptions(os.Stdin, os.Stderr)
	if err != nil {
		os.Exit(cli.Fail(os.Stderr, err))
	}
	if err := helloworld.Run(os.Stdout, opts); err != nil {
		os.Exit(cli.Fail(os.Stderr, err))
	}
}

// loadOptions resolves FIXTURES_* variables and ./.fixtures.yaml the same way
// the fixtures command does, without flags.
func loadOptions(in io.Reader, errw io.Writer) (helloworld.Options, error) {
	s, err := settings.Load(nil)
	if err != nil {
		return helloworld.Options{}, err
	}
	opts := helloworld.DefaultOptions()
	opts.Input = in
	opts.MaxSteps = s.MaxSteps
	opts.Logger = logging.New(errw, logging.Options{Level: s.LogLevel, JSON: s.LogJSON})
	return opts, nil
}
