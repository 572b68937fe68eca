package main

import (
	"os"

	"github.com/flarebyte/surface-fixtures/cli"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/multigprof"
)

func main() {
	cmd := multigprof.NewCmd()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.Fail(os.Stderr, err))
	}
}
