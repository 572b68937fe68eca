package main

import (
	"os"

	"github.com/flarebyte/surface-fixtures/cli"
	"github.com/flarebyte/surface-fixtures/cmd/fixtures/root"
)

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		os.Exit(cli.Fail(os.Stderr, err))
	}
}
