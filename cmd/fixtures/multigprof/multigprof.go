// Package multigprof implements the fact|fibo dispatcher shared by the
// standalone multigprof binary and `fixtures multigprof`.
package multigprof

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/appenv"
	"github.com/flarebyte/surface-fixtures/internal/config"
	"github.com/flarebyte/surface-fixtures/internal/mathseq"
)

const (
	choiceFact = "fact"
	choiceFibo = "fibo"
)

// NewCmd returns a fresh dispatcher command.
func NewCmd() *cobra.Command {
	number := config.DefaultNumber
	cmd := &cobra.Command{
		Use:                "multigprof [fact|fibo]",
		Short:              "Print 10! or the first 10 fibonacci numbers",
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			appenv.From(cmd.Context()).Logger.Debug("dispatch", "args", args, "number", number)
			return Dispatch(cmd.OutOrStdout(), cmd.CommandPath(), args, number)
		},
	}
	cmd.Flags().IntVarP(&number, "number", "n", config.DefaultNumber, "Input size for fact and fibo")
	return cmd
}

// Dispatch selects the computation from args. Anything other than exactly
// one recognized choice prints the usage line and succeeds.
func Dispatch(w io.Writer, prog string, args []string, n int) error {
	if len(args) != 1 {
		return usage(w, prog)
	}
	switch args[0] {
	case choiceFact:
		f, err := mathseq.Factorial(n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d! is %d\n", n, f)
		return err
	case choiceFibo:
		seq, err := mathseq.Fibonacci(n)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "First %d fibonacci numbers are:\n", n); err != nil {
			return err
		}
		for _, v := range seq {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return usage(w, prog)
	}
}

func usage(w io.Writer, prog string) error {
	_, err := fmt.Fprintf(w, "Usage: %s (%s|%s)\n", prog, choiceFact, choiceFibo)
	return err
}
