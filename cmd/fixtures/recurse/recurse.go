package recurse

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/appenv"
	"github.com/flarebyte/surface-fixtures/internal/recursion"
)

const defaultSeed = 5

// NewCmd implements `fixtures recurse`.
func NewCmd() *cobra.Command {
	var (
		seed      int
		start     string
		decrement string
	)
	cmd := &cobra.Command{
		Use:           "recurse",
		Short:         "Print the mutual recursion countdown",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := appenv.From(cmd.Context())
			st, err := recursion.ParseStep(start)
			if err != nil {
				return err
			}
			dec, err := recursion.ParseDecrement(decrement)
			if err != nil {
				return err
			}
			opts := recursion.Options{Start: st, Decrement: dec, MaxSteps: env.Settings.MaxSteps}
			n, err := recursion.Run(seed, opts, recursion.LineEmitter(cmd.OutOrStdout()))
			env.Logger.Debug("countdown finished", "seed", seed, "start", st, "decrement", dec, "events", n)
			return err
		},
	}
	cmd.Flags().IntVar(&seed, "seed", defaultSeed, "Starting value")
	cmd.Flags().StringVar(&start, "start", recursion.StepA.String(), "First function (a|b)")
	cmd.Flags().StringVar(&decrement, "decrement", recursion.DecrementPre.String(), "Hand-off rule (pre|post)")
	return cmd
}
