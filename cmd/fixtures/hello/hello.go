package hello

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/appenv"
	"github.com/flarebyte/surface-fixtures/internal/helloworld"
	"github.com/flarebyte/surface-fixtures/internal/recursion"
)

// NewCmd implements `fixtures hello`.
func NewCmd() *cobra.Command {
	var (
		noInput   bool
		seedA     int
		seedB     int
		decrement string
	)
	cmd := &cobra.Command{
		Use:           "hello",
		Short:         "Run the hello world fixture program",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := appenv.From(cmd.Context())
			dec, err := recursion.ParseDecrement(decrement)
			if err != nil {
				return err
			}
			opts := helloworld.DefaultOptions()
			opts.SeedA = seedA
			opts.SeedB = seedB
			opts.Decrement = dec
			opts.MaxSteps = env.Settings.MaxSteps
			opts.Logger = env.Logger
			if !noInput {
				opts.Input = cmd.InOrStdin()
			}
			return helloworld.Run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Skip reading a line from stdin")
	cmd.Flags().IntVar(&seedA, "seed-a", helloworld.DefaultSeedA, "Countdown seed of the first greeting")
	cmd.Flags().IntVar(&seedB, "seed-b", helloworld.DefaultSeedB, "Countdown seed of the second greeting")
	cmd.Flags().StringVar(&decrement, "decrement", recursion.DecrementPre.String(), "Hand-off rule (pre|post)")
	return cmd
}
