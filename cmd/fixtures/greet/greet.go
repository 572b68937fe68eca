package greet

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/greeting"
)

// NewCmd implements `fixtures greet [code]`.
func NewCmd() *cobra.Command {
	var (
		name    string
		spanish bool
	)
	cmd := &cobra.Command{
		Use:           "greet [code]",
		Short:         "Print the greeting for a code",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if cmd.Flags().Changed("name") {
				n := greeting.NewNamed(name)
				msg := n.SayHello()
				if spanish {
					msg = n.SayHelloInSpanish()
				}
				_, err := fmt.Fprintln(w, msg)
				return err
			}
			code := int(greeting.Casual)
			if len(args) == 1 {
				c, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid greeting code: %q", args[0])
				}
				code = c
			}
			return greeting.Greet(w, code)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Greet a name instead of a code")
	cmd.Flags().BoolVar(&spanish, "spanish", false, "Use the Spanish salutation with --name")
	return cmd
}
