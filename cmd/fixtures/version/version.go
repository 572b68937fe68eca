package version

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/surface-fixtures/internal/buildinfo"
)

var (
	flagShort bool
	flagJSON  bool
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShort || !flagJSON {
			// Exactly one line.
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fixtures %s\n", buildinfo.Summary())
			return err
		}

		// Diagnostic object on stdout, human friendly line on stderr.
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "fixtures version: %s\n", buildinfo.Summary())
		return encodeJSON(cmd.OutOrStdout(), buildinfo.Details(time.Now()))
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	VersionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
