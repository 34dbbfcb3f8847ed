package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appforge-labs/appforge/internal/options"
)

func init() {
	rootCmd.AddCommand(optionsCmd)
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List configuration fields and compatibility rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printOptions(os.Stdout)
		return nil
	},
}

// printOptions writes the accepted values of every field followed by the
// state management/middleware rules in evaluation order.
func printOptions(w io.Writer) {
	fmt.Fprintln(w, "Fields:")
	for _, f := range options.Fields() {
		fmt.Fprintf(w, "  %-18s %s\n", f.Name, strings.Join(f.Values, ", "))
	}

	fmt.Fprintln(w, "\nState management / middleware (first match wins):")
	for _, r := range options.Table() {
		verdict := "valid"
		if r.Reason != "" {
			verdict = string(r.Reason)
		}
		fmt.Fprintf(w, "  %-12s %-12s %s\n", r.State, r.Middleware, verdict)
	}
	fmt.Fprintln(w, "\nCustom hooks require state management and middleware to be none.")
}
