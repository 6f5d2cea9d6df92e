package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/adapter"
)

var editorsCmd = &cobra.Command{
	Use:   "editors",
	Short: "List supported editors",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTARGET")
		for _, a := range adapter.All() {
			fmt.Fprintf(w, "%s\t%s\n", a.Name(), a.Description())
		}
		return w.Flush()
	},
}
