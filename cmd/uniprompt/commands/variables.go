package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/config"
	"github.com/uniprompt/uniprompt/pkg/types"
)

var variablesVars []string

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "Print the resolved variable set with sources",
	RunE:  runVariables,
}

func init() {
	variablesCmd.Flags().StringArrayVarP(&variablesVars, "var", "V", nil, "Variable override (NAME=value), highest precedence")
}

func runVariables(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	// The config is optional here: variables can be inspected before a
	// uniprompt.yaml exists.
	cfg, _, err := config.Load(dir)
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return err
		}
		cfg = &types.PromptConfig{}
	}

	set, err := resolveVariables(cmd.Context(), dir, cfg, variablesVars)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tVALUE")
	for _, name := range set.Names() {
		v, _ := set.Get(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, v.Source, v.Value)
	}
	return w.Flush()
}
