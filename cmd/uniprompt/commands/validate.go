package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/adapter"
	"github.com/uniprompt/uniprompt/internal/config"
	"github.com/uniprompt/uniprompt/internal/template"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the universal configuration for problems",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	cfg, cfgPath, err := config.Load(dir)
	if err != nil {
		return err
	}

	warnings, err := config.Validate(cfg, adapter.Known())
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cfgPath, err)
	}

	// Report variable references that nothing defines. Diagnostic only:
	// lenient generation leaves them as-is.
	set, err := resolveVariables(cmd.Context(), dir, cfg, nil)
	if err != nil {
		return err
	}
	values := set.Values()
	for _, ins := range cfg.Instructions {
		for _, name := range template.UndefinedVariables(ins.Content, values) {
			fmt.Printf("warning: instruction %q references undefined variable %s\n", ins.Name, name)
		}
	}

	fmt.Printf("%s is valid\n", cfgPath)
	return nil
}
