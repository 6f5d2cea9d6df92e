package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/adapter"
	"github.com/uniprompt/uniprompt/internal/config"
	"github.com/uniprompt/uniprompt/internal/generation"
	"github.com/uniprompt/uniprompt/internal/template"
	"github.com/uniprompt/uniprompt/internal/variable"
	"github.com/uniprompt/uniprompt/pkg/types"
)

var (
	generateEditors []string
	generateVars    []string
	generateDryRun  bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"refresh"},
	Short:   "Render editor files from the universal configuration",
	RunE:    runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVarP(&generateEditors, "editor", "e", nil, "Target editors (default: config targets, else all)")
	generateCmd.Flags().StringArrayVarP(&generateVars, "var", "V", nil, "Variable override (NAME=value), highest precedence")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Show what would be written without writing")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	cfg, cfgPath, err := config.Load(dir)
	if err != nil {
		return err
	}
	log.Debug().Str("config", cfgPath).Msg("loaded configuration")

	warnings, err := config.Validate(cfg, adapter.Known())
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err != nil {
		return err
	}

	set, err := resolveVariables(cmd.Context(), dir, cfg, generateVars)
	if err != nil {
		return err
	}

	editors, err := selectTargets(cfg, generateEditors)
	if err != nil {
		return err
	}

	sub := template.NewSubstitutor(template.EnvSnapshot(dir))
	values := set.Values()
	rec := generation.NewRecord()
	rec.Editors = editors

	written := 0
	for _, name := range editors {
		a, _ := adapter.Get(name)
		files, err := a.Generate(cfg)
		if err != nil {
			return fmt.Errorf("generating %s: %w", name, err)
		}

		for _, f := range files {
			result, err := sub.Substitute(f.Content, values, cfg.Settings.StrictVariables)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Path, err)
			}

			if generateDryRun {
				fmt.Printf("would write %s (%s)\n", f.Path, name)
				continue
			}

			target := filepath.Join(dir, f.Path)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(target, []byte(result.Text), 0644); err != nil {
				return err
			}

			rec.Files[f.Path] = generation.FileRecord{Editor: name, Template: f.Content}
			written++
			log.Info().Str("path", f.Path).Str("editor", name).Msg("wrote file")
		}
	}

	if generateDryRun {
		return nil
	}

	if err := rec.Save(dir); err != nil {
		return fmt.Errorf("saving generation metadata: %w", err)
	}

	fmt.Printf("Generated %d file(s) for %d editor(s) (generation %s)\n", written, len(editors), rec.ID)
	return nil
}

// resolveVariables runs one resolution with the standard layering and
// logs non-fatal diagnostics.
func resolveVariables(ctx context.Context, dir string, cfg *types.PromptConfig, overridePairs []string) (*variable.Set, error) {
	overrides, err := parseOverrides(overridePairs)
	if err != nil {
		return nil, err
	}

	resolver := variable.NewResolver()
	set, diags, err := resolver.Resolve(ctx, variable.ResolveOptions{
		Dir:             dir,
		FilePath:        config.VariableFilePath(dir),
		Inline:          cfg.Variables,
		Overrides:       overrides,
		AllowCommands:   cfg.Settings.AllowCommands,
		IncludeBuiltins: true,
		Timeout:         cfg.Settings.CommandTimeout,
	})
	for _, d := range diags {
		log.Warn().Str("variable", d.Name).Msg(d.Message)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// selectTargets decides which adapters to run: the explicit flag, else
// the config's targets, else every registered adapter.
func selectTargets(cfg *types.PromptConfig, flagEditors []string) ([]string, error) {
	names := flagEditors
	if len(names) == 0 {
		names = cfg.Targets
	}
	if len(names) == 0 {
		for _, a := range adapter.All() {
			names = append(names, a.Name())
		}
		return names, nil
	}
	for _, name := range names {
		if _, ok := adapter.Get(name); !ok {
			return nil, fmt.Errorf("unknown editor %q (see 'uniprompt editors')", name)
		}
	}
	return names, nil
}
