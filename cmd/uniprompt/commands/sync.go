package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/adapter"
	"github.com/uniprompt/uniprompt/internal/config"
	"github.com/uniprompt/uniprompt/internal/generation"
	"github.com/uniprompt/uniprompt/internal/template"
	"github.com/uniprompt/uniprompt/pkg/types"
)

var (
	syncEditors []string
	syncVars    []string
	syncDryRun  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile edited editor files back into the universal configuration",
	Long: `sync reads the generated editor files, restores variable placeholders
wherever the rendered value is still intact, keeps hand edits verbatim,
and rebuilds uniprompt.yaml from the result.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringSliceVarP(&syncEditors, "editor", "e", nil, "Editors to sync from (default: last generation, else config targets)")
	syncCmd.Flags().StringArrayVarP(&syncVars, "var", "V", nil, "Variable override (NAME=value), highest precedence")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show the reconciled configuration without writing")
}

func runSync(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	cfg, cfgPath, err := config.Load(dir)
	if err != nil {
		return err
	}

	set, err := resolveVariables(cmd.Context(), dir, cfg, syncVars)
	if err != nil {
		return err
	}
	values := set.Values()

	rec, err := generation.Load(dir)
	if err != nil {
		return err
	}
	if rec == nil {
		log.Warn().Msg("no generation metadata found; syncing without placeholder reconciliation")
	}

	editors := syncEditors
	if len(editors) == 0 && rec != nil {
		editors = rec.Editors
	}
	editors, err = selectTargets(cfg, editors)
	if err != nil {
		return err
	}

	env := template.EnvSnapshot(dir)
	reconciler := template.NewReconciler(env)

	merged := *cfg
	synced := 0
	for _, name := range editors {
		a, _ := adapter.Get(name)

		files, err := adapter.Discover(a, dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			log.Debug().Str("editor", name).Msg("no files to sync")
			continue
		}

		// Restore placeholders against the stored template snapshots
		// before handing the content to the adapter's parser.
		for path, content := range files {
			snapshot, ok := lookupSnapshot(rec, path)
			if !ok {
				continue
			}
			result := reconciler.Restore(snapshot, content, values)
			files[path] = result.Template
			if n := len(result.EditedSpans); n > 0 {
				log.Info().Str("path", path).Int("edits", n).Msg("preserved hand edits")
			}
		}

		fragment, err := a.Parse(files)
		if err != nil {
			return fmt.Errorf("parsing %s files: %w", name, err)
		}
		mergeInstructions(&merged, fragment)
		synced++
	}

	if synced == 0 {
		return fmt.Errorf("nothing to sync: no editor files found")
	}

	if syncDryRun {
		fmt.Printf("would update %s with %d instruction(s)\n", cfgPath, len(merged.Instructions))
		return nil
	}

	if err := config.Save(&merged, cfgPath); err != nil {
		return err
	}
	fmt.Printf("Synced %d editor(s) into %s\n", synced, cfgPath)
	return nil
}

func lookupSnapshot(rec *generation.Record, path string) (string, bool) {
	if rec == nil {
		return "", false
	}
	fr, ok := rec.Files[path]
	return fr.Template, ok
}

// mergeInstructions folds a parsed fragment into the config: existing
// instructions are updated in place by name, new ones appended. Fragment
// metadata never overwrites the universal config's metadata.
func mergeInstructions(dst *types.PromptConfig, fragment *types.PromptConfig) {
	index := make(map[string]int, len(dst.Instructions))
	for i, ins := range dst.Instructions {
		index[ins.Name] = i
	}
	for _, ins := range fragment.Instructions {
		if i, ok := index[ins.Name]; ok {
			dst.Instructions[i].Content = ins.Content
			continue
		}
		index[ins.Name] = len(dst.Instructions)
		dst.Instructions = append(dst.Instructions, ins)
	}
}
