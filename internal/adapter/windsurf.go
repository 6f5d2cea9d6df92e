package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// Windsurf targets the Windsurf editor, which reads markdown rule files
// from .windsurf/rules/.
type Windsurf struct{}

func (a *Windsurf) Name() string        { return "windsurf" }
func (a *Windsurf) Description() string { return "Windsurf (.windsurf/rules/*.md)" }
func (a *Windsurf) Globs() []string     { return []string{".windsurf/rules/*.md"} }

func (a *Windsurf) Generate(cfg *types.PromptConfig) ([]types.GeneratedFile, error) {
	files := make([]types.GeneratedFile, 0, len(cfg.Instructions))
	for _, ins := range cfg.Instructions {
		content := fmt.Sprintf("# %s\n\n%s\n", ins.Name, strings.TrimRight(ins.Content, "\n"))
		files = append(files, types.GeneratedFile{
			Path:    filepath.Join(".windsurf", "rules", slugify(ins.Name)+".md"),
			Content: content,
		})
	}
	return files, nil
}

func (a *Windsurf) Parse(files map[string]string) (*types.PromptConfig, error) {
	cfg := &types.PromptConfig{}
	for _, path := range sortedPaths(files) {
		content := files[path]
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		body := content
		if first, rest, ok := strings.Cut(content, "\n"); ok && strings.HasPrefix(first, "# ") {
			name = strings.TrimSpace(strings.TrimPrefix(first, "# "))
			body = rest
		}
		cfg.Instructions = append(cfg.Instructions, types.Instruction{
			Name:    name,
			Content: strings.TrimSpace(body),
		})
	}
	return cfg, nil
}
