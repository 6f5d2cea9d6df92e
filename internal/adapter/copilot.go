package adapter

import (
	"path/filepath"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// Copilot targets GitHub Copilot, which reads
// .github/copilot-instructions.md.
type Copilot struct{}

var copilotPath = filepath.Join(".github", "copilot-instructions.md")

func (a *Copilot) Name() string        { return "copilot" }
func (a *Copilot) Description() string { return "GitHub Copilot (.github/copilot-instructions.md)" }
func (a *Copilot) Globs() []string     { return []string{copilotPath} }

func (a *Copilot) Generate(cfg *types.PromptConfig) ([]types.GeneratedFile, error) {
	return []types.GeneratedFile{
		{Path: copilotPath, Content: renderMarkdown(cfg)},
	}, nil
}

func (a *Copilot) Parse(files map[string]string) (*types.PromptConfig, error) {
	content, ok := files[copilotPath]
	if !ok {
		return &types.PromptConfig{}, nil
	}
	return parseMarkdown(content), nil
}
