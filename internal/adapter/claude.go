package adapter

import "github.com/uniprompt/uniprompt/pkg/types"

// Claude targets Claude Code, which reads a single CLAUDE.md at the
// project root.
type Claude struct{}

func (a *Claude) Name() string        { return "claude" }
func (a *Claude) Description() string { return "Claude Code (CLAUDE.md)" }
func (a *Claude) Globs() []string     { return []string{"CLAUDE.md"} }

func (a *Claude) Generate(cfg *types.PromptConfig) ([]types.GeneratedFile, error) {
	return []types.GeneratedFile{
		{Path: "CLAUDE.md", Content: renderMarkdown(cfg)},
	}, nil
}

func (a *Claude) Parse(files map[string]string) (*types.PromptConfig, error) {
	content, ok := files["CLAUDE.md"]
	if !ok {
		return &types.PromptConfig{}, nil
	}
	return parseMarkdown(content), nil
}
