package adapter

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// VSCode targets VS Code AI extensions that read a JSON-with-comments
// instruction file from .vscode/.
type VSCode struct{}

var vscodePath = filepath.Join(".vscode", "ai-instructions.jsonc")

// vscodeDoc is the on-disk shape of the instruction file.
type vscodeDoc struct {
	Title        string              `json:"title,omitempty"`
	Instructions []vscodeInstruction `json:"instructions"`
}

type vscodeInstruction struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (a *VSCode) Name() string        { return "vscode" }
func (a *VSCode) Description() string { return "VS Code AI extensions (.vscode/ai-instructions.jsonc)" }
func (a *VSCode) Globs() []string     { return []string{".vscode/ai-instructions.jsonc"} }

func (a *VSCode) Generate(cfg *types.PromptConfig) ([]types.GeneratedFile, error) {
	doc := vscodeDoc{Title: cfg.Metadata.Title}
	for _, ins := range cfg.Instructions {
		doc.Instructions = append(doc.Instructions, vscodeInstruction{
			Name:    ins.Name,
			Content: strings.TrimRight(ins.Content, "\n"),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", vscodePath, err)
	}

	content := "// Generated by uniprompt. Edits are preserved on sync.\n" + string(data) + "\n"
	return []types.GeneratedFile{{Path: vscodePath, Content: content}}, nil
}

func (a *VSCode) Parse(files map[string]string) (*types.PromptConfig, error) {
	content, ok := files[vscodePath]
	if !ok {
		return &types.PromptConfig{}, nil
	}

	var doc vscodeDoc
	if err := json.Unmarshal(jsonc.ToJSON([]byte(content)), &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", vscodePath, err)
	}

	cfg := &types.PromptConfig{}
	cfg.Metadata.Title = doc.Title
	for _, ins := range doc.Instructions {
		cfg.Instructions = append(cfg.Instructions, types.Instruction{
			Name:    ins.Name,
			Content: ins.Content,
		})
	}
	return cfg, nil
}
