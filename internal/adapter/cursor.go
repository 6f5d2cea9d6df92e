package adapter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// Cursor targets the Cursor editor, which reads rule files with YAML
// frontmatter from .cursor/rules/.
type Cursor struct{}

func (a *Cursor) Name() string        { return "cursor" }
func (a *Cursor) Description() string { return "Cursor (.cursor/rules/*.mdc)" }
func (a *Cursor) Globs() []string     { return []string{".cursor/rules/*.mdc"} }

func (a *Cursor) Generate(cfg *types.PromptConfig) ([]types.GeneratedFile, error) {
	files := make([]types.GeneratedFile, 0, len(cfg.Instructions))
	for _, ins := range cfg.Instructions {
		var sb strings.Builder
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("description: %s\n", ins.Name))
		sb.WriteString("alwaysApply: true\n")
		sb.WriteString("---\n\n")
		sb.WriteString(strings.TrimRight(ins.Content, "\n"))
		sb.WriteString("\n")

		files = append(files, types.GeneratedFile{
			Path:    filepath.Join(".cursor", "rules", slugify(ins.Name)+".mdc"),
			Content: sb.String(),
		})
	}
	return files, nil
}

func (a *Cursor) Parse(files map[string]string) (*types.PromptConfig, error) {
	cfg := &types.PromptConfig{}
	for _, path := range sortedPaths(files) {
		name, body := splitFrontmatter(files[path], "description")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), ".mdc")
		}
		cfg.Instructions = append(cfg.Instructions, types.Instruction{
			Name:    name,
			Content: strings.TrimSpace(body),
		})
	}
	return cfg, nil
}

// splitFrontmatter separates a simple YAML frontmatter block from the
// body and returns the value of the given frontmatter key.
func splitFrontmatter(content, key string) (value, body string) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", content
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return value, strings.Join(lines[i+1:], "\n")
		}
		k, v, ok := strings.Cut(lines[i], ":")
		if ok && strings.TrimSpace(k) == key {
			value = strings.Trim(strings.TrimSpace(v), "\"'")
		}
	}
	return "", content
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
