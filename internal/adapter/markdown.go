package adapter

import (
	"fmt"
	"strings"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// renderMarkdown builds a single markdown document from the config:
// an H1 title, optional description, and one H2 section per instruction.
func renderMarkdown(cfg *types.PromptConfig) string {
	var sb strings.Builder

	title := cfg.Metadata.Title
	if title == "" {
		title = "Project Instructions"
	}
	sb.WriteString("# " + title + "\n")
	if cfg.Metadata.Description != "" {
		sb.WriteString("\n" + cfg.Metadata.Description + "\n")
	}

	for _, ins := range cfg.Instructions {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n%s\n", ins.Name, strings.TrimRight(ins.Content, "\n")))
	}

	return sb.String()
}

// parseMarkdown splits a markdown document produced by renderMarkdown
// back into metadata and instructions. Unknown leading content becomes
// the description.
func parseMarkdown(content string) *types.PromptConfig {
	cfg := &types.PromptConfig{}

	lines := strings.Split(content, "\n")
	var current *types.Instruction
	var body []string
	var preamble []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		cfg.Instructions = append(cfg.Instructions, *current)
		current = nil
		body = nil
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			current = &types.Instruction{Name: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
		case strings.HasPrefix(line, "# ") && cfg.Metadata.Title == "":
			cfg.Metadata.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case current != nil:
			body = append(body, line)
		default:
			preamble = append(preamble, line)
		}
	}
	flush()

	if desc := strings.TrimSpace(strings.Join(preamble, "\n")); desc != "" {
		cfg.Metadata.Description = desc
	}

	return cfg
}

// slugify converts an instruction name into a file name component.
func slugify(name string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
