// Package config loads and validates the universal prompt configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// ErrNotFound is returned when no universal config exists in the project.
var ErrNotFound = errors.New("no uniprompt.yaml found (run 'uniprompt init' to create one)")

// candidates are the config locations tried in order, relative to the
// project directory.
var candidates = []string{
	"uniprompt.yaml",
	"uniprompt.yml",
	filepath.Join(".uniprompt", "uniprompt.yaml"),
}

// Load reads the universal prompt configuration for a project directory.
// It returns the parsed config and the path it was loaded from.
func Load(dir string) (*types.PromptConfig, string, error) {
	for _, rel := range candidates {
		path := filepath.Join(dir, rel)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("reading %s: %w", path, err)
		}

		var cfg types.PromptConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return &cfg, path, nil
	}
	return nil, "", ErrNotFound
}

// Save writes the universal prompt configuration to path.
func Save(cfg *types.PromptConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// VariableFilePath returns the project-local variable file location. The
// file lives in the non-versioned .uniprompt directory; absence is not an
// error.
func VariableFilePath(dir string) string {
	return filepath.Join(dir, ".uniprompt", "variables.local.yaml")
}

// Validate checks a loaded config. It returns non-fatal warnings and an
// error for conditions that make generation impossible. knownTargets maps
// registered adapter names.
func Validate(cfg *types.PromptConfig, knownTargets map[string]bool) ([]string, error) {
	var warnings []string

	if len(cfg.Instructions) == 0 {
		return warnings, errors.New("config has no instructions")
	}
	for i, ins := range cfg.Instructions {
		if ins.Name == "" {
			return warnings, fmt.Errorf("instruction %d has no name", i)
		}
		if ins.Content == "" {
			warnings = append(warnings, fmt.Sprintf("instruction %q has empty content", ins.Name))
		}
	}

	for _, target := range cfg.Targets {
		if !knownTargets[target] {
			return warnings, fmt.Errorf("unknown target editor %q", target)
		}
	}

	if cfg.Metadata.Title == "" {
		warnings = append(warnings, "metadata.title is empty")
	}

	return warnings, nil
}
