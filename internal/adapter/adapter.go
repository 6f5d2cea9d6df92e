// Package adapter translates the universal prompt configuration into
// editor-specific file layouts and back. The supported editors form a
// closed set dispatched through an explicit registration table.
package adapter

import (
	"sort"

	"github.com/uniprompt/uniprompt/pkg/types"
)

// Adapter generates and parses one editor's file layout. Generated
// content is in template form (placeholders intact); the CLI owns
// substitution and file I/O.
type Adapter interface {
	// Name is the target identifier used in config targets and CLI flags.
	Name() string
	// Description is a one-line summary for listings.
	Description() string
	// Generate renders the config into the editor's file layout.
	Generate(cfg *types.PromptConfig) ([]types.GeneratedFile, error)
	// Globs are doublestar patterns (relative to the project root)
	// matching the files this adapter owns.
	Globs() []string
	// Parse reconstructs a config fragment from the adapter's files,
	// keyed by project-relative path.
	Parse(files map[string]string) (*types.PromptConfig, error)
}

// registry is the closed set of supported editors.
var registry = []Adapter{
	&Claude{},
	&Copilot{},
	&Cursor{},
	&Windsurf{},
	&VSCode{},
}

// All returns every registered adapter, sorted by name.
func All() []Adapter {
	adapters := make([]Adapter, len(registry))
	copy(adapters, registry)
	sort.Slice(adapters, func(i, j int) bool { return adapters[i].Name() < adapters[j].Name() })
	return adapters
}

// Get returns the adapter registered under name.
func Get(name string) (Adapter, bool) {
	for _, a := range registry {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Known returns the set of registered adapter names.
func Known() map[string]bool {
	known := make(map[string]bool, len(registry))
	for _, a := range registry {
		known[a.Name()] = true
	}
	return known
}
