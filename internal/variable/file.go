package variable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileEntry is one declaration from the local variable file, in
// declaration order. Exactly one of static/dynamic is set.
type fileEntry struct {
	name    string
	static  string
	dynamic *DynamicSpec
}

// dynamicDecl is the YAML shape of a command-backed entry.
type dynamicDecl struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
	Cache bool   `yaml:"cache"`
}

// loadVariableFile parses the local variable file. Entries are either
// scalar (NAME: value) or command declarations
// (NAME: {type: command, value: <cmd>, cache: <bool>}). A missing file
// contributes nothing and is not an error.
func loadVariableFile(path string) ([]fileEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading variable file %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing variable file %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("variable file %s: expected a mapping at the top level", path)
	}

	var entries []fileEntry
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]

		entry := fileEntry{name: keyNode.Value}
		switch valNode.Kind {
		case yaml.ScalarNode:
			if err := valNode.Decode(&entry.static); err != nil {
				return nil, fmt.Errorf("variable file %s: entry %s: %w", path, entry.name, err)
			}
		case yaml.MappingNode:
			var decl dynamicDecl
			if err := valNode.Decode(&decl); err != nil {
				return nil, fmt.Errorf("variable file %s: entry %s: %w", path, entry.name, err)
			}
			if decl.Type != "command" {
				return nil, fmt.Errorf("variable file %s: entry %s: unsupported type %q (only \"command\")", path, entry.name, decl.Type)
			}
			if decl.Value == "" {
				return nil, fmt.Errorf("variable file %s: entry %s: command value is empty", path, entry.name)
			}
			entry.dynamic = &DynamicSpec{
				Name:    entry.name,
				Command: decl.Value,
				Cache:   decl.Cache,
			}
		default:
			return nil, fmt.Errorf("variable file %s: entry %s: expected a string or a command declaration", path, entry.name)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
