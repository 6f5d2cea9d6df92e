package types

import "time"

// PromptConfig is the universal prompt configuration loaded from
// uniprompt.yaml. It is editor-agnostic; adapters translate it into
// editor-specific file layouts.
type PromptConfig struct {
	// Schema reference (for editor support)
	Schema string `yaml:"schema,omitempty"`

	// Metadata describes the prompt set.
	Metadata Metadata `yaml:"metadata,omitempty"`

	// Targets lists the editors to generate for. Empty means all
	// registered editors.
	Targets []string `yaml:"targets,omitempty"`

	// Instructions are the prompt sections rendered into editor files.
	Instructions []Instruction `yaml:"instructions,omitempty"`

	// Variables are inline variable definitions. Lowest precedence among
	// the non-builtin sources.
	Variables map[string]string `yaml:"variables,omitempty"`

	// Settings controls engine behavior.
	Settings Settings `yaml:"settings,omitempty"`
}

// Metadata describes the prompt set.
type Metadata struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// Instruction is one named prompt section.
type Instruction struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// Settings controls engine behavior.
type Settings struct {
	// AllowCommands enables dynamic (command-backed) variables. Defaults
	// to false; command execution fails closed without it.
	AllowCommands bool `yaml:"allow_commands,omitempty"`

	// CommandTimeout bounds each dynamic variable command. Zero means the
	// default (5s).
	CommandTimeout time.Duration `yaml:"command_timeout,omitempty"`

	// StrictVariables makes generation fail on undefined variable
	// references instead of leaving placeholders untouched.
	StrictVariables bool `yaml:"strict_variables,omitempty"`
}

// GeneratedFile is a single rendered editor file, relative to the project
// root. Adapters produce these; the CLI owns writing them to disk.
type GeneratedFile struct {
	Path    string
	Content string
}
