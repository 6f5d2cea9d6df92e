package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter uniprompt.yaml",
	RunE:  runInit,
}

const starterConfig = `# Universal prompt configuration.
# Render with 'uniprompt generate'; pull edits back with 'uniprompt sync'.
metadata:
  title: "{{{ PROJECT_NAME }}} Instructions"
  version: "0.1.0"

# Editors to generate for. Remove this list to generate for all.
targets:
  - claude
  - cursor
  - copilot

instructions:
  - name: Overview
    content: |
      This is the {{{ PROJECT_NAME }}} project, rooted at {{{ PROJECT_ROOT }}}.
      Generated on {{{ CURRENT_DATE }}}.
  - name: Conventions
    content: |
      Describe coding conventions here.

# Inline variables. Overridden by .uniprompt/variables.local.yaml and -V flags.
variables: {}

settings:
  # Dynamic (command-backed) variables stay disabled until this is true.
  allow_commands: false
`

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "uniprompt.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
