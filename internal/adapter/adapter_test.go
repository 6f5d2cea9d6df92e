package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniprompt/uniprompt/pkg/types"
)

func testConfig() *types.PromptConfig {
	return &types.PromptConfig{
		Metadata: types.Metadata{
			Title:       "Demo Project",
			Description: "A demo.",
		},
		Instructions: []types.Instruction{
			{Name: "Overview", Content: "Built on {{{ CURRENT_DATE }}}."},
			{Name: "Code Style", Content: "Use tabs."},
		},
	}
}

func TestRegistryIsClosedAndSorted(t *testing.T) {
	adapters := All()
	require.NotEmpty(t, adapters)

	var prev string
	for _, a := range adapters {
		assert.Greater(t, a.Name(), prev, "adapters sorted by name")
		prev = a.Name()

		got, ok := Get(a.Name())
		require.True(t, ok)
		assert.Equal(t, a.Name(), got.Name())
	}

	_, ok := Get("notepad")
	assert.False(t, ok)

	assert.True(t, Known()["claude"])
	assert.False(t, Known()["notepad"])
}

func TestClaudeRoundTrip(t *testing.T) {
	a := &Claude{}
	files, err := a.Generate(testConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "CLAUDE.md", files[0].Path)
	assert.Contains(t, files[0].Content, "# Demo Project")
	assert.Contains(t, files[0].Content, "## Overview")
	assert.Contains(t, files[0].Content, "{{{ CURRENT_DATE }}}")

	parsed, err := a.Parse(map[string]string{"CLAUDE.md": files[0].Content})
	require.NoError(t, err)
	assert.Equal(t, "Demo Project", parsed.Metadata.Title)
	require.Len(t, parsed.Instructions, 2)
	assert.Equal(t, "Overview", parsed.Instructions[0].Name)
	assert.Equal(t, "Built on {{{ CURRENT_DATE }}}.", parsed.Instructions[0].Content)
	assert.Equal(t, "Code Style", parsed.Instructions[1].Name)
}

func TestCursorGeneratesOneRulePerInstruction(t *testing.T) {
	a := &Cursor{}
	files, err := a.Generate(testConfig())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, filepath.Join(".cursor", "rules", "overview.mdc"), files[0].Path)
	assert.Equal(t, filepath.Join(".cursor", "rules", "code-style.mdc"), files[1].Path)
	assert.Contains(t, files[0].Content, "description: Overview")
	assert.Contains(t, files[0].Content, "alwaysApply: true")

	parsed, err := a.Parse(map[string]string{
		files[0].Path: files[0].Content,
		files[1].Path: files[1].Content,
	})
	require.NoError(t, err)
	require.Len(t, parsed.Instructions, 2)
	// Parse order is path-sorted.
	assert.Equal(t, "Code Style", parsed.Instructions[0].Name)
	assert.Equal(t, "Overview", parsed.Instructions[1].Name)
	assert.Equal(t, "Built on {{{ CURRENT_DATE }}}.", parsed.Instructions[1].Content)
}

func TestWindsurfRoundTrip(t *testing.T) {
	a := &Windsurf{}
	files, err := a.Generate(testConfig())
	require.NoError(t, err)
	require.Len(t, files, 2)

	parsed, err := a.Parse(map[string]string{files[0].Path: files[0].Content})
	require.NoError(t, err)
	require.Len(t, parsed.Instructions, 1)
	assert.Equal(t, "Overview", parsed.Instructions[0].Name)
}

func TestVSCodeParsesJSONC(t *testing.T) {
	a := &VSCode{}
	files, err := a.Generate(testConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0].Content, "// Generated by uniprompt")

	// Hand-edited with extra comments and a trailing comma.
	edited := `// tweaked by hand
{
  "title": "Demo Project", // keep
  "instructions": [
    {"name": "Overview", "content": "rewritten"},
  ]
}`
	parsed, err := a.Parse(map[string]string{vscodePath: edited})
	require.NoError(t, err)
	assert.Equal(t, "Demo Project", parsed.Metadata.Title)
	require.Len(t, parsed.Instructions, 1)
	assert.Equal(t, "rewritten", parsed.Instructions[0].Content)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	rulesDir := filepath.Join(root, ".cursor", "rules")
	require.NoError(t, os.MkdirAll(rulesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rulesDir, "a.mdc"), []byte("---\n---\nbody"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rulesDir, "ignored.txt"), []byte("x"), 0644))

	files, err := Discover(&Cursor{}, root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files, filepath.Join(".cursor", "rules", "a.mdc"))

	empty, err := Discover(&Claude{}, root)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Code Style", "code-style"},
		{"API & HTTP!", "api-http"},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
