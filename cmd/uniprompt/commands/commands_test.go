package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniprompt/uniprompt/internal/adapter"
	"github.com/uniprompt/uniprompt/pkg/types"
)

func TestParseOverrides(t *testing.T) {
	overrides, err := parseOverrides([]string{"NAME=value", "EMPTY=", "EQ=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"NAME":  "value",
		"EMPTY": "",
		"EQ":    "a=b",
	}, overrides)

	none, err := parseOverrides(nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseOverrides([]string{"no-equals"})
	assert.Error(t, err)

	_, err = parseOverrides([]string{"=value"})
	assert.Error(t, err)
}

func TestSelectTargets(t *testing.T) {
	cfg := &types.PromptConfig{Targets: []string{"claude"}}

	t.Run("flag wins over config", func(t *testing.T) {
		names, err := selectTargets(cfg, []string{"cursor"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cursor"}, names)
	})

	t.Run("config targets", func(t *testing.T) {
		names, err := selectTargets(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"claude"}, names)
	})

	t.Run("defaults to all adapters", func(t *testing.T) {
		names, err := selectTargets(&types.PromptConfig{}, nil)
		require.NoError(t, err)
		assert.Len(t, names, len(adapter.All()))
	})

	t.Run("unknown editor", func(t *testing.T) {
		_, err := selectTargets(cfg, []string{"notepad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "notepad")
	})
}
