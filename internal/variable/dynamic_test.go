package variable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCommand appends a line to counter on every run, so the test can
// observe how many times the command actually executed.
func countingCommand(counter string) string {
	return fmt.Sprintf("echo run >> %s; echo value", counter)
}

func runCount(t *testing.T, counter string) int {
	t.Helper()
	data, err := os.ReadFile(counter)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(data), "run")
}

func TestDynamicCacheEvaluatesOnce(t *testing.T) {
	dir := t.TempDir()
	counter := filepath.Join(dir, "count")
	executor := NewExecutor(true, 0, dir)

	spec := &DynamicSpec{Name: "CACHED", Command: countingCommand(counter), Cache: true}

	for i := 0; i < 5; i++ {
		value, err := spec.Evaluate(context.Background(), executor)
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	}

	assert.Equal(t, 1, runCount(t, counter))
}

func TestDynamicNoCacheEvaluatesEveryTime(t *testing.T) {
	dir := t.TempDir()
	counter := filepath.Join(dir, "count")
	executor := NewExecutor(true, 0, dir)

	spec := &DynamicSpec{Name: "FRESH", Command: countingCommand(counter), Cache: false}

	for i := 0; i < 3; i++ {
		_, err := spec.Evaluate(context.Background(), executor)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, runCount(t, counter))
}

func TestDynamicPropagatesExecutorErrors(t *testing.T) {
	executor := NewExecutor(false, 0, t.TempDir())
	spec := &DynamicSpec{Name: "GATED", Command: "echo hi", Cache: true}

	_, err := spec.Evaluate(context.Background(), executor)
	var disabled *DisabledError
	require.ErrorAs(t, err, &disabled)

	// A failed evaluation must not poison the cache.
	assert.False(t, spec.evaluated)
}
