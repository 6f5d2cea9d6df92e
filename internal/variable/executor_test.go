package variable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteDisabledFailsClosed(t *testing.T) {
	executor := NewExecutor(false, 0, t.TempDir())

	out, err := executor.Execute(context.Background(), "echo should-not-run")
	require.Error(t, err)
	assert.Empty(t, out)

	var disabled *DisabledError
	require.ErrorAs(t, err, &disabled)
	assert.Contains(t, disabled.Error(), "echo should-not-run")
}

func TestExecuteTrimsTrailingWhitespace(t *testing.T) {
	executor := NewExecutor(true, 0, t.TempDir())

	out, err := executor.Execute(context.Background(), "printf 'value  \\n\\n'")
	require.NoError(t, err)
	assert.Equal(t, "value", out)
}

func TestExecuteCapturesStdoutOnly(t *testing.T) {
	executor := NewExecutor(true, 0, t.TempDir())

	out, err := executor.Execute(context.Background(), "echo out; echo noise >&2")
	require.NoError(t, err)
	assert.Equal(t, "out", out)
}

func TestExecuteTimeoutKillsProcess(t *testing.T) {
	executor := NewExecutor(true, 100*time.Millisecond, t.TempDir())

	start := time.Now()
	_, err := executor.Execute(context.Background(), "sleep 5")
	elapsed := time.Since(start)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 100*time.Millisecond, timeout.Timeout)
	assert.Less(t, elapsed, 3*time.Second, "process should be terminated, not awaited")
}

func TestExecuteCommandNotFound(t *testing.T) {
	executor := NewExecutor(true, 0, t.TempDir())

	_, err := executor.Execute(context.Background(), "definitely-not-a-real-binary-xyz --flag")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "definitely-not-a-real-binary-xyz", notFound.Executable)
}

func TestExecuteNonZeroExit(t *testing.T) {
	executor := NewExecutor(true, 0, t.TempDir())

	_, err := executor.Execute(context.Background(), "echo boom >&2; exit 3")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Contains(t, exitErr.Stderr, "boom")
	assert.Contains(t, exitErr.Error(), "exit code 3")
}

func TestRootExecutable(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"git rev-parse HEAD", "git"},
		{"echo hi", ""},          // shell builtin
		{"$CMD --verbose", ""},   // dynamic
		{"./local/script.sh", ""}, // explicit path
		{"", ""},
	}
	for _, tt := range tests {
		if got := rootExecutable(tt.command); got != tt.want {
			t.Errorf("rootExecutable(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}
