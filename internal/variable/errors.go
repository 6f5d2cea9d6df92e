package variable

import (
	"fmt"
	"time"
)

// DisabledError is returned when a dynamic variable requires command
// execution but the security gate (allow_commands) is not enabled.
type DisabledError struct {
	Variable string // variable being evaluated, if known
	Command  string
}

func (e *DisabledError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("command execution is disabled: variable %q requires running %q (set settings.allow_commands to enable)", e.Variable, e.Command)
	}
	return fmt.Sprintf("command execution is disabled: refusing to run %q (set settings.allow_commands to enable)", e.Command)
}

// NotFoundError is returned when the shell cannot resolve the executable
// named by a command.
type NotFoundError struct {
	Command    string
	Executable string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %q (executable %q is not in PATH)", e.Command, e.Executable)
}

// TimeoutError is returned when a command exceeds its timeout. The child
// process is terminated before this error is returned.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s: %q", e.Timeout, e.Command)
}

// ExitError is returned when a command exits non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command failed with exit code %d: %q: %s", e.ExitCode, e.Command, e.Stderr)
	}
	return fmt.Sprintf("command failed with exit code %d: %q", e.ExitCode, e.Command)
}
