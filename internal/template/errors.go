package template

import "fmt"

// UndefinedVariableError is returned by strict substitution when a
// referenced name has no value.
type UndefinedVariableError struct {
	Name       string
	Suggestion string
}

func (e *UndefinedVariableError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("undefined variable %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("undefined variable %q", e.Name)
}
