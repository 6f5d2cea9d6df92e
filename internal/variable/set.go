package variable

import "sort"

// Source identifies which layer defined a variable. Later layers in the
// precedence order fully replace earlier ones.
type Source string

const (
	SourceBuiltin     Source = "builtin"
	SourceInline      Source = "inline"
	SourceFileStatic  Source = "file-static"
	SourceFileDynamic Source = "file-dynamic"
	SourceCLI         Source = "cli"
)

// Variable is one resolved variable with its winning source.
type Variable struct {
	Name   string
	Value  string
	Source Source
	Cache  bool
}

// Set is a resolved variable set: a name-unique mapping produced once per
// invocation. It is immutable once handed to substitution or
// reconciliation.
type Set struct {
	vars map[string]Variable
}

func newSet(vars map[string]Variable) *Set {
	return &Set{vars: vars}
}

// Get returns the variable bound to name.
func (s *Set) Get(name string) (Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Names returns all variable names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns a name→value copy of the set, the form consumed by
// substitution and reconciliation.
func (s *Set) Values() map[string]string {
	values := make(map[string]string, len(s.vars))
	for name, v := range s.vars {
		values[name] = v.Value
	}
	return values
}

// Len returns the number of variables in the set.
func (s *Set) Len() int {
	return len(s.vars)
}
