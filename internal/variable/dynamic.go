package variable

import "context"

// DynamicSpec is a command-backed variable declared in the local variable
// file. When Cache is true the command runs at most once per spec
// instance; the cached value is scoped to one resolution and never
// persisted.
type DynamicSpec struct {
	Name    string
	Command string
	Cache   bool

	evaluated bool
	cached    string
}

// Evaluate returns the variable's value, running the command through the
// executor unless a cached value exists. Executor errors propagate
// unchanged.
func (d *DynamicSpec) Evaluate(ctx context.Context, executor *Executor) (string, error) {
	if d.Cache && d.evaluated {
		return d.cached, nil
	}

	out, err := executor.Execute(ctx, d.Command)
	if err != nil {
		return "", err
	}

	if d.Cache {
		d.cached = out
		d.evaluated = true
	}
	return out, nil
}
