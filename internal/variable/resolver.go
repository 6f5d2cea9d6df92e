package variable

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// namePattern is the recommended variable naming convention. Names that
// do not match produce a warning diagnostic, never an error.
var namePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// ResolveOptions carries the inputs of one resolution.
type ResolveOptions struct {
	// Dir is the project directory; built-ins and commands run relative
	// to it.
	Dir string
	// FilePath is the local variable file. Absence contributes nothing.
	FilePath string
	// Inline are variables from the universal config. Lowest precedence
	// among non-builtin sources.
	Inline map[string]string
	// Overrides are CLI-supplied name=value pairs. Highest precedence.
	Overrides map[string]string
	// AllowCommands gates dynamic variable evaluation.
	AllowCommands bool
	// IncludeBuiltins adds the clock/git/project built-ins.
	IncludeBuiltins bool
	// Timeout bounds each dynamic variable command. Zero means the
	// default.
	Timeout time.Duration
}

// Diagnostic is a non-fatal finding surfaced during resolution.
type Diagnostic struct {
	Name    string
	Message string
}

// Resolver merges the four variable layers into one Set. Precedence,
// lowest to highest: built-ins, inline config, local variable file, CLI
// overrides.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a resolver using the process clock.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Resolve produces the effective variable set for one invocation.
// A failing dynamic command degrades only that variable (warning
// diagnostic, value omitted), except a closed security gate, which aborts
// resolution naming the offending variable.
func (r *Resolver) Resolve(ctx context.Context, opts ResolveOptions) (*Set, []Diagnostic, error) {
	vars := make(map[string]Variable)
	var diags []Diagnostic

	if opts.IncludeBuiltins {
		for name, value := range Builtins(r.now(), opts.Dir) {
			vars[name] = Variable{Name: name, Value: value, Source: SourceBuiltin}
		}
	}

	for name, value := range opts.Inline {
		vars[name] = Variable{Name: name, Value: value, Source: SourceInline}
	}

	if opts.FilePath != "" {
		entries, err := loadVariableFile(opts.FilePath)
		if err != nil {
			return nil, diags, err
		}
		if len(entries) > 0 {
			executor := NewExecutor(opts.AllowCommands, opts.Timeout, opts.Dir)
			for i := range entries {
				entry := &entries[i]
				if entry.dynamic == nil {
					vars[entry.name] = Variable{Name: entry.name, Value: entry.static, Source: SourceFileStatic}
					continue
				}

				value, err := entry.dynamic.Evaluate(ctx, executor)
				if err != nil {
					var disabled *DisabledError
					if errors.As(err, &disabled) {
						disabled.Variable = entry.name
						return nil, diags, disabled
					}
					log.Warn().Str("variable", entry.name).Err(err).Msg("dynamic variable failed, omitting")
					diags = append(diags, Diagnostic{
						Name:    entry.name,
						Message: fmt.Sprintf("dynamic variable failed, value omitted: %v", err),
					})
					continue
				}
				vars[entry.name] = Variable{
					Name:   entry.name,
					Value:  value,
					Source: SourceFileDynamic,
					Cache:  entry.dynamic.Cache,
				}
			}
		}
	}

	for name, value := range opts.Overrides {
		vars[name] = Variable{Name: name, Value: value, Source: SourceCLI}
	}

	for _, v := range vars {
		if v.Source == SourceBuiltin {
			continue
		}
		if !namePattern.MatchString(v.Name) {
			diags = append(diags, Diagnostic{
				Name:    v.Name,
				Message: "variable name does not match the recommended UPPER_SNAKE_CASE convention",
			})
		}
	}

	return newSet(vars), diags, nil
}
