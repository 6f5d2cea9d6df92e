// Package template implements placeholder substitution and its reverse,
// round-trip reconciliation. Templates reference resolved variables with
// a triple-brace marker ({{{ NAME }}}) and environment variables with a
// dollar-brace marker (${NAME}). The triple-brace form is deliberately
// distinct from the single- and double-brace conventions of downstream
// templating engines.
package template

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// markerPattern matches both placeholder syntaxes in one scan so that
// substitution is a single pass: substituted values are never re-scanned,
// which rules out recursive expansion.
var markerPattern = regexp.MustCompile(`\{\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}\}|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// appPattern matches only the application marker, used for extraction and
// diagnostics.
var appPattern = regexp.MustCompile(`\{\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}\}`)

// Result is the outcome of one substitution: the rendered text and the
// names actually referenced by the input.
type Result struct {
	Text       string
	Referenced []string
}

// Substitutor replaces placeholders using a resolved variable map and an
// environment snapshot.
type Substitutor struct {
	// Env backs ${NAME} markers. Nil means the process environment.
	Env map[string]string
}

// NewSubstitutor creates a substitutor over the given environment
// snapshot. Pass nil to use the process environment.
func NewSubstitutor(env map[string]string) *Substitutor {
	if env == nil {
		env = EnvSnapshot("")
	}
	return &Substitutor{Env: env}
}

// Substitute renders text with the given variables. In strict mode any
// referenced name without a value returns UndefinedVariableError; in
// lenient mode the placeholder is left untouched. Substitution is one
// pass and order-independent.
func (s *Substitutor) Substitute(text string, vars map[string]string, strict bool) (Result, error) {
	var out strings.Builder
	referenced := make(map[string]bool)
	last := 0

	for _, m := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		out.WriteString(text[last:m[0]])
		last = m[1]
		raw := text[m[0]:m[1]]

		if m[2] >= 0 {
			name := text[m[2]:m[3]]
			referenced[name] = true
			if value, ok := vars[name]; ok {
				out.WriteString(value)
				continue
			}
			if strict {
				return Result{}, &UndefinedVariableError{Name: name, Suggestion: closestName(name, vars)}
			}
			out.WriteString(raw)
			continue
		}

		name := text[m[4]:m[5]]
		if value, ok := s.Env[name]; ok {
			out.WriteString(value)
			continue
		}
		if strict {
			return Result{}, &UndefinedVariableError{Name: name, Suggestion: closestName(name, s.Env)}
		}
		out.WriteString(raw)
	}
	out.WriteString(text[last:])

	names := make([]string, 0, len(referenced))
	for name := range referenced {
		names = append(names, name)
	}
	sort.Strings(names)

	return Result{Text: out.String(), Referenced: names}, nil
}

// ExtractVariables returns the sorted set of variable names referenced by
// application markers in text.
func ExtractVariables(text string) []string {
	seen := make(map[string]bool)
	for _, m := range appPattern.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UndefinedVariables returns the referenced names absent from available,
// sorted. Strict substitution fails exactly when this is non-empty.
func UndefinedVariables(text string, available map[string]string) []string {
	var missing []string
	for _, name := range ExtractVariables(text) {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// closestName returns the defined name nearest to name by edit distance,
// or "" when nothing is close enough to suggest.
func closestName(name string, available map[string]string) string {
	const maxDistance = 3
	best, bestDist := "", maxDistance+1
	for candidate := range available {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}
