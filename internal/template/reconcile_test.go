package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler() *Reconciler {
	r := NewReconciler(map[string]string{})
	return r
}

func render(t *testing.T, original string, vars map[string]string) string {
	t.Helper()
	sub := &Substitutor{Env: map[string]string{}}
	result, err := sub.Substitute(original, vars, true)
	require.NoError(t, err)
	return result.Text
}

func TestRestoreRoundTripIdempotence(t *testing.T) {
	vars := map[string]string{
		"NAME":   "uniprompt",
		"YEAR":   "2025",
		"BRANCH": "main",
	}
	templates := []string{
		"Project {{{ NAME }}} on branch {{{ BRANCH }}}, started {{{ YEAR }}}.",
		"{{{NAME}}}",
		"{{{ NAME }}}{{{ YEAR }}}",
		"no placeholders at all",
		"trailing {{{ NAME }}}",
		"{{{ NAME }}} leading",
	}

	r := newTestReconciler()
	for _, original := range templates {
		rendered := render(t, original, vars)
		result := r.Restore(original, rendered, vars)
		assert.Equal(t, original, result.Template, "template %q", original)
		assert.Empty(t, result.EditedSpans, "template %q", original)
	}
}

func TestRestorePreservesValueEdit(t *testing.T) {
	vars := map[string]string{"NAME": "uniprompt", "YEAR": "2025"}
	original := "Project {{{ NAME }}}, started {{{ YEAR }}}."
	// The human replaced the substituted name but left the year alone.
	rendered := "Project better-name, started 2025."

	r := newTestReconciler()
	result := r.Restore(original, rendered, vars)

	assert.Equal(t, "Project better-name, started {{{ YEAR }}}.", result.Template)
	assert.NotEmpty(t, result.EditedSpans)
}

func TestRestorePreservesForeignInsertion(t *testing.T) {
	vars := map[string]string{"NAME": "uniprompt"}
	original := "Intro.\n\n## Section\n\n{{{ NAME }}} details.\n"
	rendered := "Intro.\n\nA brand new paragraph.\n\n## Section\n\nuniprompt details.\n"

	r := newTestReconciler()
	result := r.Restore(original, rendered, vars)

	assert.Equal(t, "Intro.\n\nA brand new paragraph.\n\n## Section\n\n{{{ NAME }}} details.\n", result.Template)
}

func TestRestoreLongestMatchTieBreak(t *testing.T) {
	// SHORT's value is a prefix of LONG's value. The document contains
	// the long value, so the short placeholder must not be restored over
	// a fragment of it.
	vars := map[string]string{"SHORT": "api", "LONG": "api-gateway"}
	original := "service: {{{ SHORT }}}\n"
	rendered := "service: api-gateway\n"

	r := newTestReconciler()
	result := r.Restore(original, rendered, vars)

	assert.Equal(t, "service: api-gateway\n", result.Template,
		"edited value must stay concrete, not be split into placeholder plus residue")
}

func TestRestoreExactValueStillRestored(t *testing.T) {
	vars := map[string]string{"SHORT": "api", "LONG": "api-gateway"}
	original := "service: {{{ SHORT }}}\n"
	rendered := "service: api\n"

	r := newTestReconciler()
	result := r.Restore(original, rendered, vars)
	assert.Equal(t, original, result.Template)
}

func TestRestoreEditedLiteralKeepsDocument(t *testing.T) {
	vars := map[string]string{"NAME": "uniprompt"}
	original := "The {{{ NAME }}} project rocks."
	rendered := "The uniprompt project is thoroughly documented."

	r := newTestReconciler()
	result := r.Restore(original, rendered, vars)

	// The trailing literal was rewritten: the edit is kept verbatim, and
	// the value may stay concrete rather than be wrongly restored.
	assert.Contains(t, result.Template, "is thoroughly documented")
	assert.Contains(t, result.Template, "uniprompt")
	assert.NotContains(t, result.Template, "rocks")
}

func TestRestoreUndefinedPlaceholderPassesThrough(t *testing.T) {
	// Lenient generation left the marker in the document untouched.
	original := "value: {{{ UNSET }}}"
	rendered := "value: {{{ UNSET }}}"

	r := newTestReconciler()
	result := r.Restore(original, rendered, nil)
	assert.Equal(t, original, result.Template)
}

func TestRestoreEnvironmentMarker(t *testing.T) {
	r := NewReconciler(map[string]string{"CI": "true"})
	original := "ci: ${CI}\n"
	rendered := "ci: true\n"

	result := r.Restore(original, rendered, nil)
	assert.Equal(t, original, result.Template)
}

func TestRestoreEmptyValueRequiresAnchor(t *testing.T) {
	vars := map[string]string{"EMPTY": ""}
	original := "a{{{ EMPTY }}}b"

	r := newTestReconciler()
	result := r.Restore(original, "ab", vars)
	assert.Equal(t, original, result.Template)
}

func TestRestoreEditedSpansLocateInsertion(t *testing.T) {
	vars := map[string]string{"NAME": "uniprompt"}
	original := "Hello {{{ NAME }}}."
	rendered := "Hello uniprompt. EXTRA"

	r := newTestReconciler()
	result := r.Restore(original, rendered, vars)

	require.NotEmpty(t, result.EditedSpans)
	span := result.EditedSpans[0]
	assert.Contains(t, rendered[span.Start:span.End], "EXTRA")
}

func TestSplitTemplate(t *testing.T) {
	segs := splitTemplate("a {{{ X }}} b ${Y} c")
	require.Len(t, segs, 5)
	assert.Equal(t, "a ", segs[0].literal)
	assert.Equal(t, "X", segs[1].name)
	assert.False(t, segs[1].env)
	assert.Equal(t, " b ", segs[2].literal)
	assert.Equal(t, "Y", segs[3].name)
	assert.True(t, segs[3].env)
	assert.Equal(t, " c", segs[4].literal)
}
