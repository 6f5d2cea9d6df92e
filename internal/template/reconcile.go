package template

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is a half-open byte range [Start, End) in the rendered document.
type Span struct {
	Start int
	End   int
}

// RestoreResult is the outcome of one reconciliation: the recovered
// template and the rendered-document regions that differ from a clean
// rendering (the edits that were preserved as concrete text).
type RestoreResult struct {
	Template    string
	EditedSpans []Span
}

// Reconciler recovers placeholders from a rendered, possibly hand-edited
// document. Reconciliation is advisory and never fails: wherever a
// placeholder's substituted value cannot be confidently located, the
// rendered text is kept verbatim. Under-restoring is always preferred
// over wrongly restoring and losing an edit.
type Reconciler struct {
	// Env backs ${NAME} markers, mirroring the substitutor that produced
	// the document. Nil means the process environment.
	Env map[string]string

	dmp *diffmatchpatch.DiffMatchPatch
}

// NewReconciler creates a reconciler over the given environment snapshot.
// Pass nil to use the process environment.
func NewReconciler(env map[string]string) *Reconciler {
	if env == nil {
		env = EnvSnapshot("")
	}
	return &Reconciler{Env: env, dmp: diffmatchpatch.New()}
}

// segment is one piece of the original template: either a literal run
// (name == "") or a placeholder slot carrying its raw marker text.
type segment struct {
	literal string
	name    string
	raw     string
	env     bool
}

// Restore reconstructs a template from original and its rendered, possibly
// edited counterpart. Placeholders are restored only at positions that
// existed in the original template and only when the exact substituted
// value is still present there; everything else is kept as rendered.
func (r *Reconciler) Restore(original, rendered string, vars map[string]string) RestoreResult {
	segs := splitTemplate(original)
	values := r.matchValues(vars)

	var out strings.Builder
	pos := 0

	for i := 0; i < len(segs); i++ {
		seg := segs[i]

		if seg.name == "" {
			pos = r.consumeLiteral(&out, rendered, pos, seg.literal)
			continue
		}

		expected, known := r.expectedValue(seg, vars)
		if !known {
			// No value to match against: the marker passed through
			// substitution untouched, so it should still be present.
			expected = seg.raw
		}

		next := nextLiteral(segs, i)
		if r.slotMatches(rendered, pos, expected, next, values) {
			out.WriteString(seg.raw)
			pos += len(expected)
			continue
		}

		// Value edited (or shadowed by a longer variable value): keep the
		// concrete text up to the next reliable anchor and skip any
		// adjacent slots consumed by it.
		end, skipTo := r.recoverToAnchor(rendered, pos, segs, i)
		out.WriteString(rendered[pos:end])
		pos = end
		i = skipTo
	}

	// Trailing insertion after the last template segment.
	out.WriteString(rendered[pos:])

	restored := out.String()
	return RestoreResult{
		Template:   restored,
		EditedSpans: r.editedSpans(original, rendered, vars),
	}
}

// consumeLiteral advances through rendered past the given literal run.
// Text inserted before or inside the literal is kept verbatim; if no part
// of the literal can be located, the remainder of the document is kept
// as-is.
func (r *Reconciler) consumeLiteral(out *strings.Builder, rendered string, pos int, literal string) int {
	if strings.HasPrefix(rendered[pos:], literal) {
		out.WriteString(literal)
		return pos + len(literal)
	}

	// The literal was edited or content was inserted into it. Re-anchor
	// on the longest line-boundary suffix still present, keeping the
	// preceding rendered text (the edit) verbatim. Only the suffix
	// adjacent to the next slot matters for restoring that slot.
	if idx, suffix := suffixAnchor(rendered, pos, literal); idx >= 0 {
		out.WriteString(rendered[pos:idx])
		out.WriteString(suffix)
		return idx + len(suffix)
	}

	// No trustworthy anchor: keep the rest of the document verbatim.
	out.WriteString(rendered[pos:])
	return len(rendered)
}

// suffixAnchor finds the longest suffix of literal, cut at a line
// boundary, that occurs in rendered at or after pos. Partial-line
// suffixes that are pure whitespace are rejected as anchors.
func suffixAnchor(rendered string, pos int, literal string) (int, string) {
	start := 0
	for {
		suffix := literal[start:]
		if suffix == "" {
			return -1, ""
		}
		if start == 0 || strings.TrimSpace(suffix) != "" {
			if idx := strings.Index(rendered[pos:], suffix); idx >= 0 {
				return pos + idx, suffix
			}
		}
		nl := strings.IndexByte(literal[start:], '\n')
		if nl < 0 {
			return -1, ""
		}
		start += nl + 1
	}
}

// slotMatches reports whether the slot's expected value sits at pos and is
// the longest variable value that anchors there. The longest-match rule
// prevents restoring a variable whose value is a prefix of another
// variable's value actually present in the document.
func (r *Reconciler) slotMatches(rendered string, pos int, expected, next string, values []string) bool {
	if !strings.HasPrefix(rendered[pos:], expected) {
		return false
	}
	if !anchors(rendered, pos+len(expected), next) {
		return false
	}
	for _, v := range values {
		if len(v) <= len(expected) {
			break // values sorted longest first
		}
		if strings.HasPrefix(rendered[pos:], v) && anchors(rendered, pos+len(v), next) {
			return false
		}
	}
	return true
}

// anchors reports whether the following literal run matches immediately
// at pos. An empty anchor (document end or adjacent slot) always matches.
func anchors(rendered string, pos int, next string) bool {
	if next == "" {
		return true
	}
	return strings.HasPrefix(rendered[pos:], next)
}

// recoverToAnchor finds where the edited region ends: the next literal
// segment that can be located in rendered at or after pos. It returns the
// end of the edited region and the segment index to resume before. When
// no anchor can be found the rest of the document is the edited region.
func (r *Reconciler) recoverToAnchor(rendered string, pos int, segs []segment, i int) (end, skipTo int) {
	for j := i + 1; j < len(segs); j++ {
		if segs[j].name != "" {
			continue
		}
		anchor := segs[j].literal
		if idx := strings.Index(rendered[pos:], anchor); idx >= 0 {
			return pos + idx, j - 1
		}
		if loc := r.fuzzyIndex(rendered, anchor, pos); loc >= pos {
			return loc, j - 1
		}
		// Anchor unlocatable: everything past pos is edited text.
		break
	}
	return len(rendered), len(segs) - 1
}

// fuzzyIndex locates a lightly edited anchor using bitap matching on a
// bounded prefix of the anchor text. Returns -1 when no confident match
// exists.
func (r *Reconciler) fuzzyIndex(rendered, anchor string, pos int) int {
	pattern := anchor
	if len(pattern) > r.dmp.MatchMaxBits {
		pattern = pattern[:r.dmp.MatchMaxBits]
	}
	if strings.TrimSpace(pattern) == "" {
		return -1
	}
	loc := r.dmp.MatchMain(rendered, pattern, pos)
	if loc < pos {
		return -1
	}
	return loc
}

// expectedValue computes the exact substituted value for a slot.
func (r *Reconciler) expectedValue(seg segment, vars map[string]string) (string, bool) {
	if seg.env {
		v, ok := r.Env[seg.name]
		return v, ok
	}
	v, ok := vars[seg.name]
	return v, ok
}

// matchValues returns all values that could appear in the document,
// sorted longest first for the longest-match tie-break.
func (r *Reconciler) matchValues(vars map[string]string) []string {
	values := make([]string, 0, len(vars))
	for _, v := range vars {
		if v != "" {
			values = append(values, v)
		}
	}
	sortByLenDesc(values)
	return values
}

// editedSpans diffs a clean rendering of original against the actual
// document and reports the differing regions in rendered coordinates.
func (r *Reconciler) editedSpans(original, rendered string, vars map[string]string) []Span {
	sub := &Substitutor{Env: r.Env}
	clean, err := sub.Substitute(original, vars, false)
	if err != nil || clean.Text == rendered {
		return nil
	}

	diffs := r.dmp.DiffMain(clean.Text, rendered, false)
	diffs = r.dmp.DiffCleanupSemantic(diffs)

	var spans []Span
	pos := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(d.Text)
		case diffmatchpatch.DiffInsert:
			spans = append(spans, Span{Start: pos, End: pos + len(d.Text)})
			pos += len(d.Text)
		case diffmatchpatch.DiffDelete:
			// Deleted text occupies no range in the rendered document;
			// record the deletion point.
			spans = append(spans, Span{Start: pos, End: pos})
		}
	}
	return mergeSpans(spans)
}

func mergeSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func sortByLenDesc(values []string) {
	sort.Slice(values, func(i, j int) bool {
		if len(values[i]) != len(values[j]) {
			return len(values[i]) > len(values[j])
		}
		return values[i] < values[j]
	})
}

// splitTemplate breaks a template into alternating literal runs and
// placeholder slots. Empty literals between adjacent slots are dropped.
func splitTemplate(original string) []segment {
	var segs []segment
	last := 0
	for _, m := range markerPattern.FindAllStringSubmatchIndex(original, -1) {
		if m[0] > last {
			segs = append(segs, segment{literal: original[last:m[0]]})
		}
		seg := segment{raw: original[m[0]:m[1]]}
		if m[2] >= 0 {
			seg.name = original[m[2]:m[3]]
		} else {
			seg.name = original[m[4]:m[5]]
			seg.env = true
		}
		segs = append(segs, seg)
		last = m[1]
	}
	if last < len(original) {
		segs = append(segs, segment{literal: original[last:]})
	}
	return segs
}

// nextLiteral returns the literal immediately following segment i, or ""
// when the next segment is another slot or the template ends.
func nextLiteral(segs []segment, i int) string {
	if i+1 < len(segs) && segs[i+1].name == "" {
		return segs[i+1].literal
	}
	return ""
}
