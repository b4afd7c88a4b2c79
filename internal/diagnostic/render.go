package diagnostic

import (
	"fmt"
	"strings"
)

// Render renders an error list as a multi-line, indented tree plus a
// trailing summary line, in the shape of the teacher compiler's
// DiagnosticEngine.FormatDiagnostics/formatSingleDiagnostic (one
// header line per node, indented detail lines, a count-based
// summary) — but keyed on structural path (Index/Key/Member) instead
// of file:line:column, since the engine validates in-memory values,
// not parsed source text.
//
// This is the "pretty-rendered multi-line summary" spec §4.6/§7
// require of decodeOrThrow/encodeOrThrow/asserts; it is deliberately
// not part of the interpreter package, keeping that package scoped to
// exactly the compilation spec.md describes.
func Render(errs []ParseError) string {
	if len(errs) == 0 {
		return "no errors"
	}

	var b strings.Builder
	for i, e := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		renderNode(&b, e, "")
	}
	b.WriteString(fmt.Sprintf("\n\n%d error(s) total", countLeaves(errs)))
	return b.String()
}

func renderNode(b *strings.Builder, e ParseError, indent string) {
	switch e.Kind {
	case KindIndex:
		b.WriteString(fmt.Sprintf("%s[%d]\n", indent, e.Index))
		renderChildren(b, e.Children, indent+"  ")
	case KindKey:
		b.WriteString(fmt.Sprintf("%s%q\n", indent, e.Key.String()))
		renderChildren(b, e.Children, indent+"  ")
	case KindMember:
		b.WriteString(fmt.Sprintf("%sunion member\n", indent))
		renderChildren(b, e.Children, indent+"  ")
	default:
		b.WriteString(indent + e.String() + "\n")
	}
}

func renderChildren(b *strings.Builder, children []ParseError, indent string) {
	for _, c := range children {
		renderNode(b, c, indent)
	}
}

// countLeaves counts the non-path (Type/Missing/Unexpected/Equal/
// Transform) errors reachable in errs, used for the summary line.
func countLeaves(errs []ParseError) int {
	n := 0
	for _, e := range errs {
		switch e.Kind {
		case KindIndex, KindKey, KindMember:
			n += countLeaves(e.Children)
		default:
			n++
		}
	}
	return n
}
