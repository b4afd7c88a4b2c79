// Package diagnostic provides the error and result model shared by the
// schema interpreter: ParseError (§3.2's tagged error variants),
// ParseResult's Success/Warning/Failure tri-state, and the Options and
// Parser types the interpreter compiles against.
//
// The package is a leaf: it depends only on internal/ast (for the node
// references a Type/Transform error carries) and the standard library,
// the same posture the teacher's internal/diagnostic package has with
// respect to internal/position.
package diagnostic

import (
	"fmt"

	"github.com/shapelang/shapecore/internal/ast"
)

// ErrorKind tags the closed set of ParseError variants from spec §3.2.
type ErrorKind int

const (
	KindType ErrorKind = iota
	KindMissing
	KindUnexpected
	KindEqual
	KindTransform
	KindIndex
	KindKey
	KindMember
)

func (k ErrorKind) String() string {
	switch k {
	case KindType:
		return "Type"
	case KindMissing:
		return "Missing"
	case KindUnexpected:
		return "Unexpected"
	case KindEqual:
		return "Equal"
	case KindTransform:
		return "Transform"
	case KindIndex:
		return "Index"
	case KindKey:
		return "Key"
	case KindMember:
		return "Member"
	default:
		return "unknown"
	}
}

// ParseError is one node of the error tree described in spec §3.2.
// Only the fields relevant to Kind are populated; callers should
// switch on Kind before reading the payload fields, mirroring the
// exhaustive-match discipline the interpreter itself follows.
type ParseError struct {
	Kind ErrorKind

	// KindType, KindTransform (From side)
	Expected ast.Node
	// KindTransform (To side)
	ExpectedTo ast.Node
	// KindType, KindUnexpected, KindEqual, KindTransform
	Actual interface{}
	// KindEqual
	ExpectedValue ast.LiteralValue

	// KindIndex
	Index int
	// KindKey
	Key ast.PropertyKey

	// KindIndex, KindKey, KindMember: nested errors. Always non-empty.
	Children []ParseError
}

// Type reports a value that failed a primitive/shape check.
func Type(node ast.Node, actual interface{}) ParseError {
	return ParseError{Kind: KindType, Expected: node, Actual: actual}
}

// Missing reports a required element or key that was absent.
func Missing() ParseError { return ParseError{Kind: KindMissing} }

// Unexpected reports an extra element or key that is not permitted.
func Unexpected(actual interface{}) ParseError {
	return ParseError{Kind: KindUnexpected, Actual: actual}
}

// Equal reports a literal/symbol value mismatch.
func Equal(expected ast.LiteralValue, actual interface{}) ParseError {
	return ParseError{Kind: KindEqual, ExpectedValue: expected, Actual: actual}
}

// TransformError reports a rejected transform step.
func TransformError(from, to ast.Node, actual interface{}) ParseError {
	return ParseError{Kind: KindTransform, Expected: from, ExpectedTo: to, Actual: actual}
}

// Index wraps nested errors under array index i. errs must be non-empty.
func Index(i int, errs []ParseError) ParseError {
	mustNonEmpty("Index", errs)
	return ParseError{Kind: KindIndex, Index: i, Children: errs}
}

// Key wraps nested errors under object key k. errs must be non-empty.
func Key(k ast.PropertyKey, errs []ParseError) ParseError {
	mustNonEmpty("Key", errs)
	return ParseError{Kind: KindKey, Key: k, Children: errs}
}

// Member wraps nested errors from one union branch. errs must be non-empty.
func Member(errs []ParseError) ParseError {
	mustNonEmpty("Member", errs)
	return ParseError{Kind: KindMember, Children: errs}
}

func mustNonEmpty(who string, errs []ParseError) {
	if len(errs) == 0 {
		ast.Panicf(ast.CategoryConstruction, "EMPTY_ERROR_LIST", "%s requires a non-empty error list", who)
	}
}

// String renders a single error node without descending into children
// (use Render in render.go for the full tree).
func (e ParseError) String() string {
	switch e.Kind {
	case KindType:
		return fmt.Sprintf("expected %s, got %v", e.Expected.String(), e.Actual)
	case KindMissing:
		return "is missing"
	case KindUnexpected:
		return fmt.Sprintf("is unexpected, got %v", e.Actual)
	case KindEqual:
		return fmt.Sprintf("expected %v, got %v", e.ExpectedValue, e.Actual)
	case KindTransform:
		return fmt.Sprintf("transform from %s to %s rejected %v", e.Expected.String(), e.ExpectedTo.String(), e.Actual)
	case KindIndex:
		return fmt.Sprintf("at index %d", e.Index)
	case KindKey:
		return fmt.Sprintf("at key %q", e.Key.String())
	case KindMember:
		return "union member"
	default:
		return "unknown error"
	}
}

// CountUnexpected counts every KindUnexpected error reachable anywhere
// in errs, used by the interpreter's union best-branch heuristic
// (spec §4.4: "preferring the candidate with the fewest
// unexpected-key/index diagnostics").
func CountUnexpected(errs []ParseError) int {
	n := 0
	for _, e := range errs {
		if e.Kind == KindUnexpected {
			n++
		}
		n += CountUnexpected(e.Children)
	}
	return n
}

// ResultKind tags the three-state ParseResult shape from spec §3.2.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultWarning
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "Success"
	case ResultWarning:
		return "Warning"
	case ResultFailure:
		return "Failure"
	default:
		return "unknown"
	}
}

// Result is a ParseResult<A>: Success(value), Warning(errors, value),
// or Failure(errors). Errors is always non-empty for Warning/Failure.
type Result struct {
	Kind   ResultKind
	Value  interface{}
	Errors []ParseError
}

// Succeed builds a Success result.
func Succeed(value interface{}) Result {
	return Result{Kind: ResultSuccess, Value: value}
}

// Warn builds a Warning result. errs must be non-empty.
func Warn(errs []ParseError, value interface{}) Result {
	mustNonEmpty("Warning", errs)
	return Result{Kind: ResultWarning, Value: value, Errors: errs}
}

// Fail builds a Failure result. errs must be non-empty.
func Fail(errs []ParseError) Result {
	mustNonEmpty("Failure", errs)
	return Result{Kind: ResultFailure, Errors: errs}
}

// IsUsable reports whether a value is available (Success or Warning) —
// the left-hand side of the guard/decode equivalence in spec §8.
func (r Result) IsUsable() bool { return r.Kind == ResultSuccess || r.Kind == ResultWarning }

// IsFailure reports whether the result carries no value.
func (r Result) IsFailure() bool { return r.Kind == ResultFailure }

// String renders a compact, single-line summary.
func (r Result) String() string {
	switch r.Kind {
	case ResultSuccess:
		return fmt.Sprintf("Success(%v)", r.Value)
	case ResultWarning:
		return fmt.Sprintf("Warning(%d error(s), %v)", len(r.Errors), r.Value)
	case ResultFailure:
		return fmt.Sprintf("Failure(%d error(s))", len(r.Errors))
	default:
		return "unknown result"
	}
}

// Direction selects which of the three interpretations (§4.2) a
// compiled Parser performs.
type Direction int

const (
	Decoder Direction = iota
	Guard
	Encoder
)

func (d Direction) String() string {
	switch d {
	case Decoder:
		return "decoder"
	case Guard:
		return "guard"
	case Encoder:
		return "encoder"
	default:
		return "unknown"
	}
}

// Options controls per-call parse behavior (spec §4.3).
type Options struct {
	// IsUnexpectedAllowed demotes Unexpected to a warning instead of a
	// fatal error, and keeps the unexpected element/key in the output.
	IsUnexpectedAllowed bool
	// AllErrors accumulates every error instead of bailing at the
	// first fatal one.
	AllErrors bool

	// TentativeUnexpected is set internally by the union interpreter
	// (spec §4.4) while trial-parsing a member to pick the best match:
	// it demotes Unexpected the same way IsUnexpectedAllowed does, but
	// the unexpected element/key is dropped from the output rather
	// than kept, since the caller never actually opted in to allowing
	// it. Public Option constructors never set this field.
	TentativeUnexpected bool
}

// Parser is the compiled closure every AST node is interpreted into:
// "(input, options) → ParseResult" from the glossary.
type Parser func(input interface{}, opts Options) Result
