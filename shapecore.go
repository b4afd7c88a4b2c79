// Package shapecore implements the six public operations spec.md §6
// describes over a schema AST: decode, decodeOrThrow, guard, asserts,
// encode, and encodeOrThrow. Each compiles its schema once, via
// internal/interpret, into a reusable Parser closure and wraps it with
// the direction and throw/no-throw behavior the operation name
// promises.
package shapecore

import (
	"fmt"

	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
	"github.com/shapelang/shapecore/internal/hooks"
	"github.com/shapelang/shapecore/internal/interpret"
)

// Schema is an alias for the AST node every operation below compiles.
// Schemas are built with the constructors in internal/ast and are
// immutable once constructed, so a single Schema value may be handed
// to Decode, Guard, and Encode alike.
type Schema = ast.Node

// Result is a decode/encode outcome: Success(value), Warning(errors,
// value), or Failure(errors). spec.md §6 treats this shape as part of
// the public contract, so callers may pattern-match on Kind directly.
type Result = diagnostic.Result

// ParseError is one node of a Result's error tree.
type ParseError = diagnostic.ParseError

// CountUnexpected counts every Unexpected diagnostic reachable
// anywhere in errs. Exposed publicly per spec.md §6's "consumers may
// pattern-match" note on the ParseError shape.
func CountUnexpected(errs []ParseError) int { return diagnostic.CountUnexpected(errs) }

// Render renders a ParseError list as a human-readable, multi-line
// summary; the OrThrow operations use it to build ValidationError's
// message.
func Render(errs []ParseError) string { return diagnostic.Render(errs) }

// Hooks is the process-wide TypeAlias override registry every
// compiled schema consults (internal/hooks). Register/RegisterVersioned
// are exposed directly from that package; schema construction code
// should call them before a schema is ever passed to Decode/Guard/
// Encode, per the registry's set-once-per-node contract.
var (
	RegisterHook          = hooks.Register
	RegisterVersionedHook = hooks.RegisterVersioned
	SetHookVersion        = hooks.SetVersion
)

// ValidationError is the error the OrThrow/Asserts operations panic
// with on a Failure result, carrying the full diagnostic tree so a
// recover()ing caller can still inspect individual errors instead of
// only the rendered string.
type ValidationError struct {
	Errors []ParseError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("shapecore: validation failed\n%s", diagnostic.Render(e.Errors))
}

// Decode compiles schema for the decoder direction and returns a
// parser from raw input to a ParseResult. spec.md §6: decode(schema)(input, opts).
func Decode(schema Schema) func(input interface{}, opts ...Option) Result {
	parser := interpret.Compile(diagnostic.Decoder, schema)
	return func(input interface{}, opts ...Option) Result {
		return parser(input, buildOptions(opts))
	}
}

// DecodeOrThrow is Decode, except it returns the decoded value
// directly and panics with a *ValidationError on Failure.
func DecodeOrThrow(schema Schema) func(input interface{}, opts ...Option) interface{} {
	decode := Decode(schema)
	return func(input interface{}, opts ...Option) interface{} {
		res := decode(input, opts...)
		if res.IsFailure() {
			panic(&ValidationError{Errors: res.Errors})
		}
		return res.Value
	}
}

// Guard compiles schema for the guard direction and returns a
// membership test: true iff the guard-direction parse is Success or
// Warning. This agrees with Decode for every node kind except
// Transform, which the guard checks against its To side only, while
// Decode parses its From side.
func Guard(schema Schema) func(input interface{}, opts ...Option) bool {
	parser := interpret.Compile(diagnostic.Guard, schema)
	return func(input interface{}, opts ...Option) bool {
		return parser(input, buildOptions(opts)).IsUsable()
	}
}

// Asserts compiles schema for the guard direction and returns a
// function that panics with a *ValidationError if input doesn't match,
// and otherwise does nothing — the Go rendering of spec.md's `asserts
// u is A` (a value-level type assertion with no return value).
func Asserts(schema Schema) func(input interface{}, opts ...Option) {
	parser := interpret.Compile(diagnostic.Guard, schema)
	return func(input interface{}, opts ...Option) {
		res := parser(input, buildOptions(opts))
		if res.IsFailure() {
			panic(&ValidationError{Errors: res.Errors})
		}
	}
}

// Encode compiles schema for the encoder direction and returns a
// parser from a validated value back to raw output.
func Encode(schema Schema) func(value interface{}, opts ...Option) Result {
	parser := interpret.Compile(diagnostic.Encoder, schema)
	return func(value interface{}, opts ...Option) Result {
		return parser(value, buildOptions(opts))
	}
}

// EncodeOrThrow is Encode, except it returns the encoded raw value
// directly and panics with a *ValidationError on Failure.
func EncodeOrThrow(schema Schema) func(value interface{}, opts ...Option) interface{} {
	encode := Encode(schema)
	return func(value interface{}, opts ...Option) interface{} {
		res := encode(value, opts...)
		if res.IsFailure() {
			panic(&ValidationError{Errors: res.Errors})
		}
		return res.Value
	}
}
