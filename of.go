package shapecore

import (
	"fmt"

	"github.com/shapelang/shapecore/internal/ast"
)

// Of is a thin generic convenience wrapper around a dynamically-typed
// Schema, letting a call site that already knows its target Go type
// skip the res.Value.(A) assertion Decode/Encode otherwise leave to
// the caller. It changes no interpreter semantics — Decode/Guard/
// Encode in shapecore.go remain the actual public contract; Of just type-asserts
// their results.
type Of[A any] struct {
	AST ast.Node
}

// Decode decodes input and, on a usable result, asserts its value is
// an A. A Failure result returns the zero value of A alongside the
// Result so the caller can still inspect res.Errors.
func (o Of[A]) Decode(input interface{}, opts ...Option) (A, Result) {
	res := Decode(o.AST)(input, opts...)
	var zero A
	if res.IsFailure() {
		return zero, res
	}
	v, ok := res.Value.(A)
	if !ok {
		panic(fmt.Sprintf("shapecore: decoded value is %T, want %T", res.Value, zero))
	}
	return v, res
}

// DecodeOrThrow decodes input, panicking with a *ValidationError on
// Failure, and asserts the decoded value is an A.
func (o Of[A]) DecodeOrThrow(input interface{}, opts ...Option) A {
	raw := DecodeOrThrow(o.AST)(input, opts...)
	v, ok := raw.(A)
	if !ok {
		var zero A
		panic(fmt.Sprintf("shapecore: decoded value is %T, want %T", raw, zero))
	}
	return v
}

// Guard reports whether input matches the wrapped schema.
func (o Of[A]) Guard(input interface{}, opts ...Option) bool {
	return Guard(o.AST)(input, opts...)
}

// Asserts panics with a *ValidationError if input doesn't match the
// wrapped schema.
func (o Of[A]) Asserts(input interface{}, opts ...Option) {
	Asserts(o.AST)(input, opts...)
}

// Encode encodes a validated A back to raw output.
func (o Of[A]) Encode(value A, opts ...Option) Result {
	return Encode(o.AST)(value, opts...)
}

// EncodeOrThrow encodes a validated A, panicking with a
// *ValidationError on Failure.
func (o Of[A]) EncodeOrThrow(value A, opts ...Option) interface{} {
	return EncodeOrThrow(o.AST)(value, opts...)
}
