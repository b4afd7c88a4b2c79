package ast

import (
	"fmt"
	"runtime"
)

// InvariantCategory classifies the kind of programmer error an
// InvariantViolation reports.
type InvariantCategory string

const (
	CategoryConstruction InvariantCategory = "CONSTRUCTION"
	CategoryCompilation  InvariantCategory = "COMPILATION"
	CategoryRegistry     InvariantCategory = "REGISTRY"
)

// InvariantViolation is the structured panic value used throughout this
// module for programmer errors: a malformed AST passed to a
// constructor, a hook registered twice, an unreachable node kind
// reaching the compiler. It is never used for ParseError — that is a
// non-fatal, accumulating value returned to callers, not panicked.
type InvariantViolation struct {
	Category InvariantCategory
	Code     string
	Message  string
	Caller   string
}

// Error implements the error interface so an InvariantViolation can be
// passed to fmt verbs and recovered/inspected uniformly.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// NewInvariantViolation builds an InvariantViolation, recording the
// function two frames above it: when built through Panicf, that is the
// function that called Panicf, i.e. the one that detected the
// violation.
func NewInvariantViolation(category InvariantCategory, code, message string) *InvariantViolation {
	pc, _, _, ok := runtime.Caller(2)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}
	return &InvariantViolation{Category: category, Code: code, Message: message, Caller: caller}
}

// Panicf constructs an InvariantViolation from a category, code, and
// printf-style message and panics with it. Used by the invariant
// checks in the ast, diagnostic, and hooks packages and by the
// interpreter's dispatch; the interpreter's lazy box (memo.go) and
// template-literal placeholder checks panic with plain strings instead.
func Panicf(category InvariantCategory, code, format string, args ...interface{}) {
	panic(NewInvariantViolation(category, code, fmt.Sprintf(format, args...)))
}
