// Package interpret compiles a schema AST node into a Parser closure
// for one of the three interpretation directions (decode, guard,
// encode), the way the teacher compiler's internal/hir package lowers
// a typed AST into a single executable form — except here the "lowered
// form" is a Go closure, not a byte-coded instruction stream, since the
// engine never leaves the process it runs in.
package interpret

import (
	"math"
	"math/big"
	"strings"

	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
	"github.com/shapelang/shapecore/internal/hooks"
)

// compiler holds the state for one top-level Compile call: the fixed
// direction, the hook registry to consult for TypeAlias nodes, and a
// cache that both avoids recompiling shared subschemas and gives Lazy
// nodes a place to park their fix-point box.
type compiler struct {
	direction diagnostic.Direction
	registry  *hooks.Registry
	cache     map[ast.Node]diagnostic.Parser
}

// Compile compiles node into a Parser for direction, resolving
// TypeAlias overrides against the process-wide hook registry.
func Compile(direction diagnostic.Direction, node ast.Node) diagnostic.Parser {
	return CompileWithRegistry(direction, node, nil)
}

// CompileWithRegistry compiles node using registry for TypeAlias hook
// lookups instead of the process-wide registry. A nil registry falls
// back to the process-wide one (hooks.Lookup) — tests that want an
// isolated hook table should build their own *hooks.Registry and pass
// it here rather than mutating global state.
func CompileWithRegistry(direction diagnostic.Direction, node ast.Node, registry *hooks.Registry) diagnostic.Parser {
	c := &compiler{direction: direction, registry: registry, cache: make(map[ast.Node]diagnostic.Parser)}
	return c.compile(node)
}

func (c *compiler) lookupHook(alias *ast.TypeAlias) (hooks.Handler, bool) {
	if c.registry != nil {
		return c.registry.Lookup(alias)
	}
	return hooks.Lookup(alias)
}

// var _ ast.Visitor = (*compiler)(nil) pins *compiler to the Visitor
// interface at compile time: adding a node kind to ast.Visitor without
// giving *compiler a matching VisitX method fails the build right
// here, instead of panicking at runtime the first time that kind is
// compiled.
var _ ast.Visitor = (*compiler)(nil)

// compile dispatches node to its VisitX method through node.Accept,
// the same double-dispatch the teacher's internal/ast/visitor.go uses
// for its own AST walks — an exhaustiveness check the Go compiler
// enforces, rather than the unhandled-case panic a type switch would
// need as its fallback. Lazy is intercepted before Accept because its
// fix-point box has to be installed in the cache before the node's own
// body is compiled, not after Accept already returned a Parser.
func (c *compiler) compile(node ast.Node) diagnostic.Parser {
	if p, ok := c.cache[node]; ok {
		return p
	}

	if lazy, ok := node.(*ast.Lazy); ok {
		return c.compileLazy(lazy)
	}

	raw := node.Accept(c)
	parser, ok := raw.(diagnostic.Parser)
	if !ok {
		ast.Panicf(ast.CategoryCompilation, "BAD_VISIT_RETURN_TYPE", "Accept(%T) returned %T, want diagnostic.Parser", node, raw)
	}
	c.cache[node] = parser
	return parser
}

func (c *compiler) compileLazy(n *ast.Lazy) diagnostic.Parser {
	if p, ok := c.cache[n]; ok {
		return p
	}
	box := &lazyBox{}
	forwarding := diagnostic.Parser(box.forward)
	c.cache[n] = forwarding

	inner := n.F()
	box.resolve(c.compile(inner))
	return forwarding
}

// VisitLazy exists only so *compiler satisfies ast.Visitor in full;
// compile intercepts every *ast.Lazy before Accept is ever called, so
// this method is never actually invoked.
func (c *compiler) VisitLazy(n *ast.Lazy) interface{} {
	return c.compileLazy(n)
}

func (c *compiler) VisitTypeAlias(n *ast.TypeAlias) interface{} {
	if handler, ok := c.lookupHook(n); ok {
		children := make([]diagnostic.Parser, len(n.TypeParameters))
		for i, tp := range n.TypeParameters {
			children[i] = c.compile(tp)
		}
		return handler(children...)
	}
	return c.compile(n.Type)
}

func (c *compiler) VisitKeyword(n *ast.Keyword) interface{} {
	switch n.Kind_ {
	case ast.UnknownKeyword, ast.AnyKeyword:
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			return diagnostic.Succeed(input)
		}
	case ast.NeverKeyword:
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(n, input)})
		}
	case ast.UndefinedKeyword, ast.VoidKeyword:
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			if input == nil {
				return diagnostic.Succeed(input)
			}
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(n, input)})
		}
	case ast.StringKeyword:
		return primitiveCheck(n, func(v interface{}) bool { _, ok := v.(string); return ok })
	case ast.NumberKeyword:
		return primitiveCheck(n, func(v interface{}) bool { _, ok := v.(float64); return ok })
	case ast.BooleanKeyword:
		return primitiveCheck(n, func(v interface{}) bool { _, ok := v.(bool); return ok })
	case ast.SymbolKeyword:
		return primitiveCheck(n, func(v interface{}) bool { _, ok := v.(*ast.Symbol); return ok })
	case ast.ObjectKeyword:
		return primitiveCheck(n, isObjectLike)
	case ast.BigIntKeyword:
		return c.compileBigInt(n)
	default:
		ast.Panicf(ast.CategoryCompilation, "UNHANDLED_KEYWORD_KIND", "unhandled keyword kind %v", n.Kind_)
		return nil
	}
}

func primitiveCheck(node ast.Node, match func(interface{}) bool) diagnostic.Parser {
	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		if match(input) {
			return diagnostic.Succeed(input)
		}
		return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(node, input)})
	}
}

func isObjectLike(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	default:
		return false
	}
}

// compileBigInt implements spec §4.4's BigInt coercion rule: a *big.Int
// input always matches; string/float64/bool inputs are coerced; any
// other dynamic type is a bare Type error, while a correctly-kinded
// value that fails to coerce (a non-numeric string, a non-integral
// float) is a TransformError instead — the kind check runs first, so a
// wrong-kind input is never reported as a failed transform.
func (c *compiler) compileBigInt(n *ast.Keyword) diagnostic.Parser {
	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		switch v := input.(type) {
		case *big.Int:
			return diagnostic.Succeed(v)
		case string:
			bi, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
			if !ok {
				return diagnostic.Fail([]diagnostic.ParseError{diagnostic.TransformError(primitiveNode, n, input)})
			}
			return diagnostic.Succeed(bi)
		case float64:
			if v != math.Trunc(v) {
				return diagnostic.Fail([]diagnostic.ParseError{diagnostic.TransformError(primitiveNode, n, input)})
			}
			return diagnostic.Succeed(new(big.Int).SetInt64(int64(v)))
		case bool:
			if v {
				return diagnostic.Succeed(big.NewInt(1))
			}
			return diagnostic.Succeed(big.NewInt(0))
		default:
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(n, input)})
		}
	}
}

func (c *compiler) VisitLiteral(n *ast.Literal) interface{} {
	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		if ast.LiteralsEqual(n.Value, input) {
			return diagnostic.Succeed(input)
		}
		return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Equal(n.Value, input)})
	}
}

func (c *compiler) VisitUniqueSymbol(n *ast.UniqueSymbolNode) interface{} {
	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		if sym, ok := input.(*ast.Symbol); ok && sym == n.Symbol {
			return diagnostic.Succeed(input)
		}
		return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Equal(n.Symbol, input)})
	}
}

func (c *compiler) VisitEnums(n *ast.Enums) interface{} {
	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		for _, m := range n.Members {
			if ast.LiteralsEqual(m.Value, input) {
				return diagnostic.Succeed(input)
			}
		}
		return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(n, input)})
	}
}

// chainDecode is the shared "apply a value-level step after a from
// parse" logic used by Refinement and Transform's decoder leg: a
// Failure passes straight through; a Success hands the value to decode
// outright; a Warning hands the value to decode and merges the earlier
// warnings with whatever decode itself produces, since the earlier
// warnings describe a value that did, after all, get used.
func chainDecode(fromResult diagnostic.Result, decode func(value interface{}) diagnostic.Result) diagnostic.Result {
	switch fromResult.Kind {
	case diagnostic.ResultFailure:
		return fromResult
	case diagnostic.ResultSuccess:
		return decode(fromResult.Value)
	case diagnostic.ResultWarning:
		r := decode(fromResult.Value)
		switch r.Kind {
		case diagnostic.ResultSuccess:
			return diagnostic.Warn(fromResult.Errors, r.Value)
		case diagnostic.ResultWarning:
			return diagnostic.Warn(concatErrors(fromResult.Errors, r.Errors), r.Value)
		default:
			return diagnostic.Fail(concatErrors(fromResult.Errors, r.Errors))
		}
	default:
		ast.Panicf(ast.CategoryCompilation, "UNHANDLED_RESULT_KIND", "unknown ParseResult kind %v", fromResult.Kind)
		return diagnostic.Result{}
	}
}

func concatErrors(a, b []diagnostic.ParseError) []diagnostic.ParseError {
	out := make([]diagnostic.ParseError, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func asResult(label string, raw interface{}) diagnostic.Result {
	res, ok := raw.(diagnostic.Result)
	if !ok {
		ast.Panicf(ast.CategoryCompilation, "BAD_HANDLER_RETURN_TYPE", "%s returned %T, want diagnostic.Result", label, raw)
	}
	return res
}

func (c *compiler) VisitRefinement(n *ast.Refinement) interface{} {
	from := c.compile(n.From)
	label := n.String()
	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		fromResult := from(input, opts)
		return chainDecode(fromResult, func(value interface{}) diagnostic.Result {
			return asResult(label+".Decode", n.Decode(value))
		})
	}
}

// VisitTransform implements spec §4.2/§4.4's direction-sensitive
// behavior: a decoder parses from then applies decode; an encoder
// applies encode then re-validates the result against from (so every
// encoded value is guaranteed parseable by its own schema); a guard
// ignores the transform entirely and simply checks the shape of to,
// since guard never needs to cross the encode/decode boundary.
func (c *compiler) VisitTransform(n *ast.Transform) interface{} {
	label := n.String()

	switch c.direction {
	case diagnostic.Guard:
		return c.compile(n.To)

	case diagnostic.Decoder:
		from := c.compile(n.From)
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			fromResult := from(input, opts)
			return chainDecode(fromResult, func(value interface{}) diagnostic.Result {
				return asResult(label+".Decode", n.Decode(value, opts))
			})
		}

	case diagnostic.Encoder:
		from := c.compile(n.From)
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			encResult := asResult(label+".Encode", n.Encode(input, opts))
			return chainDecode(encResult, func(value interface{}) diagnostic.Result {
				return from(value, opts)
			})
		}

	default:
		ast.Panicf(ast.CategoryCompilation, "UNHANDLED_DIRECTION", "unknown direction %v", c.direction)
		return nil
	}
}
