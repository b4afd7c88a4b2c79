package interpret

import (
	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
)

// VisitTuple implements spec §4.4's positional-sequence algorithm:
// fixed elements first (missing optional elements are simply skipped),
// then — if a rest region is present — the variadic middle followed by
// the fixed post-rest tail, then — if no rest region is present — any
// extra input elements are Unexpected. Every diagnostic is wrapped at
// its absolute input index regardless of which region produced it, so
// callers never need to know the tuple had a rest region at all.
func (c *compiler) VisitTuple(n *ast.Tuple) interface{} {
	elementParsers := make([]diagnostic.Parser, len(n.Elements))
	for i, e := range n.Elements {
		elementParsers[i] = c.compile(e.Type)
	}

	var restHeadParser diagnostic.Parser
	var restTailParsers []diagnostic.Parser
	if n.Rest != nil {
		restHeadParser = c.compile(n.RestHead())
		tail := n.RestTail()
		restTailParsers = make([]diagnostic.Parser, len(tail))
		for i, t := range tail {
			restTailParsers[i] = c.compile(t)
		}
	}

	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		arr, ok := input.([]interface{})
		if !ok {
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(unknownArrayNode, input)})
		}

		var errs []diagnostic.ParseError
		out := make([]interface{}, 0, len(arr))
		hasFatal := false

		at := func(i int) (interface{}, bool) {
			if i < 0 || i >= len(arr) {
				return nil, false
			}
			return arr[i], true
		}

		// recordResult appends the diagnostics/value for one index and
		// reports whether the caller should stop processing further
		// indices (a fatal error without AllErrors set).
		recordResult := func(i int, res diagnostic.Result) bool {
			switch res.Kind {
			case diagnostic.ResultSuccess:
				out = append(out, res.Value)
				return false
			case diagnostic.ResultWarning:
				errs = append(errs, diagnostic.Index(i, res.Errors))
				out = append(out, res.Value)
				return false
			default:
				errs = append(errs, diagnostic.Index(i, res.Errors))
				hasFatal = true
				return !opts.AllErrors
			}
		}

		recordMissing := func(i int) bool {
			errs = append(errs, diagnostic.Index(i, []diagnostic.ParseError{diagnostic.Missing()}))
			hasFatal = true
			return !opts.AllErrors
		}

		recordUnexpected := func(i int, value interface{}) bool {
			errs = append(errs, diagnostic.Index(i, []diagnostic.ParseError{diagnostic.Unexpected(value)}))
			switch {
			case opts.IsUnexpectedAllowed:
				out = append(out, value)
				return false
			case opts.TentativeUnexpected:
				return false
			default:
				hasFatal = true
				return !opts.AllErrors
			}
		}

		for i := range n.Elements {
			v, present := at(i)
			if !present {
				if n.Elements[i].IsOptional {
					continue
				}
				if recordMissing(i) {
					return finalizeArray(errs, hasFatal, nil)
				}
				continue
			}
			if recordResult(i, elementParsers[i](v, opts)) {
				return finalizeArray(errs, hasFatal, nil)
			}
		}

		switch {
		case n.Rest != nil:
			restStart := len(n.Elements)
			tailLen := len(restTailParsers)
			// When the input is too short to hold even the fixed tail,
			// the variadic region contributes nothing and the tail's
			// absolute indices start right after the fixed elements —
			// not at len(arr)-tailLen, which could be negative or
			// overlap already-consumed fixed-element indices.
			restEnd := len(arr) - tailLen
			if restEnd < restStart {
				restEnd = restStart
			}

			for i := restStart; i < restEnd; i++ {
				v, _ := at(i)
				if recordResult(i, restHeadParser(v, opts)) {
					return finalizeArray(errs, hasFatal, nil)
				}
			}
			for j, tp := range restTailParsers {
				i := restEnd + j
				v, present := at(i)
				if !present {
					if recordMissing(i) {
						return finalizeArray(errs, hasFatal, nil)
					}
					continue
				}
				if recordResult(i, tp(v, opts)) {
					return finalizeArray(errs, hasFatal, nil)
				}
			}

		case len(arr) > len(n.Elements):
			for i := len(n.Elements); i < len(arr); i++ {
				v, _ := at(i)
				if recordUnexpected(i, v) {
					return finalizeArray(errs, hasFatal, nil)
				}
			}
		}

		return finalizeArray(errs, hasFatal, out)
	}
}

func finalizeArray(errs []diagnostic.ParseError, hasFatal bool, out []interface{}) diagnostic.Result {
	if hasFatal {
		return diagnostic.Fail(errs)
	}
	var value interface{} = out
	if len(errs) == 0 {
		return diagnostic.Succeed(value)
	}
	return diagnostic.Warn(errs, value)
}
