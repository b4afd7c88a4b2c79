package interpret

import (
	"regexp"
	"sort"

	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
)

// Record values only ever carry string keys in this engine's data
// model (map[string]interface{} mirrors the JSON object it was decoded
// from), so a symbol-keyed PropertySignature can never be satisfied by
// an input and a symbol-keyed IndexSignature can never match any
// input key. Both are accepted at construction time for AST
// completeness but are permanently Missing/non-matching at parse time;
// see DESIGN.md.
type indexEntry struct {
	keyKind     ast.IndexSignatureKeyKind
	templateRe  *regexp.Regexp
	paramParser diagnostic.Parser
	valueParser diagnostic.Parser
}

func (c *compiler) VisitTypeLiteral(n *ast.TypeLiteral) interface{} {
	propParsers := make([]diagnostic.Parser, len(n.PropertySignatures))
	for i, p := range n.PropertySignatures {
		propParsers[i] = c.compile(p.Type)
	}

	entries := make([]indexEntry, len(n.IndexSignatures))
	for i, idx := range n.IndexSignatures {
		e := indexEntry{
			keyKind:     idx.KeyKind(),
			paramParser: c.compile(idx.Parameter),
			valueParser: c.compile(idx.Type),
		}
		if tl, ok := idx.Parameter.(*ast.TemplateLiteral); ok {
			e.templateRe = buildTemplateRegexp(tl)
		}
		entries[i] = e
	}

	return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		obj, ok := input.(map[string]interface{})
		if !ok {
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(unknownRecordNode, input)})
		}

		var errs []diagnostic.ParseError
		out := make(map[string]interface{}, len(obj))
		hasFatal := false
		consumed := make(map[string]bool, len(n.PropertySignatures))

		for i, p := range n.PropertySignatures {
			if p.Name.IsSymbol() {
				// Never present in a string-keyed input; see the type
				// comment on indexEntry above.
				if p.IsOptional {
					continue
				}
				errs = append(errs, diagnostic.Key(p.Name, []diagnostic.ParseError{diagnostic.Missing()}))
				hasFatal = true
				if !opts.AllErrors {
					return finalizeRecord(errs, hasFatal, nil)
				}
				continue
			}

			key := p.Name.String()
			consumed[key] = true
			v, present := obj[key]
			if !present {
				if p.IsOptional {
					continue
				}
				errs = append(errs, diagnostic.Key(p.Name, []diagnostic.ParseError{diagnostic.Missing()}))
				hasFatal = true
				if !opts.AllErrors {
					return finalizeRecord(errs, hasFatal, nil)
				}
				continue
			}

			res := propParsers[i](v, opts)
			switch res.Kind {
			case diagnostic.ResultSuccess:
				out[key] = res.Value
			case diagnostic.ResultWarning:
				errs = append(errs, diagnostic.Key(p.Name, res.Errors))
				out[key] = res.Value
			default:
				errs = append(errs, diagnostic.Key(p.Name, res.Errors))
				hasFatal = true
				if !opts.AllErrors {
					return finalizeRecord(errs, hasFatal, nil)
				}
			}
		}

		leftoverKeys := make([]string, 0, len(obj))
		for k := range obj {
			if !consumed[k] {
				leftoverKeys = append(leftoverKeys, k)
			}
		}
		sort.Strings(leftoverKeys)

		for _, k := range leftoverKeys {
			v := obj[k]
			entry, matched := matchIndexEntry(entries, k)
			if !matched {
				errs = append(errs, diagnostic.Key(ast.StringKey(k), []diagnostic.ParseError{diagnostic.Unexpected(v)}))
				switch {
				case opts.IsUnexpectedAllowed:
					out[k] = v
				case opts.TentativeUnexpected:
					// dropped from output; the caller never actually
					// allowed this key, so it must not survive beyond
					// the union trial that produced this warning.
				default:
					hasFatal = true
					if !opts.AllErrors {
						return finalizeRecord(errs, hasFatal, nil)
					}
				}
				continue
			}

			keyRes := entry.paramParser(k, opts)
			valRes := entry.valueParser(v, opts)

			var children []diagnostic.ParseError
			fatalHere := false
			if keyRes.Kind != diagnostic.ResultSuccess {
				children = append(children, keyRes.Errors...)
				fatalHere = fatalHere || keyRes.Kind == diagnostic.ResultFailure
			}
			if valRes.Kind != diagnostic.ResultSuccess {
				children = append(children, valRes.Errors...)
				fatalHere = fatalHere || valRes.Kind == diagnostic.ResultFailure
			}
			if len(children) > 0 {
				errs = append(errs, diagnostic.Key(ast.StringKey(k), children))
			}
			if fatalHere {
				hasFatal = true
				if !opts.AllErrors {
					return finalizeRecord(errs, hasFatal, nil)
				}
				continue
			}
			out[k] = valRes.Value
		}

		return finalizeRecord(errs, hasFatal, out)
	}
}

func matchIndexEntry(entries []indexEntry, key string) (indexEntry, bool) {
	for _, e := range entries {
		switch e.keyKind {
		case ast.IndexKeySymbol:
			continue
		case ast.IndexKeyTemplateLiteral:
			if e.templateRe != nil && e.templateRe.MatchString(key) {
				return e, true
			}
		default: // IndexKeyString
			return e, true
		}
	}
	return indexEntry{}, false
}

func finalizeRecord(errs []diagnostic.ParseError, hasFatal bool, out map[string]interface{}) diagnostic.Result {
	if hasFatal {
		return diagnostic.Fail(errs)
	}
	var value interface{} = out
	if len(errs) == 0 {
		return diagnostic.Succeed(value)
	}
	return diagnostic.Warn(errs, value)
}
