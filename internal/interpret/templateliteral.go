package interpret

import (
	"fmt"
	"regexp"

	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
)

// buildTemplateRegexp compiles a TemplateLiteral's spans into an
// anchored pattern: literal spans are escaped verbatim and placeholder
// spans become the regex fragment for their kind. Only Keyword
// (string/number/boolean/bigint) and Literal placeholders are
// supported, matching the restriction documented on ast.TemplateSpan;
// anything else is a schema-construction bug and panics here, at
// compile time, rather than at every parse call.
func buildTemplateRegexp(t *ast.TemplateLiteral) *regexp.Regexp {
	pattern := "^"
	for _, span := range t.Spans {
		if span.Placeholder == nil {
			pattern += regexp.QuoteMeta(span.Literal)
			continue
		}
		pattern += placeholderPattern(span.Placeholder)
	}
	pattern += "$"
	return regexp.MustCompile(pattern)
}

func placeholderPattern(node ast.Node) string {
	switch p := node.(type) {
	case *ast.Keyword:
		switch p.Kind_ {
		case ast.StringKeyword:
			return "(?:.*)"
		case ast.NumberKeyword:
			return `(?:[+-]?\d+(?:\.\d+)?)`
		case ast.BooleanKeyword:
			return "(?:true|false)"
		case ast.BigIntKeyword:
			return `(?:[+-]?\d+)`
		default:
			panic(fmt.Sprintf("interpret: template literal placeholder keyword %v is not supported", p.Kind_))
		}
	case *ast.Literal:
		return regexp.QuoteMeta(fmt.Sprintf("%v", p.Value))
	default:
		panic(fmt.Sprintf("interpret: template literal placeholder must be a Keyword or Literal, got %T", node))
	}
}

func (c *compiler) VisitTemplateLiteral(n *ast.TemplateLiteral) interface{} {
	re := buildTemplateRegexp(n)
	return diagnostic.Parser(func(input interface{}, opts diagnostic.Options) diagnostic.Result {
		s, ok := input.(string)
		if !ok {
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(ast.NewKeyword(ast.StringKeyword), input)})
		}
		if !re.MatchString(s) {
			return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(n, input)})
		}
		return diagnostic.Succeed(s)
	})
}
