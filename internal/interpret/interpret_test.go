package interpret

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
	"github.com/shapelang/shapecore/internal/hooks"
)

func decode(node ast.Node) diagnostic.Parser { return Compile(diagnostic.Decoder, node) }

func TestKeywordAlwaysSuccessAndFailure(t *testing.T) {
	unknown := decode(ast.NewKeyword(ast.UnknownKeyword))
	if res := unknown(struct{}{}, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("unknown keyword should always succeed, got %v", res)
	}

	never := decode(ast.NewKeyword(ast.NeverKeyword))
	if res := never("anything", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("never keyword should always fail, got %v", res)
	}
}

func TestKeywordUndefined(t *testing.T) {
	p := decode(ast.NewKeyword(ast.UndefinedKeyword))
	if res := p(nil, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("undefined keyword should accept nil, got %v", res)
	}
	if res := p("x", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("undefined keyword should reject non-nil, got %v", res)
	}
}

func TestKeywordPrimitives(t *testing.T) {
	str := decode(ast.NewKeyword(ast.StringKeyword))
	if res := str("hello", diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("string keyword should accept a string, got %v", res)
	}
	if res := str(1.0, diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("string keyword should reject a number, got %v", res)
	}
}

func TestLiteral(t *testing.T) {
	p := decode(ast.NewLiteral("ok"))
	if res := p("ok", diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("Literal should accept the exact value, got %v", res)
	}
	if res := p("no", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("Literal should reject any other value, got %v", res)
	}
}

func TestBigIntCoercion(t *testing.T) {
	p := decode(ast.NewKeyword(ast.BigIntKeyword))

	tests := []struct {
		name string
		in   interface{}
		kind diagnostic.ResultKind
		errK diagnostic.ErrorKind
	}{
		{"already a *big.Int", big.NewInt(5), diagnostic.ResultSuccess, 0},
		{"valid integer string", "123", diagnostic.ResultSuccess, 0},
		{"integral float", 4.0, diagnostic.ResultSuccess, 0},
		{"true coerces to 1", true, diagnostic.ResultSuccess, 0},
		{"non-numeric string is a Transform error", "abc", diagnostic.ResultFailure, diagnostic.KindTransform},
		{"non-integral float is a Transform error", 1.5, diagnostic.ResultFailure, diagnostic.KindTransform},
		{"wrong dynamic type is a Type error", []interface{}{}, diagnostic.ResultFailure, diagnostic.KindType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p(tt.in, diagnostic.Options{})
			if res.Kind != tt.kind {
				t.Fatalf("got %v, want kind %v", res, tt.kind)
			}
			if tt.kind == diagnostic.ResultFailure && res.Errors[0].Kind != tt.errK {
				t.Errorf("got error kind %v, want %v", res.Errors[0].Kind, tt.errK)
			}
		})
	}
}

func numberTupleSchema() *ast.Tuple {
	return ast.NewTuple(
		[]ast.TupleElement{{Type: ast.NewKeyword(ast.StringKeyword)}},
		[]ast.Node{ast.NewKeyword(ast.NumberKeyword), ast.NewKeyword(ast.BooleanKeyword)},
		false,
	)
}

func TestTupleWithRest(t *testing.T) {
	p := decode(numberTupleSchema())

	t.Run("exact fit", func(t *testing.T) {
		res := p([]interface{}{"x", true}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess {
			t.Fatalf("got %v, want Success", res)
		}
	})

	t.Run("variadic middle absorbs extra numbers", func(t *testing.T) {
		res := p([]interface{}{"x", 1.0, 2.0, 3.0, true}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess {
			t.Fatalf("got %v, want Success", res)
		}
		out := res.Value.([]interface{})
		if len(out) != 5 {
			t.Fatalf("got %d output elements, want 5", len(out))
		}
	})

	t.Run("tail mismatch reports the absolute index", func(t *testing.T) {
		res := p([]interface{}{"x", 1.0}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
		idxErr := res.Errors[0]
		if idxErr.Kind != diagnostic.KindIndex || idxErr.Index != 1 {
			t.Errorf("got %v, want an Index(1, ...) error (1.0 is not the boolean the tail expects)", idxErr)
		}
	})

	t.Run("too short for even the fixed tail reports the right absolute index", func(t *testing.T) {
		res := p([]interface{}{"x"}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
		idxErr := res.Errors[0]
		if idxErr.Kind != diagnostic.KindIndex || idxErr.Index != 1 {
			t.Errorf("got %v, want Index(1, ...) (boolean expected right after the fixed elements)", idxErr)
		}
	})

	t.Run("not an array", func(t *testing.T) {
		res := p("nope", diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
	})
}

func TestTupleUnexpectedExtraElement(t *testing.T) {
	schema := ast.NewTuple([]ast.TupleElement{{Type: ast.NewKeyword(ast.StringKeyword)}}, nil, false)
	p := decode(schema)

	t.Run("fatal by default", func(t *testing.T) {
		res := p([]interface{}{"x", "extra"}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
	})

	t.Run("warning when allowed", func(t *testing.T) {
		res := p([]interface{}{"x", "extra"}, diagnostic.Options{IsUnexpectedAllowed: true})
		if res.Kind != diagnostic.ResultWarning {
			t.Fatalf("got %v, want Warning", res)
		}
		out := res.Value.([]interface{})
		if len(out) != 2 || out[1] != "extra" {
			t.Errorf("got %v, want the extra element preserved in output order", out)
		}
	})
}

func recordSchema() *ast.TypeLiteral {
	return ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("id"), Type: ast.NewKeyword(ast.StringKeyword)},
		{Name: ast.StringKey("nickname"), Type: ast.NewKeyword(ast.StringKeyword), IsOptional: true},
	}, []ast.IndexSignature{
		{Parameter: ast.NewKeyword(ast.StringKeyword), Type: ast.NewKeyword(ast.NumberKeyword)},
	})
}

func TestTypeLiteralOptionalAndIndexSignature(t *testing.T) {
	p := decode(recordSchema())

	t.Run("optional absent is fine", func(t *testing.T) {
		res := p(map[string]interface{}{"id": "a"}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess {
			t.Fatalf("got %v, want Success", res)
		}
	})

	t.Run("index signature accepts extra numeric-valued keys", func(t *testing.T) {
		res := p(map[string]interface{}{"id": "a", "extra": 7.0}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess {
			t.Fatalf("got %v, want Success", res)
		}
		out := res.Value.(map[string]interface{})
		if out["extra"] != 7.0 {
			t.Errorf("got %v, want extra to be passed through", out)
		}
	})

	t.Run("index signature rejects a wrongly-typed extra value", func(t *testing.T) {
		res := p(map[string]interface{}{"id": "a", "extra": "not a number"}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
	})

	t.Run("required key missing", func(t *testing.T) {
		res := p(map[string]interface{}{}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
		if res.Errors[0].Kind != diagnostic.KindKey {
			t.Errorf("got %v, want a Key error", res.Errors[0])
		}
	})

	t.Run("not a record", func(t *testing.T) {
		res := p("nope", diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
	})
}

func TestTypeLiteralUnexpectedKeyWithNoIndexSignature(t *testing.T) {
	schema := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("id"), Type: ast.NewKeyword(ast.StringKeyword)},
	}, nil)
	p := decode(schema)

	res := p(map[string]interface{}{"id": "a", "extra": 1.0}, diagnostic.Options{IsUnexpectedAllowed: true})
	if res.Kind != diagnostic.ResultWarning {
		t.Fatalf("got %v, want Warning", res)
	}
	out := res.Value.(map[string]interface{})
	if out["extra"] != 1.0 {
		t.Errorf("got %v, want the extra key preserved", out)
	}
}

func TestUnionPrefersSuccessThenFewestUnexpected(t *testing.T) {
	strict := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("kind"), Type: ast.NewLiteral("a")},
		{Name: ast.StringKey("x"), Type: ast.NewKeyword(ast.StringKeyword)},
	}, nil)
	loose := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.StringKey("kind"), Type: ast.NewLiteral("b")},
	}, nil)
	union := ast.NewUnion(strict, loose)
	p := decode(union)

	t.Run("clean success wins", func(t *testing.T) {
		res := p(map[string]interface{}{"kind": "b"}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess {
			t.Fatalf("got %v, want Success", res)
		}
	})

	t.Run("fewest unexpected wins among warnings", func(t *testing.T) {
		// matches "loose" with one Unexpected (x), matches "strict"
		// only after failing its literal check entirely (Failure) --
		// so the only usable candidate is the loose warning.
		res := p(map[string]interface{}{"kind": "b", "x": "extra"}, diagnostic.Options{IsUnexpectedAllowed: true})
		if res.Kind != diagnostic.ResultWarning {
			t.Fatalf("got %v, want Warning", res)
		}
	})

	t.Run("fewest unexpected wins even with unexpected disallowed", func(t *testing.T) {
		schema := ast.NewUnion(
			ast.NewTypeLiteral([]ast.PropertySignature{
				{Name: ast.StringKey("kind"), Type: ast.NewLiteral("a")},
				{Name: ast.StringKey("x"), Type: ast.NewKeyword(ast.NumberKeyword)},
			}, nil),
			ast.NewTypeLiteral([]ast.PropertySignature{
				{Name: ast.StringKey("kind"), Type: ast.NewLiteral("b")},
				{Name: ast.StringKey("y"), Type: ast.NewKeyword(ast.NumberKeyword)},
			}, nil),
		)
		pp := decode(schema)
		res := pp(map[string]interface{}{"kind": "b", "y": 3.0, "extra": 1.0}, diagnostic.Options{
			IsUnexpectedAllowed: false,
			AllErrors:           true,
		})
		if res.Kind != diagnostic.ResultWarning {
			t.Fatalf("got %v, want Warning", res)
		}
		want := []diagnostic.ParseError{
			diagnostic.Key(ast.StringKey("extra"), []diagnostic.ParseError{diagnostic.Unexpected(1.0)}),
		}
		if !reflect.DeepEqual(res.Errors, want) {
			t.Errorf("got errors %#v, want %#v", res.Errors, want)
		}
		wantValue := map[string]interface{}{"kind": "b", "y": 3.0}
		if !reflect.DeepEqual(res.Value, wantValue) {
			t.Errorf("got value %#v, want %#v", res.Value, wantValue)
		}
	})

	t.Run("all branches fail", func(t *testing.T) {
		res := p(map[string]interface{}{"kind": "c"}, diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Fatalf("got %v, want Failure", res)
		}
		if res.Errors[0].Kind != diagnostic.KindMember {
			t.Errorf("got %v, want each branch wrapped as a Member error", res.Errors[0])
		}
	})
}

func TestEnums(t *testing.T) {
	p := decode(ast.NewEnums(
		ast.EnumMember{Name: "Red", Value: "red"},
		ast.EnumMember{Name: "Blue", Value: "blue"},
	))
	if res := p("red", diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success", res)
	}
	if res := p("green", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure", res)
	}
}

func TestRefinement(t *testing.T) {
	positive := ast.NewRefinement("positiveNumber", ast.NewKeyword(ast.NumberKeyword), func(v interface{}) ast.RefinementResult {
		n := v.(float64)
		if n > 0 {
			return diagnostic.Succeed(n)
		}
		return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(ast.NewKeyword(ast.NumberKeyword), n)})
	})
	p := decode(positive)

	if res := p(5.0, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success", res)
	}
	if res := p(-5.0, diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure", res)
	}
	if res := p("not a number", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("from failing should short-circuit before decode runs, got %v", res)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	decodeFn := func(v interface{}, _ interface{}) ast.RefinementResult {
		s := v.(string)
		n := 0.0
		for _, c := range s {
			if c < '0' || c > '9' {
				return diagnostic.Fail([]diagnostic.ParseError{diagnostic.TransformError(ast.NewKeyword(ast.StringKeyword), ast.NewKeyword(ast.NumberKeyword), v)})
			}
			n = n*10 + float64(c-'0')
		}
		return diagnostic.Succeed(n)
	}
	encodeFn := func(v interface{}, _ interface{}) ast.RefinementResult {
		n := v.(float64)
		digits := []byte{}
		i := int(n)
		if i == 0 {
			digits = append(digits, '0')
		}
		for i > 0 {
			digits = append([]byte{byte('0' + i%10)}, digits...)
			i /= 10
		}
		return diagnostic.Succeed(string(digits))
	}

	transform := ast.NewTransform("numericString", ast.NewKeyword(ast.StringKeyword), ast.NewKeyword(ast.NumberKeyword), decodeFn, encodeFn)

	t.Run("decode", func(t *testing.T) {
		p := Compile(diagnostic.Decoder, transform)
		res := p("42", diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess || res.Value.(float64) != 42.0 {
			t.Errorf("got %v, want Success(42)", res)
		}

		res = p("abc", diagnostic.Options{})
		if res.Kind != diagnostic.ResultFailure {
			t.Errorf("got %v, want Failure", res)
		}
	})

	t.Run("encode re-validates against from", func(t *testing.T) {
		p := Compile(diagnostic.Encoder, transform)
		res := p(42.0, diagnostic.Options{})
		if res.Kind != diagnostic.ResultSuccess || res.Value.(string) != "42" {
			t.Errorf("got %v, want Success(\"42\")", res)
		}
	})

	t.Run("guard descends into to only", func(t *testing.T) {
		p := Compile(diagnostic.Guard, transform)
		if res := p(42.0, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
			t.Errorf("guard should check the to-shape (number) directly, got %v", res)
		}
		if res := p("42", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
			t.Errorf("guard should not accept the from-shape, got %v", res)
		}
	})
}

func TestTemplateLiteral(t *testing.T) {
	tpl := ast.NewTemplateLiteral(
		ast.TemplateSpan{Literal: "user-"},
		ast.TemplateSpan{Placeholder: ast.NewKeyword(ast.NumberKeyword)},
	)
	p := decode(tpl)

	if res := p("user-42", diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success", res)
	}
	if res := p("user-abc", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure", res)
	}
	if res := p(42, diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("non-string input should fail, got %v", res)
	}
}

// recursiveListSchema builds a singly-linked list schema: either the
// literal nil terminator, or a record with a numeric value and a next
// pointer that recurses back to the very same Lazy node — the shape
// the memoization box in memo.go exists to terminate.
func recursiveListSchema() *ast.Lazy {
	var list *ast.Lazy
	list = ast.NewLazy("List", func() ast.Node {
		return ast.NewUnion(
			ast.NewLiteral(nil),
			ast.NewTypeLiteral([]ast.PropertySignature{
				{Name: ast.StringKey("value"), Type: ast.NewKeyword(ast.NumberKeyword)},
				{Name: ast.StringKey("next"), Type: list},
			}, nil),
		)
	})
	return list
}

func TestLazyRecursiveSchema(t *testing.T) {
	p := decode(recursiveListSchema())

	if res := p(nil, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Fatalf("got %v, want Success for the nil terminator", res)
	}

	oneElement := map[string]interface{}{"value": 1.0, "next": nil}
	if res := p(oneElement, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Fatalf("got %v, want Success for a one-element list", res)
	}

	twoElements := map[string]interface{}{
		"value": 1.0,
		"next": map[string]interface{}{
			"value": 2.0,
			"next":  nil,
		},
	}
	res := p(twoElements, diagnostic.Options{})
	if res.Kind != diagnostic.ResultSuccess {
		t.Fatalf("got %v, want Success for a two-element list", res)
	}

	malformed := map[string]interface{}{"value": "not a number", "next": nil}
	if res := p(malformed, diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure for a malformed element deep in the recursion", res)
	}
}

func TestLazyCompilesOnceForSharedNode(t *testing.T) {
	// Reaching the same Lazy node twice within one Compile call (once as
	// a union member, once through its own recursive self-reference)
	// must not infinitely recurse; reaching this point at all is the test.
	list := recursiveListSchema()
	wrapper := ast.NewUnion(list, ast.NewKeyword(ast.UnknownKeyword))
	p := decode(wrapper)
	if res := p(nil, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success", res)
	}
}

func TestTypeLiteralSymbolKeyedPropertySignature(t *testing.T) {
	tag := ast.NewSymbol("tag")
	required := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.SymbolKeyOf(tag), Type: ast.NewKeyword(ast.StringKeyword)},
	}, nil)
	p := decode(required)

	// A symbol-keyed signature can never be satisfied by a
	// map[string]interface{} input (this engine's record values carry
	// only string keys), so a required one is always Missing.
	res := p(map[string]interface{}{}, diagnostic.Options{})
	if res.Kind != diagnostic.ResultFailure {
		t.Fatalf("got %v, want Failure (symbol-keyed required signature is always Missing)", res)
	}
	if res.Errors[0].Kind != diagnostic.KindKey {
		t.Errorf("got %v, want a Key error", res.Errors[0])
	}

	optional := ast.NewTypeLiteral([]ast.PropertySignature{
		{Name: ast.SymbolKeyOf(tag), Type: ast.NewKeyword(ast.StringKeyword), IsOptional: true},
	}, nil)
	if res := decode(optional)(map[string]interface{}{}, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success (an optional symbol-keyed signature is simply skipped)", res)
	}
}

func TestTypeLiteralTemplateLiteralIndexSignature(t *testing.T) {
	key := ast.NewTemplateLiteral(
		ast.TemplateSpan{Literal: "opt_"},
		ast.TemplateSpan{Placeholder: ast.NewKeyword(ast.StringKeyword)},
	)
	schema := ast.NewTypeLiteral(nil, []ast.IndexSignature{
		{Parameter: key, Type: ast.NewKeyword(ast.NumberKeyword)},
	})
	p := decode(schema)

	if res := p(map[string]interface{}{"opt_x": 1.0}, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success for a key matching the template pattern", res)
	}

	res := p(map[string]interface{}{"other": 1.0}, diagnostic.Options{})
	if res.Kind != diagnostic.ResultFailure {
		t.Fatalf("got %v, want Failure: a key not matching any template-literal index signature is Unexpected", res)
	}
}

// TestTypeLiteralIndexSignatureFirstMatchWins exercises the
// declaration-order tie-break documented for overlapping index
// signatures: a template-literal-constrained signature declared
// before a catch-all string signature gets first refusal at each key.
func TestTypeLiteralIndexSignatureFirstMatchWins(t *testing.T) {
	specific := ast.NewTemplateLiteral(
		ast.TemplateSpan{Literal: "n_"},
		ast.TemplateSpan{Placeholder: ast.NewKeyword(ast.StringKeyword)},
	)
	schema := ast.NewTypeLiteral(nil, []ast.IndexSignature{
		{Parameter: specific, Type: ast.NewKeyword(ast.NumberKeyword)},
		{Parameter: ast.NewKeyword(ast.StringKeyword), Type: ast.NewKeyword(ast.StringKeyword)},
	})
	p := decode(schema)

	// "n_x" matches the specific signature first, so its value must be
	// a number even though the generic string signature (which would
	// accept a string value) is also declared.
	res := p(map[string]interface{}{"n_x": "not a number"}, diagnostic.Options{})
	if res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure: the specific signature should be tried first", res)
	}
	if res := p(map[string]interface{}{"n_x": 1.0}, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success", res)
	}

	// A key that doesn't match the specific pattern falls through to
	// the generic string signature.
	if res := p(map[string]interface{}{"other": "hi"}, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success via the fallback string signature", res)
	}
}

func TestTypeAliasWithoutHookExpandsToBody(t *testing.T) {
	alias := ast.NewTypeAlias("Greeting", ast.NewLiteral("hi"))
	p := decode(alias)

	if res := p("hi", diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success (no hook registered, body should be expanded)", res)
	}
	if res := p("bye", diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure", res)
	}
}

// TestTypeAliasHookReplacesBodyExpansion exercises §4.1/§4.5: a
// registered hook receives one compiled Parser per type parameter and
// its return value is used in place of expanding the alias's body, so
// a hook can accept input the body itself would reject.
func TestTypeAliasHookReplacesBodyExpansion(t *testing.T) {
	positiveOnly := ast.NewKeyword(ast.NumberKeyword)
	alias := ast.NewTypeAlias("PositiveNumber", positiveOnly)

	registry := hooks.NewRegistry()
	registry.Register(alias, func(children ...diagnostic.Parser) diagnostic.Parser {
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			n, ok := input.(float64)
			if !ok || n <= 0 {
				return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(alias, input)})
			}
			return diagnostic.Succeed(n)
		}
	})

	p := CompileWithRegistry(diagnostic.Decoder, alias, registry)
	if res := p(5.0, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success for a positive number", res)
	}
	if res := p(-5.0, diagnostic.Options{}); res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure for a non-positive number (hook should override the bare NumberKeyword body)", res)
	}

	// The same alias compiled without that registry falls back to
	// expanding its body, which accepts any number including -5.
	unhooked := decode(alias)
	if res := unhooked(-5.0, diagnostic.Options{}); res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success: without the registry, the alias should expand to its bare NumberKeyword body", res)
	}
}

func TestTypeAliasHookReceivesCompiledTypeParameters(t *testing.T) {
	elementType := ast.NewKeyword(ast.StringKeyword)
	alias := ast.NewTypeAlias("ArrayOf", ast.NewKeyword(ast.UnknownKeyword), elementType)

	registry := hooks.NewRegistry()
	var gotChildren int
	registry.Register(alias, func(children ...diagnostic.Parser) diagnostic.Parser {
		gotChildren = len(children)
		elementParser := children[0]
		return func(input interface{}, opts diagnostic.Options) diagnostic.Result {
			arr, ok := input.([]interface{})
			if !ok {
				return diagnostic.Fail([]diagnostic.ParseError{diagnostic.Type(alias, input)})
			}
			out := make([]interface{}, 0, len(arr))
			for _, v := range arr {
				res := elementParser(v, opts)
				if res.Kind == diagnostic.ResultFailure {
					return res
				}
				out = append(out, res.Value)
			}
			return diagnostic.Succeed(out)
		}
	})

	p := CompileWithRegistry(diagnostic.Decoder, alias, registry)
	if gotChildren != 1 {
		t.Fatalf("hook should receive exactly one compiled type parameter, got %d", gotChildren)
	}

	res := p([]interface{}{"a", "b"}, diagnostic.Options{})
	if res.Kind != diagnostic.ResultSuccess {
		t.Errorf("got %v, want Success", res)
	}
	res = p([]interface{}{"a", 1.0}, diagnostic.Options{})
	if res.Kind != diagnostic.ResultFailure {
		t.Errorf("got %v, want Failure: second element isn't a string", res)
	}
}
