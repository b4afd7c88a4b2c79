// Package ast defines the schema Abstract Syntax Tree (AST) nodes for
// the shapecore structural validation engine.
//
// An AST node is a closed, tagged variant: every node implements Node,
// carries a Kind for exhaustive switch dispatch, and is immutable once
// constructed. Constructors validate the structural invariants listed
// alongside each node (non-empty rest, unique property names, at least
// two union members) and panic if they are violated — schema
// construction is expected to happen once, at program startup, so a
// panic there is a programmer error caught immediately rather than a
// runtime failure surfacing deep inside a decode call.
package ast

import (
	"fmt"
	"math/big"
	"strings"
)

// Node is the common interface implemented by every AST node kind.
type Node interface {
	// Kind reports the node's tag for exhaustive dispatch.
	Kind() NodeKind
	// String returns a short, human-readable rendering of the node.
	String() string
	// Accept implements the visitor pattern for AST traversal.
	Accept(visitor Visitor) interface{}
}

// NodeKind tags the closed set of AST node variants.
type NodeKind int

const (
	KindTypeAlias NodeKind = iota
	KindLiteral
	KindUniqueSymbol
	KindKeyword
	KindTuple
	KindTypeLiteral
	KindUnion
	KindLazy
	KindEnums
	KindRefinement
	KindTemplateLiteral
	KindTransform
)

func (k NodeKind) String() string {
	switch k {
	case KindTypeAlias:
		return "TypeAlias"
	case KindLiteral:
		return "Literal"
	case KindUniqueSymbol:
		return "UniqueSymbol"
	case KindKeyword:
		return "Keyword"
	case KindTuple:
		return "Tuple"
	case KindTypeLiteral:
		return "TypeLiteral"
	case KindUnion:
		return "Union"
	case KindLazy:
		return "Lazy"
	case KindEnums:
		return "Enums"
	case KindRefinement:
		return "Refinement"
	case KindTemplateLiteral:
		return "TemplateLiteral"
	case KindTransform:
		return "Transform"
	default:
		return "unknown"
	}
}

// ===== Keywords (Undefined, Void, Never, Unknown, Any, and the primitives) =====

// KeywordKind enumerates the zero-payload primitive node kinds.
type KeywordKind int

const (
	UndefinedKeyword KeywordKind = iota
	VoidKeyword
	NeverKeyword
	UnknownKeyword
	AnyKeyword
	StringKeyword
	NumberKeyword
	BooleanKeyword
	BigIntKeyword
	SymbolKeyword
	ObjectKeyword
)

func (kk KeywordKind) String() string {
	switch kk {
	case UndefinedKeyword:
		return "undefined"
	case VoidKeyword:
		return "void"
	case NeverKeyword:
		return "never"
	case UnknownKeyword:
		return "unknown"
	case AnyKeyword:
		return "any"
	case StringKeyword:
		return "string"
	case NumberKeyword:
		return "number"
	case BooleanKeyword:
		return "boolean"
	case BigIntKeyword:
		return "bigint"
	case SymbolKeyword:
		return "symbol"
	case ObjectKeyword:
		return "object"
	default:
		return "unknown-keyword"
	}
}

// Keyword is the zero-payload primitive/absurdity node.
type Keyword struct {
	Kind_ KeywordKind
}

// NewKeyword constructs a Keyword node of the given kind.
func NewKeyword(kind KeywordKind) *Keyword { return &Keyword{Kind_: kind} }

func (k *Keyword) Kind() NodeKind                    { return KindKeyword }
func (k *Keyword) String() string                    { return k.Kind_.String() }
func (k *Keyword) Accept(v Visitor) interface{}      { return v.VisitKeyword(k) }
func (k *Keyword) IsAlwaysSuccess() bool             { return k.Kind_ == UnknownKeyword || k.Kind_ == AnyKeyword }
func (k *Keyword) IsAlwaysFailure() bool             { return k.Kind_ == NeverKeyword }

// ===== Symbol =====

// Symbol is an opaque, pointer-identified unique symbol value.
type Symbol struct {
	Name string
}

// NewSymbol allocates a fresh, uniquely-identified symbol.
func NewSymbol(name string) *Symbol { return &Symbol{Name: name} }

func (s *Symbol) String() string { return fmt.Sprintf("Symbol(%s)", s.Name) }

// ===== Literal =====

// LiteralValue is one of string, float64, bool, nil, or *big.Int.
type LiteralValue interface{}

// Literal matches a single scalar value exactly.
type Literal struct {
	Value LiteralValue
}

// NewLiteral constructs a Literal node. v must be a string, float64,
// bool, nil, or *big.Int.
func NewLiteral(v LiteralValue) *Literal {
	switch v.(type) {
	case string, float64, bool, nil, *big.Int:
		return &Literal{Value: v}
	default:
		Panicf(CategoryConstruction, "INVALID_LITERAL_VALUE", "Literal value must be string, float64, bool, nil, or *big.Int, got %T", v)
		panic("unreachable")
	}
}

func (l *Literal) Kind() NodeKind { return KindLiteral }

func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}
func (l *Literal) Accept(v Visitor) interface{} { return v.VisitLiteral(l) }

// LiteralsEqual reports whether two literal values are the same per
// the engine's equality rule (big.Int compared by value, everything
// else by ==).
func LiteralsEqual(a, b LiteralValue) bool {
	if ab, ok := a.(*big.Int); ok {
		bb, ok := b.(*big.Int)
		return ok && bb != nil && ab.Cmp(bb) == 0
	}
	return a == b
}

// ===== UniqueSymbol =====

// UniqueSymbolNode matches a single, specific *Symbol by identity.
type UniqueSymbolNode struct {
	Symbol *Symbol
}

func NewUniqueSymbol(s *Symbol) *UniqueSymbolNode { return &UniqueSymbolNode{Symbol: s} }

func (u *UniqueSymbolNode) Kind() NodeKind               { return KindUniqueSymbol }
func (u *UniqueSymbolNode) String() string               { return u.Symbol.String() }
func (u *UniqueSymbolNode) Accept(v Visitor) interface{} { return v.VisitUniqueSymbol(u) }

// ===== TypeAlias =====

// TypeAlias is a named, hookable wrapper around another AST node.
type TypeAlias struct {
	Type           Node
	TypeParameters []Node
	// Identifier is an optional human-readable name, used only for
	// diagnostics/rendering — the hook registry keys on node identity
	// (this struct's pointer), not on Identifier.
	Identifier string
}

// NewTypeAlias constructs a TypeAlias node.
func NewTypeAlias(identifier string, typ Node, typeParameters ...Node) *TypeAlias {
	if typ == nil {
		Panicf(CategoryConstruction, "NIL_TYPE_ALIAS_TARGET", "TypeAlias.Type must not be nil")
	}
	return &TypeAlias{Identifier: identifier, Type: typ, TypeParameters: typeParameters}
}

func (t *TypeAlias) Kind() NodeKind { return KindTypeAlias }
func (t *TypeAlias) String() string {
	if t.Identifier != "" {
		return t.Identifier
	}
	return "TypeAlias(" + t.Type.String() + ")"
}
func (t *TypeAlias) Accept(v Visitor) interface{} { return v.VisitTypeAlias(t) }

// ===== Tuple =====

// TupleElement is one fixed element of a Tuple, optionally optional.
type TupleElement struct {
	Type       Node
	IsOptional bool
}

// Tuple is a heterogeneous, positional sequence.
type Tuple struct {
	Elements   []TupleElement
	Rest       []Node // nil when absent; non-empty when present (head + post-rest tail)
	IsReadonly bool
}

// NewTuple constructs a Tuple node. rest, if non-nil, must be
// non-empty: its head is the variadic middle element and its tail is
// the fixed sequence required after the variadic region.
func NewTuple(elements []TupleElement, rest []Node, isReadonly bool) *Tuple {
	if rest != nil && len(rest) == 0 {
		Panicf(CategoryConstruction, "EMPTY_TUPLE_REST", "Tuple.Rest must be non-empty when present")
	}
	return &Tuple{Elements: elements, Rest: rest, IsReadonly: isReadonly}
}

func (t *Tuple) Kind() NodeKind { return KindTuple }
func (t *Tuple) String() string {
	parts := make([]string, 0, len(t.Elements))
	for _, e := range t.Elements {
		s := e.Type.String()
		if e.IsOptional {
			s += "?"
		}
		parts = append(parts, s)
	}
	if t.Rest != nil {
		parts = append(parts, "..."+t.Rest[0].String())
		for _, tail := range t.Rest[1:] {
			parts = append(parts, tail.String())
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (t *Tuple) Accept(v Visitor) interface{} { return v.VisitTuple(t) }

// RestHead returns the variadic element's type, or nil if there is no rest.
func (t *Tuple) RestHead() Node {
	if t.Rest == nil {
		return nil
	}
	return t.Rest[0]
}

// RestTail returns the fixed elements required after the variadic region.
func (t *Tuple) RestTail() []Node {
	if t.Rest == nil {
		return nil
	}
	return t.Rest[1:]
}

// ===== TypeLiteral =====

// PropertyKey is a record key: either a plain string or a *Symbol.
type PropertyKey struct {
	str string
	sym *Symbol
}

// StringKey builds a PropertyKey from a plain string.
func StringKey(s string) PropertyKey { return PropertyKey{str: s} }

// SymbolKeyOf builds a PropertyKey from a symbol.
func SymbolKeyOf(s *Symbol) PropertyKey { return PropertyKey{sym: s} }

func (k PropertyKey) IsSymbol() bool { return k.sym != nil }

func (k PropertyKey) Symbol() *Symbol { return k.sym }

func (k PropertyKey) String() string {
	if k.sym != nil {
		return k.sym.String()
	}
	return k.str
}

// Equal reports whether two property keys refer to the same key.
func (k PropertyKey) Equal(other PropertyKey) bool {
	if k.IsSymbol() || other.IsSymbol() {
		return k.sym == other.sym
	}
	return k.str == other.str
}

// PropertySignature is one fixed, named member of a TypeLiteral.
type PropertySignature struct {
	Name       PropertyKey
	Type       Node
	IsOptional bool
}

// IndexSignatureKeyKind selects which keys of the input an index
// signature's parameter matches.
type IndexSignatureKeyKind int

const (
	IndexKeyString IndexSignatureKeyKind = iota
	IndexKeySymbol
	IndexKeyTemplateLiteral
)

// IndexSignature assigns a parser to every key matching a key-kind.
type IndexSignature struct {
	// Parameter describes the key kind: a StringKeyword, SymbolKeyword,
	// or a TemplateLiteral constraining which string keys match.
	Parameter Node
	Type      Node
}

// KeyKind classifies an IndexSignature's Parameter for dispatch.
func (is IndexSignature) KeyKind() IndexSignatureKeyKind {
	switch p := is.Parameter.(type) {
	case *Keyword:
		if p.Kind_ == SymbolKeyword {
			return IndexKeySymbol
		}
		return IndexKeyString
	case *TemplateLiteral:
		return IndexKeyTemplateLiteral
	default:
		return IndexKeyString
	}
}

// TypeLiteral is a record with fixed keys and/or index signatures.
type TypeLiteral struct {
	PropertySignatures []PropertySignature
	IndexSignatures    []IndexSignature
}

// NewTypeLiteral constructs a TypeLiteral node. Property signature
// names must be unique.
func NewTypeLiteral(props []PropertySignature, indexSigs []IndexSignature) *TypeLiteral {
	for i := range props {
		for j := i + 1; j < len(props); j++ {
			if props[i].Name.Equal(props[j].Name) {
				Panicf(CategoryConstruction, "DUPLICATE_PROPERTY_SIGNATURE", "duplicate property signature name %q", props[i].Name.String())
			}
		}
	}
	return &TypeLiteral{PropertySignatures: props, IndexSignatures: indexSigs}
}

func (t *TypeLiteral) Kind() NodeKind { return KindTypeLiteral }
func (t *TypeLiteral) String() string {
	parts := make([]string, 0, len(t.PropertySignatures)+len(t.IndexSignatures))
	for _, p := range t.PropertySignatures {
		opt := ""
		if p.IsOptional {
			opt = "?"
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", p.Name.String(), opt, p.Type.String()))
	}
	for _, idx := range t.IndexSignatures {
		parts = append(parts, fmt.Sprintf("[k: %s]: %s", idx.Parameter.String(), idx.Type.String()))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
func (t *TypeLiteral) Accept(v Visitor) interface{} { return v.VisitTypeLiteral(t) }

// ===== Union =====

// Union is a set of at least two alternative shapes.
type Union struct {
	Types []Node
}

// NewUnion constructs a Union node; it must have at least two members.
func NewUnion(types ...Node) *Union {
	if len(types) < 2 {
		Panicf(CategoryConstruction, "UNION_TOO_FEW_MEMBERS", "Union requires at least two member types, got %d", len(types))
	}
	return &Union{Types: types}
}

func (u *Union) Kind() NodeKind { return KindUnion }
func (u *Union) String() string {
	parts := make([]string, 0, len(u.Types))
	for _, t := range u.Types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " | ")
}
func (u *Union) Accept(v Visitor) interface{} { return v.VisitUnion(u) }

// ===== Lazy =====

// Lazy is a thunked reference used to describe recursive schemas.
type Lazy struct {
	Identifier string
	F          func() Node
}

// NewLazy constructs a Lazy node around a thunk.
func NewLazy(identifier string, f func() Node) *Lazy {
	if f == nil {
		Panicf(CategoryConstruction, "NIL_LAZY_THUNK", "Lazy.F must not be nil")
	}
	return &Lazy{Identifier: identifier, F: f}
}

func (l *Lazy) Kind() NodeKind               { return KindLazy }
func (l *Lazy) String() string               { return "Lazy(" + l.Identifier + ")" }
func (l *Lazy) Accept(v Visitor) interface{} { return v.VisitLazy(l) }

// ===== Enums =====

// EnumMember is one named, valued member of an Enums node.
type EnumMember struct {
	Name  string
	Value LiteralValue
}

// Enums requires the input to equal one of a fixed list of values.
type Enums struct {
	Members []EnumMember
}

// NewEnums constructs an Enums node.
func NewEnums(members ...EnumMember) *Enums {
	if len(members) == 0 {
		Panicf(CategoryConstruction, "EMPTY_ENUMS", "Enums requires at least one member")
	}
	return &Enums{Members: members}
}

func (e *Enums) Kind() NodeKind { return KindEnums }
func (e *Enums) String() string {
	parts := make([]string, 0, len(e.Members))
	for _, m := range e.Members {
		parts = append(parts, m.Name)
	}
	return "enum{" + strings.Join(parts, ", ") + "}"
}
func (e *Enums) Accept(v Visitor) interface{} { return v.VisitEnums(e) }

// ===== Refinement =====

// RefinementResult is the outcome of a Refinement's Decode step. It is
// deliberately an opaque interface{} here to avoid an import cycle
// with the diagnostic package's ParseResult — interpret.go performs
// the type assertion back to diagnostic.Result.
type RefinementResult = interface{}

// Refinement narrows an already-parsed value with a predicate.
type Refinement struct {
	From   Node
	Decode func(value interface{}) RefinementResult
	// Label names the refinement for Type-error rendering (e.g. "positiveNumber").
	Label string
}

// NewRefinement constructs a Refinement node.
func NewRefinement(label string, from Node, decode func(interface{}) RefinementResult) *Refinement {
	if decode == nil {
		Panicf(CategoryConstruction, "NIL_REFINEMENT_DECODE", "Refinement.Decode must not be nil")
	}
	return &Refinement{Label: label, From: from, Decode: decode}
}

func (r *Refinement) Kind() NodeKind { return KindRefinement }
func (r *Refinement) String() string {
	if r.Label != "" {
		return r.Label
	}
	return "Refinement(" + r.From.String() + ")"
}
func (r *Refinement) Accept(v Visitor) interface{} { return v.VisitRefinement(r) }

// ===== TemplateLiteral =====

// TemplateSpan is one segment of a template literal: either a literal
// string fragment or a placeholder type (a Keyword of string, number,
// boolean, or bigint kind, or a Literal). The constructor does not
// check placeholders; the interpreter panics on any other kind.
type TemplateSpan struct {
	Literal     string // used when Placeholder == nil
	Placeholder Node   // nil for a literal-text span
}

// TemplateLiteral matches a string against a pattern built from
// alternating literal and placeholder spans.
type TemplateLiteral struct {
	Spans []TemplateSpan
}

// NewTemplateLiteral constructs a TemplateLiteral node.
func NewTemplateLiteral(spans ...TemplateSpan) *TemplateLiteral {
	if len(spans) == 0 {
		Panicf(CategoryConstruction, "EMPTY_TEMPLATE_LITERAL", "TemplateLiteral requires at least one span")
	}
	return &TemplateLiteral{Spans: spans}
}

func (t *TemplateLiteral) Kind() NodeKind { return KindTemplateLiteral }
func (t *TemplateLiteral) String() string {
	var b strings.Builder
	b.WriteString("`")
	for _, s := range t.Spans {
		if s.Placeholder == nil {
			b.WriteString(s.Literal)
		} else {
			b.WriteString("${" + s.Placeholder.String() + "}")
		}
	}
	b.WriteString("`")
	return b.String()
}
func (t *TemplateLiteral) Accept(v Visitor) interface{} { return v.VisitTemplateLiteral(t) }

// ===== Transform =====

// Transform converts bidirectionally between two shapes.
type Transform struct {
	From Node
	To   Node
	// Decode and Encode return an opaque RefinementResult for the same
	// import-cycle reason as Refinement.Decode above.
	Decode func(value interface{}, opts interface{}) RefinementResult
	Encode func(value interface{}, opts interface{}) RefinementResult
	Label  string
}

// NewTransform constructs a Transform node.
func NewTransform(label string, from, to Node, decode, encode func(interface{}, interface{}) RefinementResult) *Transform {
	if decode == nil || encode == nil {
		Panicf(CategoryConstruction, "NIL_TRANSFORM_FUNCS", "Transform.Decode and Transform.Encode must not be nil")
	}
	return &Transform{Label: label, From: from, To: to, Decode: decode, Encode: encode}
}

func (t *Transform) Kind() NodeKind { return KindTransform }
func (t *Transform) String() string {
	if t.Label != "" {
		return t.Label
	}
	return "Transform(" + t.From.String() + " <-> " + t.To.String() + ")"
}
func (t *Transform) Accept(v Visitor) interface{} { return v.VisitTransform(t) }
