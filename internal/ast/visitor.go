// Visitor pattern for schema AST traversal, mirroring the dispatch
// shape of the teacher compiler's internal/ast/visitor.go: one
// Visit method per node kind, plus a BaseVisitor default any concrete
// visitor can embed to only override the kinds it cares about.
package ast

// Visitor defines one traversal method per closed AST node kind.
type Visitor interface {
	VisitTypeAlias(node *TypeAlias) interface{}
	VisitLiteral(node *Literal) interface{}
	VisitUniqueSymbol(node *UniqueSymbolNode) interface{}
	VisitKeyword(node *Keyword) interface{}
	VisitTuple(node *Tuple) interface{}
	VisitTypeLiteral(node *TypeLiteral) interface{}
	VisitUnion(node *Union) interface{}
	VisitLazy(node *Lazy) interface{}
	VisitEnums(node *Enums) interface{}
	VisitRefinement(node *Refinement) interface{}
	VisitTemplateLiteral(node *TemplateLiteral) interface{}
	VisitTransform(node *Transform) interface{}
}

// BaseVisitor returns nil for every node kind; embed it to implement
// only the Visit methods a concrete visitor needs.
type BaseVisitor struct{}

func (BaseVisitor) VisitTypeAlias(node *TypeAlias) interface{}             { return nil }
func (BaseVisitor) VisitLiteral(node *Literal) interface{}                 { return nil }
func (BaseVisitor) VisitUniqueSymbol(node *UniqueSymbolNode) interface{}   { return nil }
func (BaseVisitor) VisitKeyword(node *Keyword) interface{}                 { return nil }
func (BaseVisitor) VisitTuple(node *Tuple) interface{}                     { return nil }
func (BaseVisitor) VisitTypeLiteral(node *TypeLiteral) interface{}         { return nil }
func (BaseVisitor) VisitUnion(node *Union) interface{}                     { return nil }
func (BaseVisitor) VisitLazy(node *Lazy) interface{}                       { return nil }
func (BaseVisitor) VisitEnums(node *Enums) interface{}                     { return nil }
func (BaseVisitor) VisitRefinement(node *Refinement) interface{}           { return nil }
func (BaseVisitor) VisitTemplateLiteral(node *TemplateLiteral) interface{} { return nil }
func (BaseVisitor) VisitTransform(node *Transform) interface{}             { return nil }
