package interpret

import "github.com/shapelang/shapecore/internal/ast"

// These nodes exist only to give a Type/Transform diagnostic something
// to point at when the check that failed isn't itself tied to a single
// AST node (e.g. "input wasn't an array at all", rather than "element 2
// wasn't a string"). They are never reachable from user-constructed
// schemas and never registered with the hook registry.
var (
	unknownArrayNode  ast.Node = ast.NewTypeAlias("Array", ast.NewKeyword(ast.ObjectKeyword))
	unknownRecordNode ast.Node = ast.NewTypeAlias("Record", ast.NewKeyword(ast.ObjectKeyword))
	primitiveNode     ast.Node = ast.NewTypeAlias("primitive", ast.NewKeyword(ast.UnknownKeyword))
)
