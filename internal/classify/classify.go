// Package classify maps syntax nodes to the coarse categories the refactoring
// commands reason about. Classification looks at node type strings only.
package classify

import "github.com/xonecas/tsedit/internal/syntax"

// Category is the semantic bucket of a node.
type Category int

const (
	Other Category = iota
	Identifier
	MemberAccess
	FunctionLike
	StringLiteral
	ListContainerChild
	StatementLike
)

func (c Category) String() string {
	switch c {
	case Identifier:
		return "identifier"
	case MemberAccess:
		return "member-access"
	case FunctionLike:
		return "function-like"
	case StringLiteral:
		return "string"
	case ListContainerChild:
		return "list-item"
	case StatementLike:
		return "statement"
	default:
		return "other"
	}
}

// Node types of the TypeScript/JavaScript grammars. Older grammar releases
// name function expressions "function"; newer ones "function_expression".
const (
	TypeFunction            = "function"
	TypeFunctionExpression  = "function_expression"
	TypeFunctionDeclaration = "function_declaration"
	TypeGeneratorFunction   = "generator_function"
	TypeGeneratorDecl       = "generator_function_declaration"
	TypeArrowFunction       = "arrow_function"
	TypeMethodDefinition    = "method_definition"
	TypeFieldDefinition     = "field_definition"
	TypePublicField         = "public_field_definition"
	TypeString              = "string"
	TypeTemplateString      = "template_string"
	TypeArray               = "array"
	TypeObject              = "object"
	TypeMemberExpression    = "member_expression"
	TypeStatementBlock      = "statement_block"
	TypeReturnStatement     = "return_statement"
	TypeIdentifier          = "identifier"
	TypeForStatement        = "for_statement"
	TypeForInStatement      = "for_in_statement"
)

var functionTypes = map[string]bool{
	TypeFunction:            true,
	TypeFunctionExpression:  true,
	TypeFunctionDeclaration: true,
	TypeArrowFunction:       true,
	TypeMethodDefinition:    true,
	TypeGeneratorFunction:   true,
	TypeGeneratorDecl:       true,
}

var statementTypes = map[string]bool{
	"expression_statement": true,
	"variable_declaration": true,
	"lexical_declaration":  true,
	"if_statement":         true,
	TypeForStatement:       true,
	TypeForInStatement:     true,
	"while_statement":      true,
	TypeReturnStatement:    true,
	TypeStatementBlock:     true,
}

var identifierTypes = map[string]bool{
	TypeIdentifier:                          true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
}

// Classify returns the most specific category of n. A node matching several
// categories resolves in this order: FunctionLike, StatementLike,
// StringLiteral, MemberAccess, Identifier, ListContainerChild.
func Classify(n syntax.Node) Category {
	switch {
	case n == nil:
		return Other
	case IsFunctionLike(n):
		return FunctionLike
	case IsStatementLike(n):
		return StatementLike
	case IsStringLike(n):
		return StringLiteral
	case IsMemberAccess(n):
		return MemberAccess
	case IsIdentifier(n):
		return Identifier
	case IsListContainerChild(n):
		return ListContainerChild
	}
	return Other
}

// IsFunctionLike matches function declarations and expressions, arrows and
// methods. The anonymous "function" keyword token is excluded.
func IsFunctionLike(n syntax.Node) bool {
	return n.IsNamed() && functionTypes[n.Type()]
}

// IsFunctionDeclOrExpr matches named-or-anonymous `function` forms, but not
// arrows or methods.
func IsFunctionDeclOrExpr(n syntax.Node) bool {
	if !n.IsNamed() {
		return false
	}
	switch n.Type() {
	case TypeFunction, TypeFunctionExpression, TypeFunctionDeclaration,
		TypeGeneratorFunction, TypeGeneratorDecl:
		return true
	}
	return false
}

// IsFunctionExpression matches the function expression node in either
// grammar naming.
func IsFunctionExpression(n syntax.Node) bool {
	return n.IsNamed() && (n.Type() == TypeFunction || n.Type() == TypeFunctionExpression)
}

// IsArrowOrFunctionExpression matches the nodes toggled by the arrow command.
func IsArrowOrFunctionExpression(n syntax.Node) bool {
	return (n.IsNamed() && n.Type() == TypeArrowFunction) || IsFunctionExpression(n)
}

func IsStatementLike(n syntax.Node) bool {
	return n.IsNamed() && statementTypes[n.Type()]
}

// IsForLoop reports for and for-in/of loops, whose headers hold
// statement-like nodes.
func IsForLoop(n syntax.Node) bool {
	return n.Type() == TypeForStatement || n.Type() == TypeForInStatement
}

func IsStringLike(n syntax.Node) bool {
	return n.Type() == TypeString || n.Type() == TypeTemplateString
}

func IsTemplateString(n syntax.Node) bool {
	return n.Type() == TypeTemplateString
}

func IsIdentifier(n syntax.Node) bool {
	return identifierTypes[n.Type()]
}

func IsMemberAccess(n syntax.Node) bool {
	return n.Type() == TypeMemberExpression
}

// IsFieldOrMethodDefinition matches class members that carry a name field.
func IsFieldOrMethodDefinition(n syntax.Node) bool {
	switch n.Type() {
	case TypeMethodDefinition, TypeFieldDefinition, TypePublicField:
		return true
	}
	return false
}

// IsListContainer matches array and object literals.
func IsListContainer(n syntax.Node) bool {
	return n.Type() == TypeArray || n.Type() == TypeObject
}

// IsListContainerChild reports whether n sits directly inside an array or
// object literal.
func IsListContainerChild(n syntax.Node) bool {
	p := n.Parent()
	return p != nil && IsListContainer(p)
}
