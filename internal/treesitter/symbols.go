// Package treesitter parses TypeScript and JavaScript with tree-sitter and
// exposes the result through the syntax.Tree interface. It also extracts a
// compact outline of the function-like symbols in a file.
package treesitter

// SymbolKind classifies extracted symbols.
type SymbolKind int

const (
	KindFunction SymbolKind = iota
	KindMethod
	KindArrow
	KindFunctionExpression
	KindGenerator
)

// Symbol represents a single function-like node.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Signature string // e.g. "async fetchUser(id: string): Promise<User>"
	StartLine int    // 1-indexed
	EndLine   int    // 1-indexed
	Async     bool
	Children  []Symbol
}

// String returns a short label for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case KindFunction:
		return "func"
	case KindMethod:
		return "method"
	case KindArrow:
		return "arrow"
	case KindFunctionExpression:
		return "fn-expr"
	case KindGenerator:
		return "generator"
	default:
		return "unknown"
	}
}
