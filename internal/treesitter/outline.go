package treesitter

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// anonymous is the name given to functions with no binding.
const anonymous = "<anonymous>"

// Outline returns the function-like symbols of the tree. Functions nested in
// other functions are reported as children of their enclosing symbol.
func (t *Tree) Outline() []Symbol {
	return collect(t.tree.RootNode(), t.src)
}

func collect(node *sitter.Node, src []byte) []Symbol {
	var syms []Symbol
	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if kind, ok := symbolKind(child.Type()); ok {
			sym := extractFunc(child, kind, src)
			if body := child.ChildByFieldName("body"); body != nil {
				sym.Children = collect(body, src)
			}
			syms = append(syms, sym)
			continue
		}
		syms = append(syms, collect(child, src)...)
	}
	return syms
}

func symbolKind(nodeType string) (SymbolKind, bool) {
	switch nodeType {
	case "function_declaration":
		return KindFunction, true
	case "method_definition":
		return KindMethod, true
	case "arrow_function":
		return KindArrow, true
	case "function", "function_expression":
		return KindFunctionExpression, true
	case "generator_function", "generator_function_declaration":
		return KindGenerator, true
	}
	return 0, false
}

func extractFunc(node *sitter.Node, kind SymbolKind, src []byte) Symbol {
	sym := Symbol{
		Name:      funcName(node, src),
		Kind:      kind,
		StartLine: line(node),
		EndLine:   endLine(node),
		Async:     strings.HasPrefix(content(node, src), "async"),
	}
	sym.Signature = buildFuncSig(sym, node, src)
	return sym
}

// funcName resolves the name of a function, falling back to the binding it
// is assigned to for anonymous functions and arrows.
func funcName(node *sitter.Node, src []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return content(name, src)
	}
	parent := node.Parent()
	if parent == nil {
		return anonymous
	}
	switch parent.Type() {
	case "variable_declarator":
		if name := parent.ChildByFieldName("name"); name != nil {
			return content(name, src)
		}
	case "pair":
		if key := parent.ChildByFieldName("key"); key != nil {
			return content(key, src)
		}
	case "assignment_expression":
		if left := parent.ChildByFieldName("left"); left != nil {
			return content(left, src)
		}
	case "public_field_definition", "field_definition":
		if name := parent.ChildByFieldName("name"); name != nil {
			return content(name, src)
		}
		if prop := parent.ChildByFieldName("property"); prop != nil {
			return content(prop, src)
		}
	}
	return anonymous
}

func buildFuncSig(sym Symbol, node *sitter.Node, src []byte) string {
	var b strings.Builder
	if sym.Async {
		b.WriteString("async ")
	}
	b.WriteString(sym.Name)
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		b.WriteString(content(tp, src))
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		b.WriteString(content(params, src))
	} else if param := node.ChildByFieldName("parameter"); param != nil {
		fmt.Fprintf(&b, "(%s)", content(param, src))
	}
	if result := node.ChildByFieldName("return_type"); result != nil {
		b.WriteString(content(result, src))
	}
	return b.String()
}

// FormatOutline renders symbols one per line, children indented beneath
// their parent:
//
//	12-20 func fetchUser(id: string): Promise<User>
//	  14-14 arrow toName(u)
func FormatOutline(syms []Symbol) string {
	var b strings.Builder
	formatLevel(&b, syms, 0)
	return b.String()
}

func formatLevel(b *strings.Builder, syms []Symbol, depth int) {
	for _, s := range syms {
		fmt.Fprintf(b, "%s%d-%d %s %s\n", strings.Repeat("  ", depth), s.StartLine, s.EndLine, s.Kind, s.Signature)
		formatLevel(b, s.Children, depth+1)
	}
}
