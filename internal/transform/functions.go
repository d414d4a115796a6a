package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/classify"
	"github.com/xonecas/tsedit/internal/locate"
	"github.com/xonecas/tsedit/internal/syntax"
)

var (
	asyncPrefix = regexp.MustCompile(`^async\b\s*`)
	// Class member modifiers that must stay in front of `async`.
	memberModifiers = regexp.MustCompile(`^(?:(?:static|public|private|protected|override|abstract)\s+)+`)
)

// ToggleAsync adds or removes the `async` keyword of the innermost function
// at point and moves point to the start of that function. The change is
// purely lexical.
func ToggleAsync(b *buffer.Buffer) error {
	tree, err := b.Tree()
	if err != nil {
		return err
	}
	fn := locate.ClosestFunction(tree, b.Point())
	if fn == nil {
		return syntax.ErrNoFunctionAtPoint
	}
	start := fn.StartByte()
	b.SetPoint(start)

	at := start
	if fn.Type() == classify.TypeMethodDefinition {
		if loc := memberModifiers.FindStringIndex(fn.Text()); loc != nil {
			at += loc[1]
		}
	}
	loc := asyncPrefix.FindStringIndex(b.Slice(at, fn.EndByte()))
	if loc != nil && !namedAt(fn, at) {
		b.Delete(at, at+loc[1])
		return nil
	}
	b.Insert(at, "async ")
	return nil
}

// namedAt reports whether the word at offset is the function's own name or
// parameter rather than the async keyword, as in `async() {}` or
// `async => 1`.
func namedAt(fn syntax.Node, offset int) bool {
	for _, field := range []string{"name", "parameter"} {
		if c := fn.ChildByField(field); c != nil && c.StartByte() == offset {
			return true
		}
	}
	return false
}

// ToggleArrowFunction converts the innermost arrow function at point into a
// function expression, or the innermost function expression into an arrow.
// Point moves to the start of the rewritten function.
func ToggleArrowFunction(b *buffer.Buffer) error {
	tree, err := b.Tree()
	if err != nil {
		return err
	}
	fn := locate.ClosestArrowOrFunction(tree, b.Point())
	if fn == nil {
		return syntax.ErrNoFunctionAtPoint
	}

	var text string
	if fn.Type() == classify.TypeArrowFunction {
		text, err = ArrowToFunction(fn)
	} else {
		text, err = FunctionToArrow(fn)
	}
	if err != nil {
		return err
	}
	b.Replace(fn.StartByte(), fn.EndByte(), text)
	b.SetPoint(fn.StartByte())
	return nil
}

// ArrowToFunction renders an arrow_function node as a function expression.
// Expression bodies become `{ return <expr>; }`; block bodies are kept.
func ArrowToFunction(arrow syntax.Node) (string, error) {
	body := arrow.ChildByField("body")
	if body == nil {
		return "", fmt.Errorf("arrow function without body: %w", syntax.ErrNoFunctionAtPoint)
	}

	var params string
	var paramStart int
	if p := arrow.ChildByField("parameters"); p != nil {
		params, paramStart = p.Text(), p.StartByte()
	} else if p := arrow.ChildByField("parameter"); p != nil {
		params, paramStart = "("+p.Text()+")", p.StartByte()
	} else {
		return "", fmt.Errorf("arrow function without parameters: %w", syntax.ErrNoFunctionAtPoint)
	}
	typeParams := fieldText(arrow, "type_parameters")
	if tp := arrow.ChildByField("type_parameters"); tp != nil {
		paramStart = min(paramStart, tp.StartByte())
	}

	var b strings.Builder
	// `async => 1` is a parameter named async, not a modifier.
	if paramStart > arrow.StartByte() && asyncPrefix.MatchString(arrow.Text()) {
		b.WriteString("async ")
	}
	b.WriteString("function")
	b.WriteString(typeParams)
	b.WriteString(params)
	b.WriteString(fieldText(arrow, "return_type"))
	b.WriteByte(' ')

	if body.Type() == classify.TypeStatementBlock {
		text := body.Text()
		b.WriteString(text)
		if !strings.HasSuffix(strings.TrimSpace(text), "}") {
			b.WriteString(" }")
		}
	} else {
		fmt.Fprintf(&b, "{ return %s; }", body.Text())
	}
	return b.String(), nil
}

// FunctionToArrow renders a function expression as an arrow function. A
// single bare identifier parameter loses its parentheses, and a body that is
// exactly one return statement becomes an expression body.
func FunctionToArrow(fn syntax.Node) (string, error) {
	params := fn.ChildByField("parameters")
	body := fn.ChildByField("body")
	if params == nil || body == nil {
		return "", fmt.Errorf("malformed function expression: %w", syntax.ErrNoFunctionAtPoint)
	}
	typeParams := fieldText(fn, "type_parameters")
	returnType := fieldText(fn, "return_type")

	var b strings.Builder
	if asyncPrefix.MatchString(fn.Text()) {
		b.WriteString("async ")
	}
	b.WriteString(typeParams)
	if name, ok := bareParam(params); ok && typeParams == "" && returnType == "" {
		b.WriteString(name)
	} else {
		b.WriteString(params.Text())
	}
	b.WriteString(returnType)
	b.WriteString(" => ")

	if expr := singleReturn(body); expr != nil {
		text := strings.TrimSpace(expr.Text())
		switch expr.Type() {
		case classify.TypeObject, "sequence_expression":
			text = "(" + text + ")"
		}
		b.WriteString(text)
	} else {
		b.WriteString(body.Text())
	}
	return b.String(), nil
}

// bareParam reports whether a formal_parameters node holds exactly one plain
// identifier with no type, default, modifier or destructuring.
func bareParam(params syntax.Node) (string, bool) {
	kids := syntax.NamedChildren(params)
	if len(kids) != 1 {
		return "", false
	}
	p := kids[0]
	switch p.Type() {
	case classify.TypeIdentifier:
		return p.Text(), true
	case "required_parameter":
		pattern := p.ChildByField("pattern")
		if pattern == nil || pattern.Type() != classify.TypeIdentifier {
			return "", false
		}
		if p.ChildByField("type") != nil || p.ChildByField("value") != nil {
			return "", false
		}
		if strings.TrimSpace(p.Text()) != pattern.Text() {
			return "", false
		}
		return pattern.Text(), true
	}
	return "", false
}

// singleReturn returns the argument of the body's only statement when that
// statement is `return <expr>`. Any other named child, comments included,
// keeps the block.
func singleReturn(body syntax.Node) syntax.Node {
	kids := syntax.NamedChildren(body)
	if len(kids) != 1 || kids[0].Type() != classify.TypeReturnStatement {
		return nil
	}
	ret := kids[0]
	if ret.NamedChildCount() != 1 {
		return nil
	}
	return ret.NamedChild(0)
}

func fieldText(n syntax.Node, field string) string {
	if c := n.ChildByField(field); c != nil {
		return c.Text()
	}
	return ""
}
