package locate

import (
	"strings"

	"github.com/xonecas/tsedit/internal/syntax"
)

// LineContext describes one line for comma-aware line moves.
type LineContext struct {
	IsListItem       bool
	HasTrailingComma bool
}

// Line computes the context of line from the node at its first non-blank
// column. Lines outside the buffer get the zero context.
func Line(src Source, tree syntax.Tree, line int) LineContext {
	if line < 0 || line >= src.LineCount() {
		return LineContext{}
	}
	text := src.LineText(line)
	ctx := LineContext{HasTrailingComma: HasTrailingComma(text)}
	if strings.TrimSpace(text) == "" {
		return ctx
	}
	col := src.FirstNonSpace(line)
	if node := tree.NodeAt(col); node != nil {
		ctx.IsListItem = isListItem(tree, node, col)
	}
	return ctx
}

// HasTrailingComma reports whether the code on a line ends with a comma,
// ignoring trailing blanks and a trailing line comment.
func HasTrailingComma(text string) bool {
	code, _ := SplitTrailingComment(text)
	return strings.HasSuffix(strings.TrimRight(code, " \t\r"), ",")
}

// SplitTrailingComment splits a line at the start of a `//` comment that is
// not inside a string literal.
func SplitTrailingComment(line string) (code, comment string) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i], line[i:]
		}
	}
	return line, ""
}

// isListItem reports whether the token at col begins an element of an array
// or object literal. An opening bracket counts only when its own container is
// such an element.
func isListItem(tree syntax.Tree, node syntax.Node, col int) bool {
	switch node.Type() {
	case "]", "}", ")", "comment":
		return false
	}
	item := ClosestListItem(tree, col)
	return item != nil && item.StartByte() == col
}
