// Package locate finds the syntax nodes and offsets a command acts on: what
// to log and where, the closest enclosing function or string, and whether a
// line is an element of an array or object literal.
package locate

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/tsedit/internal/classify"
	"github.com/xonecas/tsedit/internal/syntax"
)

// Unknown is logged when nothing better can be extracted at point.
const Unknown = "unknown"

// Source is the buffer state the locator reads. *buffer.Buffer satisfies it.
type Source interface {
	Tree() (syntax.Tree, error)
	Point() int
	Selection() (start, end int, ok bool)
	Slice(start, end int) string
	LineCount() int
	LineOf(offset int) int
	LineEnd(line int) int
	LineText(line int) string
	FirstNonSpace(line int) int
}

// LogTarget is the expression to log and the offset after which the log
// statement goes.
type LogTarget struct {
	Expr string
	Pos  int
	// Function is set when Pos is the opening brace of a function body.
	Function bool
}

// ResolveLogTarget decides what to log for the current selection or point.
// When nothing suitable is at point it returns a best-effort target together
// with syntax.ErrNoSuitableNode; callers may still use the target.
func ResolveLogTarget(src Source) (LogTarget, error) {
	tree, err := src.Tree()
	if err != nil {
		return LogTarget{}, err
	}

	if start, end, ok := src.Selection(); ok {
		return LogTarget{
			Expr: src.Slice(start, end),
			Pos:  statementEnd(src, tree.NodeAt(start), start, end),
		}, nil
	}

	point := src.Point()
	node := tree.NodeAt(point)
	if node == nil {
		return LogTarget{Expr: Unknown, Pos: src.LineEnd(src.LineOf(point))}, syntax.ErrNoSuitableNode
	}

	parent := node.Parent()
	if parent != nil && classify.IsFunctionDeclOrExpr(parent) {
		name, body := parent.ChildByField("name"), parent.ChildByField("body")
		if name != nil && body != nil {
			return LogTarget{Expr: name.Text(), Pos: body.StartByte(), Function: true}, nil
		}
	}

	target := LogTarget{Pos: statementEnd(src, node, point, point)}
	switch {
	case classify.IsIdentifier(node):
		target.Expr = node.Text()
	case parent != nil && classify.IsMemberAccess(parent):
		target.Expr = parent.Text()
	case parent != nil && classify.IsFieldOrMethodDefinition(parent):
		if name := parent.ChildByField("name"); name != nil {
			target.Expr = name.Text()
		}
	}
	if target.Expr != "" {
		return target, nil
	}

	// Punctuation and keywords would not parse as an argument.
	if node.IsNamed() {
		target.Expr = strings.TrimSpace(node.Text())
	}
	if target.Expr == "" {
		target.Expr = Unknown
		return target, syntax.ErrNoSuitableNode
	}
	log.Debug().Str("type", node.Type()).Msg("logging raw node text")
	return target, nil
}

// statementEnd returns the end of the nearest statement-like ancestor of node
// covering [start, end), or the end of the line holding end.
func statementEnd(src Source, node syntax.Node, start, end int) int {
	stmt := syntax.FindAncestor(node, func(n syntax.Node) bool {
		return classify.IsStatementLike(n) && syntax.Covers(n, start, end)
	})
	if stmt == nil {
		return src.LineEnd(src.LineOf(end))
	}
	if loop := headerOf(stmt); loop != nil {
		if body := loop.ChildByField("body"); body != nil && body.Type() == classify.TypeStatementBlock {
			return body.StartByte()
		}
		return loop.EndByte()
	}
	return stmt.EndByte()
}

// headerOf returns the for loop whose header holds n, such as the
// `let i = 0;` initializer, or nil.
func headerOf(n syntax.Node) syntax.Node {
	loop := n.Parent()
	if loop == nil || !classify.IsForLoop(loop) {
		return nil
	}
	if body := loop.ChildByField("body"); body != nil && body.StartByte() == n.StartByte() && body.EndByte() == n.EndByte() {
		return nil
	}
	return loop
}

// ClosestFunction returns the innermost function-like node at offset.
func ClosestFunction(tree syntax.Tree, offset int) syntax.Node {
	return syntax.FindAncestor(tree.NodeAt(offset), classify.IsFunctionLike)
}

// ClosestArrowOrFunction returns the innermost arrow function or function
// expression at offset.
func ClosestArrowOrFunction(tree syntax.Tree, offset int) syntax.Node {
	return syntax.FindAncestor(tree.NodeAt(offset), classify.IsArrowOrFunctionExpression)
}

// ClosestString returns the innermost string or template string at offset.
func ClosestString(tree syntax.Tree, offset int) syntax.Node {
	return syntax.FindAncestor(tree.NodeAt(offset), classify.IsStringLike)
}

// ClosestListItem returns the innermost direct element of an array or object
// literal at offset.
func ClosestListItem(tree syntax.Tree, offset int) syntax.Node {
	return syntax.FindAncestor(tree.NodeAt(offset), func(n syntax.Node) bool {
		return n.IsNamed() && classify.IsListContainerChild(n)
	})
}
