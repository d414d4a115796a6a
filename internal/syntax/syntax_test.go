package syntax_test

import (
	"testing"

	"github.com/xonecas/tsedit/internal/syntax"
	"github.com/xonecas/tsedit/internal/syntax/syntaxtest"
)

const src = "const a = [1, b];"

func tree() (root, array, b *syntaxtest.Node) {
	b = syntaxtest.New("identifier", src, 14, 15)
	array = syntaxtest.New("array", src, 10, 16).Add(syntaxtest.New("number", src, 11, 12), b)
	decl := syntaxtest.New("variable_declarator", src, 6, 16).Field("value", array)
	stmt := syntaxtest.New("lexical_declaration", src, 0, 17).Add(decl)
	root = syntaxtest.New("program", src, 0, 17).Add(stmt)
	return root, array, b
}

func TestFindAncestor(t *testing.T) {
	_, array, b := tree()

	got := syntax.FindAncestor(b, func(n syntax.Node) bool { return n.Type() == "array" })
	if got != syntax.Node(array) {
		t.Fatalf("FindAncestor = %v, want array", got)
	}

	self := syntax.FindAncestor(b, func(n syntax.Node) bool { return n.Type() == "identifier" })
	if self != syntax.Node(b) {
		t.Errorf("FindAncestor should include the starting node")
	}

	if got := syntax.FindAncestor(b, func(n syntax.Node) bool { return n.Type() == "class_body" }); got != nil {
		t.Errorf("expected nil past the root, got %s", got.Type())
	}
	if got := syntax.FindAncestor(nil, func(syntax.Node) bool { return true }); got != nil {
		t.Errorf("nil start should return nil")
	}
}

func TestCoversAndChildren(t *testing.T) {
	root, array, _ := tree()
	if !syntax.Covers(array, 11, 15) {
		t.Error("array should cover its elements")
	}
	if syntax.Covers(array, 9, 12) {
		t.Error("array should not cover bytes before it")
	}
	kids := syntax.NamedChildren(array)
	if len(kids) != 2 || kids[1].Text() != "b" {
		t.Errorf("NamedChildren = %v", kids)
	}
	if root.Parent() != nil {
		t.Error("root must have no parent")
	}
}
