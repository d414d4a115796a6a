// Package syntaxtest provides a hand-built syntax.Node for tests that do not
// need a real parser.
package syntaxtest

import "github.com/xonecas/tsedit/internal/syntax"

// Node is an in-memory syntax.Node. Build trees with New and Add.
type Node struct {
	Kind     string
	Anon     bool
	Start    int
	End      int
	Src      string
	Fields   map[string]*Node
	Children []*Node

	parent *Node
}

// New returns a named node spanning [start, end) of src.
func New(kind, src string, start, end int) *Node {
	return &Node{Kind: kind, Src: src, Start: start, End: end}
}

// Add appends children and sets their parent. It returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Field registers c under name and adds it as a child.
func (n *Node) Field(name string, c *Node) *Node {
	if n.Fields == nil {
		n.Fields = make(map[string]*Node)
	}
	n.Fields[name] = c
	return n.Add(c)
}

func (n *Node) Type() string   { return n.Kind }
func (n *Node) IsNamed() bool  { return !n.Anon }
func (n *Node) StartByte() int { return n.Start }
func (n *Node) EndByte() int   { return n.End }
func (n *Node) Text() string   { return n.Src[n.Start:n.End] }

func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ChildByField(name string) syntax.Node {
	if c, ok := n.Fields[name]; ok {
		return c
	}
	return nil
}

func (n *Node) NamedChildCount() int {
	count := 0
	for _, c := range n.Children {
		if !c.Anon {
			count++
		}
	}
	return count
}

func (n *Node) NamedChild(i int) syntax.Node {
	for _, c := range n.Children {
		if c.Anon {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}
