// Package syntax defines the read-only view of a concrete syntax tree that the
// refactoring commands operate on. Trees are owned by a parser implementation
// (see internal/treesitter); this package never builds or mutates nodes.
package syntax

// Node is a handle on a single syntax tree node. Offsets are byte offsets into
// the source the tree was parsed from.
type Node interface {
	Type() string
	IsNamed() bool
	StartByte() int
	EndByte() int
	Text() string
	// Parent returns nil at the root.
	Parent() Node
	// ChildByField returns nil when the field is absent.
	ChildByField(name string) Node
	NamedChildCount() int
	NamedChild(i int) Node
}

// Tree answers positional queries over one parse of a buffer.
type Tree interface {
	Root() Node
	// NodeAt returns the leaf at offset. Whitespace resolves to the next
	// token; nil is returned for empty sources.
	NodeAt(offset int) Node
}

// FindAncestor walks from n (inclusive) up through its parents and returns the
// first node satisfying pred, or nil once the root has been passed.
func FindAncestor(n Node, pred func(Node) bool) Node {
	for ; n != nil; n = n.Parent() {
		if pred(n) {
			return n
		}
	}
	return nil
}

// Covers reports whether n spans the byte range [start, end).
func Covers(n Node, start, end int) bool {
	return n.StartByte() <= start && end <= n.EndByte()
}

// NamedChildren returns the named children of n in source order.
func NamedChildren(n Node) []Node {
	count := n.NamedChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}
