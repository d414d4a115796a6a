package treesitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/xonecas/tsedit/internal/syntax"
)

// ErrUnsupported is returned when no grammar is registered for a file.
var ErrUnsupported = errors.New("unsupported file type")

// langForExt returns the tree-sitter language for a file extension, or nil.
func langForExt(ext string) *sitter.Language {
	switch ext {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	default:
		return nil
	}
}

// Supported returns true if the file extension has a tree-sitter grammar.
func Supported(path string) bool {
	return langForExt(strings.ToLower(filepath.Ext(path))) != nil
}

// ParseFile reads and parses a file.
func ParseFile(path string) (*Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, src)
}

// Parse parses src with the grammar selected by the extension of path.
func Parse(path string, src []byte) (*Tree, error) {
	lang := langForExt(strings.ToLower(filepath.Ext(path)))
	if lang == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	return &Tree{tree: tree, src: src}, nil
}

// ParserFor returns a parse function for path suitable for buffer.WithParser,
// or nil when the file type has no grammar.
func ParserFor(path string) func([]byte) (syntax.Tree, error) {
	if !Supported(path) {
		return nil
	}
	return func(src []byte) (syntax.Tree, error) {
		t, err := Parse(path, src)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Tree is a parsed source file. It implements syntax.Tree.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Close releases the underlying tree. Nodes obtained from t are invalid
// afterwards.
func (t *Tree) Close() {
	t.tree.Close()
}

// Root returns the root node.
func (t *Tree) Root() syntax.Node {
	return wrap(t.tree.RootNode(), t.src)
}

// HasError reports whether the parse produced ERROR or MISSING nodes.
func (t *Tree) HasError() bool {
	return t.tree.RootNode().HasError()
}

// NodeAt returns the smallest node (named or anonymous) containing offset.
// An offset on whitespace resolves to the following token, or the preceding
// one at the end of the source.
func (t *Tree) NodeAt(offset int) syntax.Node {
	if len(t.src) == 0 {
		return nil
	}
	offset = skipSpace(t.src, offset)

	n := t.tree.RootNode()
	target := uint32(offset)
	for {
		var next *sitter.Node
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			child := n.Child(i)
			if child == nil {
				continue
			}
			if child.StartByte() <= target && target < child.EndByte() {
				next = child
				break
			}
		}
		if next == nil {
			return wrap(n, t.src)
		}
		n = next
	}
}

func skipSpace(src []byte, offset int) int {
	if offset < 0 {
		offset = 0
	}
	i := offset
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	if i < len(src) {
		return i
	}
	// Trailing whitespace: fall back to the last token.
	i = min(offset, len(src)) - 1
	for i > 0 && isSpace(src[i]) {
		i--
	}
	return max(i, 0)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// node adapts *sitter.Node to syntax.Node.
type node struct {
	n   *sitter.Node
	src []byte
}

// wrap keeps nil nodes as a nil interface rather than a typed nil.
func wrap(n *sitter.Node, src []byte) syntax.Node {
	if n == nil {
		return nil
	}
	return node{n: n, src: src}
}

func (n node) Type() string   { return n.n.Type() }
func (n node) IsNamed() bool  { return n.n.IsNamed() }
func (n node) StartByte() int { return int(n.n.StartByte()) }
func (n node) EndByte() int   { return int(n.n.EndByte()) }
func (n node) Text() string   { return content(n.n, n.src) }

func (n node) Parent() syntax.Node {
	return wrap(n.n.Parent(), n.src)
}

func (n node) ChildByField(name string) syntax.Node {
	return wrap(n.n.ChildByFieldName(name), n.src)
}

func (n node) NamedChildCount() int {
	return int(n.n.NamedChildCount())
}

func (n node) NamedChild(i int) syntax.Node {
	return wrap(n.n.NamedChild(i), n.src)
}

// helpers

func content(node *sitter.Node, src []byte) string {
	return node.Content(src)
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1 // 1-indexed
}

func endLine(node *sitter.Node) int {
	return int(node.EndPoint().Row) + 1
}
