// Package buffer is an in-memory text buffer with a point, an optional
// selection and a lazily re-parsed syntax tree. It plays the part of the
// host editor for the refactoring commands.
package buffer

import (
	"sort"
	"strings"

	"github.com/xonecas/tsedit/internal/syntax"
)

// ParseFunc parses a buffer's full text.
type ParseFunc func(src []byte) (syntax.Tree, error)

// Edit replaces the bytes [Start, End) with Text. A transform produces a set
// of edits that is applied as one unit.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithParser attaches a parser. Without one, Tree reports
// syntax.ErrNoParserAvailable.
func WithParser(p ParseFunc) Option {
	return func(b *Buffer) {
		b.parse = p
	}
}

// WithIndenter replaces the default brace-depth indenter.
func WithIndenter(i Indenter) Option {
	return func(b *Buffer) {
		if i != nil {
			b.indent = i
		}
	}
}

// WithPath records the file the buffer was loaded from.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// Buffer holds text plus cursor state. Offsets are bytes.
type Buffer struct {
	path string
	text string

	point      int
	mark       int
	markActive bool

	parse ParseFunc
	tree  syntax.Tree
	stale bool

	indent Indenter
}

// New creates a buffer holding text with point at 0.
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{
		text:   text,
		stale:  true,
		indent: BraceIndenter{Unit: "  "},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Buffer) Text() string { return b.text }
func (b *Buffer) Len() int     { return len(b.text) }
func (b *Buffer) Path() string { return b.path }

// Slice returns the text in [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// CharAt returns the byte at offset, or 0 outside the buffer.
func (b *Buffer) CharAt(offset int) byte {
	if offset < 0 || offset >= len(b.text) {
		return 0
	}
	return b.text[offset]
}

func (b *Buffer) Point() int { return b.point }

// SetPoint moves point, clamped to the buffer.
func (b *Buffer) SetPoint(p int) {
	b.point = b.clamp(p)
}

// SetMark sets the mark and activates the selection between mark and point.
func (b *Buffer) SetMark(m int) {
	b.mark = b.clamp(m)
	b.markActive = true
}

// Deactivate clears the active selection.
func (b *Buffer) Deactivate() {
	b.markActive = false
}

// Selection returns the active region ordered start <= end. ok is false when
// no selection is active or it is empty.
func (b *Buffer) Selection() (start, end int, ok bool) {
	if !b.markActive || b.mark == b.point {
		return 0, 0, false
	}
	return min(b.mark, b.point), max(b.mark, b.point), true
}

// HasParser reports whether a syntax tree can be produced.
func (b *Buffer) HasParser() bool {
	return b.parse != nil
}

// Tree returns a syntax tree for the current text, re-parsing after edits.
func (b *Buffer) Tree() (syntax.Tree, error) {
	if b.parse == nil {
		return nil, syntax.ErrNoParserAvailable
	}
	if b.stale || b.tree == nil {
		tree, err := b.parse([]byte(b.text))
		if err != nil {
			return nil, err
		}
		b.tree = tree
		b.stale = false
	}
	return b.tree, nil
}

// Replace substitutes text for [start, end). Point and mark after the
// replaced range shift with it; inside the range they collapse to start.
func (b *Buffer) Replace(start, end int, text string) {
	start, end = b.clamp(start), b.clamp(end)
	if end < start {
		start, end = end, start
	}
	b.text = b.text[:start] + text + b.text[end:]
	b.stale = true

	delta := len(text) - (end - start)
	b.point = adjust(b.point, start, end, delta)
	b.mark = adjust(b.mark, start, end, delta)
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete removes [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Apply performs edits from the end of the buffer backwards so earlier
// offsets stay valid. Edits must not overlap.
func (b *Buffer) Apply(edits []Edit) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})
	for _, e := range sorted {
		b.Replace(e.Start, e.End, e.Text)
	}
}

func adjust(pos, start, end, delta int) int {
	switch {
	case pos >= end && pos > start:
		return pos + delta
	case pos > start:
		return start
	}
	return pos
}

func (b *Buffer) clamp(p int) int {
	return max(0, min(p, len(b.text)))
}

// String renders the buffer with a "|" at point, for debugging and tests.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(b.text[:b.point])
	sb.WriteByte('|')
	sb.WriteString(b.text[b.point:])
	return sb.String()
}
