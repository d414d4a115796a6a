package transform

import (
	"errors"
	"strings"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/locate"
	"github.com/xonecas/tsedit/internal/syntax"
)

// MoveLineDown swaps the current line with the next one.
func MoveLineDown(b *buffer.Buffer) error {
	return moveLine(b, 1)
}

// MoveLineUp swaps the current line with the previous one.
func MoveLineUp(b *buffer.Buffer) error {
	return moveLine(b, -1)
}

// moveLine swaps the current line with its neighbour in dir. When both are
// elements of a list literal, trailing commas stay with their slot so only
// the last element lacks one. Point keeps its column on the moved line, which
// is then re-indented. Buffers without a parser get plain swaps.
func moveLine(b *buffer.Buffer, dir int) error {
	cur := b.LineOf(b.Point())
	other := cur + dir
	if other < 0 || other >= b.LineCount() {
		return nil
	}
	// Never swap a line with the empty line after a final newline.
	if other == b.LineCount()-1 && b.LineText(other) == "" {
		return nil
	}
	col := b.Column()

	var curCtx, otherCtx locate.LineContext
	tree, err := b.Tree()
	switch {
	case err == nil:
		curCtx = locate.Line(b, tree, cur)
		otherCtx = locate.Line(b, tree, other)
	case !errors.Is(err, syntax.ErrNoParserAvailable):
		return err
	}

	upper := min(cur, other)
	if curCtx.IsListItem && otherCtx.IsListItem {
		up, low := b.LineText(upper), b.LineText(upper+1)
		b.ReplaceLines(upper,
			withComma(low, locate.HasTrailingComma(up)),
			withComma(up, locate.HasTrailingComma(low)))
	} else {
		b.SwapLines(upper)
	}

	b.SetPoint(b.LineStart(other) + min(col, len(b.LineText(other))))
	b.IndentLine(other)
	return nil
}

// withComma returns line with its trailing comma added or removed so that it
// matches want. A trailing line comment is kept after the comma.
func withComma(line string, want bool) string {
	code, comment := locate.SplitTrailingComment(line)
	trimmed := strings.TrimRight(code, " \t\r")
	gap := code[len(trimmed):]
	has := strings.HasSuffix(trimmed, ",")
	switch {
	case has == want:
		return line
	case want:
		trimmed += ","
	default:
		trimmed = strings.TrimSuffix(trimmed, ",")
	}
	if comment == "" {
		return trimmed
	}
	return trimmed + gap + comment
}
