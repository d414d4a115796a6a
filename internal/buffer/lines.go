package buffer

import "strings"

// Lines are 0-indexed. A line's end excludes its newline.

// LineCount returns the number of lines; an empty buffer has one.
func (b *Buffer) LineCount() int {
	return strings.Count(b.text, "\n") + 1
}

// LineOf returns the line holding offset.
func (b *Buffer) LineOf(offset int) int {
	return strings.Count(b.text[:b.clamp(offset)], "\n")
}

// LineStart returns the offset of the first byte of line.
func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	off := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(b.text[off:], '\n')
		if nl < 0 {
			return len(b.text)
		}
		off += nl + 1
	}
	return off
}

// LineEnd returns the offset of line's newline, or the buffer end.
func (b *Buffer) LineEnd(line int) int {
	start := b.LineStart(line)
	if nl := strings.IndexByte(b.text[start:], '\n'); nl >= 0 {
		return start + nl
	}
	return len(b.text)
}

// LineText returns the content of line without its newline.
func (b *Buffer) LineText(line int) string {
	return b.text[b.LineStart(line):b.LineEnd(line)]
}

// Column returns point's byte offset from the start of its line.
func (b *Buffer) Column() int {
	return b.point - b.LineStart(b.LineOf(b.point))
}

// FirstNonSpace returns the offset of the first non-blank byte of line, or
// the line end for blank lines.
func (b *Buffer) FirstNonSpace(line int) int {
	start, end := b.LineStart(line), b.LineEnd(line)
	for i := start; i < end; i++ {
		if b.text[i] != ' ' && b.text[i] != '\t' {
			return i
		}
	}
	return end
}

// SwapLines exchanges the contents of line and line+1. It reports false when
// line+1 does not exist.
func (b *Buffer) SwapLines(line int) bool {
	if line < 0 || line+1 >= b.LineCount() {
		return false
	}
	upper, lower := b.LineText(line), b.LineText(line+1)
	b.ReplaceLines(line, lower, upper)
	return true
}

// ReplaceLines rewrites line and line+1 with upper and lower. Point and mark
// are left for the caller to position.
func (b *Buffer) ReplaceLines(line int, upper, lower string) {
	start, end := b.LineStart(line), b.LineEnd(line+1)
	b.Replace(start, end, upper+"\n"+lower)
}

// IndentLine re-indents line using the buffer's indenter. A point inside the
// old indentation moves to the end of the new one.
func (b *Buffer) IndentLine(line int) {
	start := b.LineStart(line)
	first := b.FirstNonSpace(line)
	want := b.indent.Indent(b.text, line)
	if b.text[start:first] == want {
		return
	}
	inIndent := b.point >= start && b.point <= first
	b.Replace(start, first, want)
	if inIndent {
		b.point = start + len(want)
	}
}
