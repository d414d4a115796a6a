package buffer

import "strings"

// Indenter computes the leading whitespace a line should have.
type Indenter interface {
	Indent(text string, line int) string
}

// BraceIndenter indents one Unit per line that left brackets open before
// the line, so `f({` adds a single level. A line starting with closing
// brackets is outdented accordingly. String, template and comment contents
// are skipped.
type BraceIndenter struct {
	Unit string
}

func (bi BraceIndenter) Indent(text string, line int) string {
	start := lineStartIn(text, line)
	open := openBrackets(text[:start])

	rest := strings.TrimLeft(text[start:], " \t")
	for _, c := range []byte(rest) {
		if (c != '}' && c != ']' && c != ')') || len(open) == 0 {
			break
		}
		open = open[:len(open)-1]
	}
	return strings.Repeat(bi.Unit, distinct(open))
}

// distinct counts the distinct values of a non-decreasing slice.
func distinct(lines []int) int {
	n := 0
	for i, l := range lines {
		if i == 0 || l != lines[i-1] {
			n++
		}
	}
	return n
}

func lineStartIn(text string, line int) int {
	off := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return len(text)
		}
		off += nl + 1
	}
	return off
}

type scanState int

const (
	stCode scanState = iota
	stSingle
	stDouble
	stTemplate
	stLineComment
	stBlockComment
)

// openBrackets returns, for each bracket opened and not yet closed in src,
// the line it was opened on.
func openBrackets(src string) []int {
	var open []int
	line := 0
	state := stCode
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			line++
		}
		switch state {
		case stCode:
			switch c {
			case '{', '[', '(':
				open = append(open, line)
			case '}', ']', ')':
				if len(open) > 0 {
					open = open[:len(open)-1]
				}
			case '\'':
				state = stSingle
			case '"':
				state = stDouble
			case '`':
				state = stTemplate
			case '/':
				if i+1 < len(src) && src[i+1] == '/' {
					state = stLineComment
					i++
				} else if i+1 < len(src) && src[i+1] == '*' {
					state = stBlockComment
					i++
				}
			}
		case stSingle, stDouble, stTemplate:
			if c == '\\' {
				if i+1 < len(src) && src[i+1] == '\n' {
					line++
				}
				i++
				continue
			}
			if (state == stSingle && c == '\'') || (state == stDouble && c == '"') || (state == stTemplate && c == '`') {
				state = stCode
			}
			// An unterminated quote ends at the line break.
			if c == '\n' && state != stTemplate {
				state = stCode
			}
		case stLineComment:
			if c == '\n' {
				state = stCode
			}
		case stBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stCode
				i++
			}
		}
	}
	return open
}
