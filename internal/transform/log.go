// Package transform implements the rewriting commands. Each operation reads a
// fresh syntax tree from the buffer, computes its edits, and only then
// mutates the buffer; a returned error means nothing was changed.
package transform

import (
	"fmt"
	"strings"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/locate"
	"github.com/xonecas/tsedit/internal/syntax"
)

// LogStyle selects the shape of inserted log statements.
type LogStyle int

const (
	LogPlain LogStyle = iota
	LogPretty
	LogDebug
)

// LogFuncs names the functions emitted by log insertion.
type LogFuncs struct {
	Log   string // plain label + value
	Debug string // debug-level variant
	Dir   string // deep, colourised dump used by LogPretty
}

// DefaultLogFuncs targets the console API.
var DefaultLogFuncs = LogFuncs{
	Log:   "console.log",
	Debug: "console.debug",
	Dir:   "console.dir",
}

// LogStatements renders the statements that log expr.
func LogStatements(expr string, style LogStyle, f LogFuncs) []string {
	label := quote(expr + " = ")
	switch style {
	case LogPretty:
		return []string{
			fmt.Sprintf("%s(%s);", f.Log, label),
			fmt.Sprintf("%s(%s, { depth: null, colors: true });", f.Dir, expr),
		}
	case LogDebug:
		return []string{fmt.Sprintf("%s(%s, %s);", f.Debug, label, expr)}
	default:
		return []string{fmt.Sprintf("%s(%s, %s);", f.Log, label, expr)}
	}
}

// InsertLog inserts log statements for target on new lines after
// target.Pos and indents them.
func InsertLog(b *buffer.Buffer, target locate.LogTarget, style LogStyle, f LogFuncs) error {
	if !b.HasParser() {
		return syntax.ErrNoParserAvailable
	}

	pos := target.Pos
	if c := b.CharAt(pos); c != 0 && strings.IndexByte(";,{}", c) >= 0 {
		pos++
	}
	// Keep a trailing comment on the statement it annotates.
	line := b.LineOf(pos)
	if rest := strings.TrimSpace(b.Slice(pos, b.LineEnd(line))); rest == "" || strings.HasPrefix(rest, "//") {
		pos = b.LineEnd(line)
	}

	text := "\n" + strings.Join(LogStatements(target.Expr, style, f), "\n")
	b.Insert(pos, text)
	// A multi-line expression spans several lines per statement.
	for i := 1; i <= strings.Count(text, "\n"); i++ {
		b.IndentLine(line + i)
	}
	return nil
}

// quote renders s as a double-quoted string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
