// Package diffview renders the change a command makes to a file as a
// unified diff, optionally coloured with Chroma for terminal output.
package diffview

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff between before and after, labelled with
// a/ and b/ prefixes of path. Identical inputs give "".
func Unified(path, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+path, "b/"+path, before, edits))
}

// Colorize highlights a unified diff using the given Chroma theme. The text
// is returned unchanged if the theme or lexer cannot be loaded.
func Colorize(diff, theme string) string {
	return Highlight(diff, "diff", theme)
}

// Highlight returns an ANSI-highlighted version of text using the given
// Chroma language and theme.
func Highlight(text, language, theme string) string {
	lex := lexers.Get(language)
	if lex == nil || text == "" {
		return text
	}
	lex = chroma.Coalesce(lex)
	sty := styles.Get(theme)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, sty, it); err != nil {
		return text
	}
	return buf.String()
}

// Stats counts added and removed lines in a unified diff.
func Stats(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}
