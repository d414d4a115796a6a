package transform

import (
	"regexp"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/classify"
	"github.com/xonecas/tsedit/internal/locate"
	"github.com/xonecas/tsedit/internal/syntax"
)

// StringToTemplate turns the quoted string at point into a template string.
// Backticks and "${" in the string content are escaped. A template string
// at point is left alone.
func StringToTemplate(b *buffer.Buffer) error {
	tree, err := b.Tree()
	if err != nil {
		return err
	}
	node := locate.ClosestString(tree, b.Point())
	if node == nil {
		return syntax.ErrNotOnString
	}
	if classify.IsTemplateString(node) {
		return nil
	}
	b.Apply(TemplateEdits(node.StartByte(), node.Text()))
	return nil
}

// TemplateEdits returns the edits converting the quoted string lit, which
// starts at offset start, into a template string.
func TemplateEdits(start int, lit string) []buffer.Edit {
	end := start + len(lit)
	edits := []buffer.Edit{{Start: end - 1, End: end, Text: "`"}}
	for i := 1; i < len(lit)-1; i++ {
		c := lit[i]
		needs := c == '`' || (c == '$' && i+1 < len(lit)-1 && lit[i+1] == '{')
		if needs && !escaped(lit, i) {
			edits = append(edits, buffer.Edit{Start: start + i, End: start + i, Text: `\`})
		}
	}
	return append(edits, buffer.Edit{Start: start, End: start + 1, Text: "`"})
}

// escaped reports whether s[i] is preceded by an odd number of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// SplitOrJoinString joins the string at point with an adjacent string
// concatenated by `+`, or, when there is none, splits it at point into two
// strings joined by `+`.
func SplitOrJoinString(b *buffer.Buffer) error {
	tree, err := b.Tree()
	if err != nil {
		return err
	}
	point := b.Point()
	node := locate.ClosestString(tree, point)
	if node == nil || inSubstitution(tree, node, point) {
		return syntax.ErrNotInString
	}

	start, end := node.StartByte(), node.EndByte()
	delim := string(b.CharAt(start))
	q := regexp.QuoteMeta(delim)

	// Joined with the following string.
	forward := regexp.MustCompile(`^` + q + `\s*\+\s*` + q)
	if loc := forward.FindStringIndex(b.Slice(end-1, b.Len())); loc != nil {
		b.Delete(end-1, end-1+loc[1])
		b.SetPoint(end - 1)
		return nil
	}
	// Joined with the preceding string.
	backward := regexp.MustCompile(q + `\s*\+\s*` + q + `$`)
	if loc := backward.FindStringIndex(b.Slice(0, start+1)); loc != nil {
		b.Delete(loc[0], start+1)
		b.SetPoint(loc[0])
		return nil
	}

	at := max(start+1, min(point, end-1))
	sep := delim + " + " + delim
	b.Insert(at, sep)
	b.SetPoint(at + len(sep))
	return nil
}

// inSubstitution reports whether point is inside a ${...} of the template
// string node rather than in its literal text.
func inSubstitution(tree syntax.Tree, node syntax.Node, point int) bool {
	if !classify.IsTemplateString(node) {
		return false
	}
	sub := syntax.FindAncestor(tree.NodeAt(point), func(n syntax.Node) bool {
		return n.Type() == "template_substitution"
	})
	return sub != nil && sub.StartByte() > node.StartByte() && syntax.Covers(node, sub.StartByte(), sub.EndByte())
}
