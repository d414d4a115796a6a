package diffview

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Palette holds status-line colours taken from the theme entries that
// Colorize uses for diff lines, so a success line matches the "+" lines.
type Palette struct {
	Added   string // GenericInserted
	Removed string // GenericDeleted
	Muted   string // Comment
	Heading string // GenericHeading
}

var defaultPalette = Palette{
	Added:   "#3fb950",
	Removed: "#f85149",
	Muted:   "#8b949e",
	Heading: "#c8c8c8",
}

// ThemePalette derives a Palette from a Chroma theme name. Unknown themes
// and unset entries fall back to the defaults.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil || sty.Name != theme {
		return defaultPalette
	}
	return Palette{
		Added:   colour(sty, chroma.GenericInserted, defaultPalette.Added),
		Removed: colour(sty, chroma.GenericDeleted, defaultPalette.Removed),
		Muted:   colour(sty, chroma.Comment, defaultPalette.Muted),
		Heading: colour(sty, chroma.GenericHeading, defaultPalette.Heading),
	}
}

func colour(sty *chroma.Style, tt chroma.TokenType, fallback string) string {
	if e := sty.Get(tt); e.Colour.IsSet() {
		return e.Colour.String()
	}
	return fallback
}
