package main

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/tsedit/internal/diffview"
)

// styles renders status lines. With colour off every style is the identity.
type styles struct {
	on      bool
	ok      lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
	heading lipgloss.Style
}

func newStyles(p diffview.Palette, on bool) styles {
	return styles{
		on:      on,
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Added)),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Removed)).Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Heading)).Bold(true),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.on {
		return text
	}
	return st.Render(text)
}

func (s styles) success(text string) string { return s.render(s.ok, text) }
func (s styles) failure(text string) string { return s.render(s.err, text) }
func (s styles) muted(text string) string   { return s.render(s.dim, text) }
func (s styles) title(text string) string   { return s.render(s.heading, text) }

// pad right-pads text to width cells.
func pad(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}
