package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

type styles struct {
	title       lipgloss.Style
	quote       lipgloss.Style
	statValue   lipgloss.Style
	statLabel   lipgloss.Style
	separator   lipgloss.Style
	section     lipgloss.Style
	lived       lipgloss.Style
	livedEarly  lipgloss.Style
	livedRecent lipgloss.Style
	current     lipgloss.Style
	future      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		quote:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(config.ColorMuted)),
		statValue:   lipgloss.NewStyle().Bold(true),
		statLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted)),
		separator:   lipgloss.NewStyle().Faint(true),
		section:     lipgloss.NewStyle().MarginTop(1),
		lived:       lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorLived)),
		livedEarly:  lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorLivedEarly)),
		livedRecent: lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorLivedRecent)),
		current:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(config.ColorCurrent)),
		future:      lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorFaint)),
	}
}

// cell returns the style and glyph of a week.
func (s styles) cell(c engine.WeekCell) (lipgloss.Style, string) {
	switch c.Status {
	case engine.StatusCurrent:
		return s.current, config.GlyphCurrent
	case engine.StatusFuture:
		return s.future, config.GlyphFuture
	}
	switch c.Bucket {
	case engine.BucketEarly:
		return s.livedEarly, config.GlyphLived
	case engine.BucketRecent:
		return s.livedRecent, config.GlyphLived
	}
	return s.lived, config.GlyphLived
}
