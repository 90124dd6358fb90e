// Package render draws the summary and the week grid for a terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Translator supplies the localized labels.
type Translator interface {
	Msg(key string) string
	Number(n int) string
}

type Options struct {
	ShowGrid bool
}

// Render returns the title, quote, statistics line and, optionally, one grid
// row of 52 glyphs per year.
func Render(s engine.Snapshot, tr Translator, opts Options) string {
	st := newStyles()
	lines := []string{
		st.title.Render(tr.Msg(config.TKeyAppTitle)),
		st.quote.Render(tr.Msg(config.TKeyQuote)),
		st.section.Render(statsLine(s.Summary(), tr, st)),
	}
	if opts.ShowGrid {
		lines = append(lines, st.section.Render(grid(s, st)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statsLine(sum engine.Summary, tr Translator, st styles) string {
	stats := []struct{ value, label string }{
		{tr.Number(sum.Age), tr.Msg(config.TKeyStatYears)},
		{tr.Number(sum.WeeksLived), tr.Msg(config.TKeyStatWeeksLived)},
		{tr.Number(sum.WeeksRemaining), tr.Msg(config.TKeyStatWeeksAhead)},
		{sum.PercentageLabel() + "%", tr.Msg(config.TKeyStatOfJourney)},
	}
	parts := make([]string, 0, len(stats))
	for _, stat := range stats {
		parts = append(parts, st.statValue.Render(stat.value)+" "+st.statLabel.Render(stat.label))
	}
	return strings.Join(parts, st.separator.Render(config.StatsSeparator))
}

// grid renders runs of identically styled cells in one Render call.
func grid(s engine.Snapshot, st styles) string {
	rows := make([]string, 0, s.Lifespan.Years())
	var row, run strings.Builder
	var runStyle lipgloss.Style
	runKey := ""

	flush := func() {
		if run.Len() > 0 {
			row.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}
	}

	for c := range s.Cells() {
		style, glyph := st.cell(c)
		key := string(c.Status) + "/" + string(c.Bucket)
		if key != runKey {
			flush()
			runStyle, runKey = style, key
		}
		run.WriteString(glyph)

		if c.Column() == config.WeeksPerYear-1 {
			flush()
			rows = append(rows, row.String())
			row.Reset()
			runKey = ""
		}
	}
	return strings.Join(rows, "\n")
}
