// Package export renders the shareable 1080×1350 PNG of the week grid.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"sync"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Translator supplies the localized labels drawn on the image.
type Translator interface {
	Msg(key string) string
	Number(n int) string
}

type typefaces struct {
	regular *opentype.Font
	italic  *opentype.Font
}

var loadTypefaces = sync.OnceValues(func() (typefaces, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return typefaces{}, err
	}
	italic, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return typefaces{}, err
	}
	return typefaces{regular: regular, italic: italic}, nil
})

// Render draws the snapshot and encodes it as PNG into w.
func Render(w io.Writer, s engine.Snapshot, tr Translator) error {
	img, err := Draw(s, tr)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportEncode, err)
	}
	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyWeeks, s.TotalWeeks(),
	)
	return nil
}

// Draw lays out the quote, the four statistics, the grid and the footer.
func Draw(s engine.Snapshot, tr Translator) (*image.RGBA, error) {
	tf, err := loadTypefaces()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrExportFont, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, config.ExportWidth, config.ExportHeight))
	p := DefaultPalette
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	faces := []struct {
		font *opentype.Font
		size float64
	}{
		{tf.italic, config.ExportFontQuote},
		{tf.regular, config.ExportFontValue},
		{tf.regular, config.ExportFontLabel},
		{tf.regular, config.ExportFontFooter},
	}
	opened := make([]font.Face, 0, len(faces))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, f := range faces {
		face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     config.ExportFontDPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrExportFont, err)
		}
		opened = append(opened, face)
	}
	quoteFace, valueFace, labelFace, footerFace := opened[0], opened[1], opened[2], opened[3]

	center := config.ExportWidth / 2
	drawCentered(img, quoteFace, tr.Msg(config.TKeyQuote), center, config.ExportQuoteBaseline, p.Muted)

	sum := s.Summary()
	stats := []struct{ value, label string }{
		{tr.Number(sum.Age), tr.Msg(config.TKeyStatYears)},
		{tr.Number(sum.WeeksLived), tr.Msg(config.TKeyStatWeeksLived)},
		{tr.Number(sum.WeeksRemaining), tr.Msg(config.TKeyStatWeeksAhead)},
		{sum.PercentageLabel() + "%", tr.Msg(config.TKeyStatOfJourney)},
	}
	rowWidth := len(stats)*config.ExportStatColumn + (len(stats)-1)*config.ExportStatGap
	x := (config.ExportWidth-rowWidth)/2 + config.ExportStatColumn/2
	for _, st := range stats {
		drawCentered(img, valueFace, st.value, x, config.ExportValueBaseline, p.Text)
		drawCentered(img, labelFace, st.label, x, config.ExportLabelBaseline, p.Muted)
		x += config.ExportStatColumn + config.ExportStatGap
	}

	drawGrid(img, s, p)

	drawCentered(img, footerFace, tr.Msg(config.TKeyFooter), center, config.ExportFooterBaseline, p.Faint)
	return img, nil
}

// GridLayout is the geometry of the week grid inside the image. The pitch
// shrinks below config.ExportCellPitch when the lifespan has too many rows
// to fit.
type GridLayout struct {
	Pitch int
	Cell  int
	Left  int
	Top   int
}

// LayoutGrid computes the grid geometry for the given number of year rows.
func LayoutGrid(rows int) GridLayout {
	avail := config.ExportGridBottom - config.ExportGridTop
	pitch := min(config.ExportCellPitch, avail/max(rows, 1))
	gap := max(1, pitch/6)
	cell := max(1, pitch-gap)
	width := config.WeeksPerYear*pitch - gap
	height := rows*pitch - gap
	return GridLayout{
		Pitch: pitch,
		Cell:  cell,
		Left:  (config.ExportWidth - width) / 2,
		Top:   config.ExportGridTop + (avail-height)/2,
	}
}

// CellBounds returns the square of a week.
func (g GridLayout) CellBounds(c engine.WeekCell) image.Rectangle {
	x := g.Left + c.Column()*g.Pitch
	y := g.Top + c.Row()*g.Pitch
	return image.Rect(x, y, x+g.Cell, y+g.Cell)
}

func drawGrid(img *image.RGBA, s engine.Snapshot, p Palette) {
	layout := LayoutGrid(s.Lifespan.Years())
	current := image.Rectangle{}

	for c := range s.Cells() {
		r := layout.CellBounds(c)
		switch c.Status {
		case engine.StatusFuture:
			strokeRect(img, r, p.FutureStroke)
		case engine.StatusCurrent:
			current = r
		default:
			draw.Draw(img, r, image.NewUniform(p.Fill(c, false)), image.Point{}, draw.Src)
		}
	}

	// The ring goes on last so neighbouring cells cannot cover it.
	if !current.Empty() {
		ring := current.Inset(-config.ExportRingWidth)
		draw.Draw(img, ring, image.NewUniform(p.CurrentRing), image.Point{}, draw.Over)
		draw.Draw(img, current, image.NewUniform(p.Current), image.Point{}, draw.Src)
	}
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

func drawCentered(img *image.RGBA, face font.Face, text string, centerX, baseline int, c color.Color) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{X: fixed.I(centerX) - width/2, Y: fixed.I(baseline)}
	d.DrawString(text)
}
