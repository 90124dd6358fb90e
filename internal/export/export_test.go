package export_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/export"
	"github.com/tartampluch/go-lifeweeks/internal/locale"
)

func snapshot(t *testing.T, lived, years int) engine.Snapshot {
	t.Helper()
	l, err := engine.NewLifespan(years)
	require.NoError(t, err)
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	now := birth.Add(time.Duration(lived)*config.Week + time.Hour)
	return engine.NewSnapshot(engine.Profile{BirthDate: birth, Lifespan: l}, now)
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestRender_PNG(t *testing.T) {
	s := snapshot(t, 100, 80)

	var buf bytes.Buffer
	require.NoError(t, export.Render(&buf, s, locale.New("en")))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1080, 1350), img.Bounds())

	p := export.DefaultPalette
	assert.Equal(t, rgba(p.Background), rgba(img.At(0, 0)))

	layout := export.LayoutGrid(80)
	lived := layout.CellBounds(s.Cell(0))
	assert.Equal(t, rgba(p.Lived), rgba(img.At(lived.Min.X, lived.Min.Y)))

	current := layout.CellBounds(s.Cell(100))
	assert.Equal(t, rgba(p.Current), rgba(img.At(current.Min.X+1, current.Min.Y+1)))

	future := layout.CellBounds(s.Cell(2000))
	assert.Equal(t, rgba(p.FutureStroke), rgba(img.At(future.Min.X, future.Min.Y)), "future weeks are outlined")
	mid := future.Min.Add(image.Pt(layout.Cell/2, layout.Cell/2))
	assert.Equal(t, rgba(p.Background), rgba(img.At(mid.X, mid.Y)), "future weeks are hollow")
}

func TestDraw_CurrentRing(t *testing.T) {
	s := snapshot(t, 100, 80)
	img, err := export.Draw(s, locale.New("en"))
	require.NoError(t, err)

	current := export.LayoutGrid(80).CellBounds(s.Cell(100))
	ring := img.RGBAAt(current.Min.X-1, current.Min.Y-1)
	bg := rgba(export.DefaultPalette.Background)
	assert.NotEqual(t, bg, ring, "the current week carries a ring")
}

func TestLayoutGrid(t *testing.T) {
	tests := []struct {
		rows      int
		wantPitch int
	}{
		{40, config.ExportCellPitch},
		{80, 10},
		{120, 6},
	}

	for _, tt := range tests {
		layout := export.LayoutGrid(tt.rows)
		assert.Equal(t, tt.wantPitch, layout.Pitch, "rows=%d", tt.rows)
		assert.Greater(t, layout.Cell, 0)
		assert.GreaterOrEqual(t, layout.Left, 0)

		last := layout.CellBounds(engine.WeekCell{Index: tt.rows*config.WeeksPerYear - 1})
		assert.LessOrEqual(t, last.Max.X, config.ExportWidth, "rows=%d", tt.rows)
		assert.LessOrEqual(t, last.Max.Y, config.ExportGridBottom, "rows=%d", tt.rows)
		assert.GreaterOrEqual(t, layout.Top, config.ExportGridTop)
	}
}

func TestRender_LifespanExceeded(t *testing.T) {
	s := snapshot(t, 3000, 40)
	var buf bytes.Buffer
	require.NoError(t, export.Render(&buf, s, locale.New("en")))
	assert.NotZero(t, buf.Len())
}

func TestPalette(t *testing.T) {
	p := export.DefaultPalette

	c, err := export.ParseHex("#78716c")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x78, G: 0x71, B: 0x6c, A: 0xff}, c)

	ring, err := export.ParseHex("#44403c4d")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x4d), ring.A)

	_, err = export.ParseHex("78716c")
	assert.Error(t, err)

	assert.Equal(t, p.LivedEarly, p.Fill(engine.WeekCell{Status: engine.StatusLived, Bucket: engine.BucketEarly}, true))
	assert.Equal(t, p.LivedRecent, p.Fill(engine.WeekCell{Status: engine.StatusLived, Bucket: engine.BucketRecent}, true))
	assert.Equal(t, p.Lived, p.Fill(engine.WeekCell{Status: engine.StatusLived, Bucket: engine.BucketEarly}, false))
	assert.Equal(t, p.Current, p.Fill(engine.WeekCell{Status: engine.StatusCurrent}, true))
	assert.Nil(t, p.Fill(engine.WeekCell{Status: engine.StatusFuture}, true))
}
