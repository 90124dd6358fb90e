package ui

import (
	"errors"
	"image/color"
	"io"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/export"
)

// gridView holds the widgets of the visualization screen.
type gridView struct {
	content       fyne.CanvasObject
	language      *widget.Select
	ageValue      *widget.Label
	livedValue    *widget.Label
	aheadValue    *widget.Label
	percentValue  *widget.Label
	hoverLabel    *widget.Label
	slider        *widget.Slider
	lifespanLabel *widget.Label
	shareBtn      *widget.Button
	resetBtn      *widget.Button
	rows          []*yearRow

	// snap is the single clock sample the view was built from.
	snap engine.Snapshot
}

// buildGrid constructs the summary panel and the week grid for the current
// profile, sampling the clock once.
func (app *LifeWeeksApp) buildGrid() *gridView {
	tr := app.Translator
	start := time.Now()
	snap := engine.NewSnapshot(*app.profile, app.Clock.Now())
	sum := snap.Summary()

	gv := &gridView{snap: snap}
	gv.language = app.newLanguageSelect()

	statBlock := func(value, caption string) (*widget.Label, fyne.CanvasObject) {
		v := widget.NewLabelWithStyle(value, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		c := widget.NewLabelWithStyle(caption, fyne.TextAlignCenter, fyne.TextStyle{})
		c.Importance = widget.LowImportance
		return v, container.NewVBox(v, c)
	}
	var ageBlock, livedBlock, aheadBlock, percentBlock fyne.CanvasObject
	gv.ageValue, ageBlock = statBlock(tr.Number(sum.Age), tr.Msg(config.TKeyStatYears))
	gv.livedValue, livedBlock = statBlock(tr.Number(sum.WeeksLived), tr.Msg(config.TKeyStatWeeksLived))
	gv.aheadValue, aheadBlock = statBlock(tr.Number(sum.WeeksRemaining), tr.Msg(config.TKeyStatWeeksAhead))
	gv.percentValue, percentBlock = statBlock(sum.PercentageLabel()+"%", tr.Msg(config.TKeyStatOfJourney))

	title := widget.NewLabelWithStyle(tr.Msg(config.TKeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	quote := widget.NewLabelWithStyle(tr.Msg(config.TKeyQuote), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	gv.hoverLabel = widget.NewLabelWithStyle(tr.Msg(config.TKeyHintHover), fyne.TextAlignCenter, fyne.TextStyle{})
	gv.hoverLabel.Importance = widget.LowImportance

	rowsBox := container.NewVBox()
	cells := snap.Grid()
	for y := 0; y < len(cells); y += config.WeeksPerYear {
		row := newYearRow(cells[y:min(y+config.WeeksPerYear, len(cells))], app.showHover)
		gv.rows = append(gv.rows, row)
		rowsBox.Add(row)
	}
	if app.Reveal {
		app.revealRows(gv.rows)
	}

	gv.lifespanLabel = widget.NewLabel(tr.LifespanLabel(app.lifespanYears))
	gv.slider = app.newLifespanSlider(gv.lifespanLabel)

	gv.shareBtn = widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnShare), theme.DocumentSaveIcon(), app.showShareDialog)
	gv.shareBtn.Importance = widget.HighImportance
	gv.resetBtn = widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnReset), theme.ContentUndoIcon(), app.reset)

	header := container.NewVBox(
		container.NewBorder(nil, nil, nil, gv.language, title),
		container.NewGridWithColumns(4, ageBlock, livedBlock, aheadBlock, percentBlock),
		quote,
		gv.hoverLabel,
	)
	footer := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel(tr.Msg(config.TKeyLblLifespan)), gv.lifespanLabel, gv.slider),
		container.NewGridWithColumns(2, gv.resetBtn, gv.shareBtn),
	)
	grid := container.NewVScroll(container.NewHBox(layout.NewSpacer(), rowsBox, layout.NewSpacer()))

	gv.content = container.NewPadded(container.NewBorder(header, footer, nil, nil, grid))

	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyWeeks, snap.TotalWeeks(),
		config.LogKeyLived, snap.WeeksLived(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return gv
}

// revealRows hides every row and shows each one after its stagger delay.
func (app *LifeWeeksApp) revealRows(rows []*yearRow) {
	for _, row := range rows {
		row.Hide()
		time.AfterFunc(row.cells[0].StaggerDelay, func() {
			fyne.Do(row.Show)
		})
	}
}

// showHover describes the hovered week, or restores the hint.
func (app *LifeWeeksApp) showHover(c engine.WeekCell, inside bool) {
	if app.grid == nil || app.profile == nil {
		return
	}
	if !inside {
		app.grid.hoverLabel.SetText(app.Translator.Msg(config.TKeyHintHover))
		return
	}
	start, end := engine.WeekDateRange(app.profile.BirthDate, c.Index)
	app.grid.hoverLabel.SetText(engine.FormatDateRange(start, end) + config.StatsSeparator + app.Translator.WeekLabel(c))
}

// changeLifespan re-validates the profile with a new lifespan, persists it
// and redraws the grid.
func (app *LifeWeeksApp) changeLifespan(years int) {
	if app.profile == nil || years == app.profile.Lifespan.Years() {
		return
	}

	p, err := engine.NewProfile(app.profile.BirthDate, years, app.Clock.Now())
	if err != nil {
		slog.Warn(config.MsgProfileInvalid,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	slog.Info(config.MsgLifespanChange,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLifespan, years)
	app.saveProfile(p)
	app.showCurrentView()
}

// showShareDialog asks where to save the share image.
func (app *LifeWeeksApp) showShareDialog() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		_ = app.exportTo(w)
	}, app.Window)
	d.SetFileName(config.ExportFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtPNG}))
	d.Show()
}

// exportTo renders the share image into w and closes it. The share button
// reads "Generating..." meanwhile and the outcome is notified.
func (app *LifeWeeksApp) exportTo(w io.WriteCloser) error {
	if app.profile == nil {
		_ = w.Close()
		return errors.New(config.ErrNoProfile)
	}

	if app.grid != nil {
		btn := app.grid.shareBtn
		btn.SetText(app.Translator.Msg(config.TKeyBtnGenerating))
		btn.Disable()
		defer func() {
			btn.SetText(app.Translator.Msg(config.TKeyBtnShare))
			btn.Enable()
		}()
	}

	snap := engine.NewSnapshot(*app.profile, app.Clock.Now())
	err := export.Render(w, snap, app.Translator)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		slog.Error(config.ErrWriteOutput,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.Translator.Msg(config.TKeyErrExport)))
		return err
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.Translator.Msg(config.TKeyMsgExported)))
	return nil
}

// -----------------------------------------------------------------------------
// Year Row Widget
// -----------------------------------------------------------------------------

// yearRow draws one year of 52 week cells. A single widget per row keeps the
// object count low; hover and tap resolve the cell from the pointer position.
type yearRow struct {
	widget.BaseWidget
	cells   []engine.WeekCell
	onHover func(c engine.WeekCell, inside bool)
}

var (
	_ desktop.Hoverable = (*yearRow)(nil)
	_ fyne.Tappable     = (*yearRow)(nil)
)

func newYearRow(cells []engine.WeekCell, onHover func(engine.WeekCell, bool)) *yearRow {
	r := &yearRow{cells: cells, onHover: onHover}
	r.ExtendBaseWidget(r)
	return r
}

func cellPitch() float32 {
	return float32(config.GridCellSize + config.GridCellGap)
}

// cellAt maps an x offset to a cell of the row.
func (r *yearRow) cellAt(pos fyne.Position) (engine.WeekCell, bool) {
	i := int(pos.X / cellPitch())
	if pos.X < 0 || i >= len(r.cells) {
		return engine.WeekCell{}, false
	}
	return r.cells[i], true
}

func (r *yearRow) hoverAt(pos fyne.Position) {
	if r.onHover == nil {
		return
	}
	c, ok := r.cellAt(pos)
	r.onHover(c, ok)
}

func (r *yearRow) MouseIn(e *desktop.MouseEvent)    { r.hoverAt(e.Position) }
func (r *yearRow) MouseMoved(e *desktop.MouseEvent) { r.hoverAt(e.Position) }
func (r *yearRow) Tapped(e *fyne.PointEvent)        { r.hoverAt(e.Position) }

func (r *yearRow) MouseOut() {
	if r.onHover != nil {
		r.onHover(engine.WeekCell{}, false)
	}
}

func (r *yearRow) CreateRenderer() fyne.WidgetRenderer {
	p := export.DefaultPalette
	rr := &yearRowRenderer{ringIndex: -1}

	for i, c := range r.cells {
		rect := canvas.NewRectangle(color.Transparent)
		if fill := p.Fill(c, true); fill != nil {
			rect.FillColor = fill
		} else {
			rect.StrokeColor = p.FutureStroke
			rect.StrokeWidth = config.GridStroke
		}
		if c.Status == engine.StatusCurrent {
			rr.ring = canvas.NewRectangle(color.Transparent)
			rr.ring.StrokeColor = p.CurrentRing
			rr.ring.StrokeWidth = config.GridRingSize
			rr.ringIndex = i
		}
		rr.rects = append(rr.rects, rect)
		rr.objects = append(rr.objects, rect)
	}
	if rr.ring != nil {
		rr.objects = append(rr.objects, rr.ring)
	}
	return rr
}

type yearRowRenderer struct {
	rects     []*canvas.Rectangle
	ring      *canvas.Rectangle
	ringIndex int
	objects   []fyne.CanvasObject
}

func (rr *yearRowRenderer) Layout(fyne.Size) {
	pitch := cellPitch()
	for i, rect := range rr.rects {
		rect.Move(fyne.NewPos(float32(i)*pitch, config.GridRingSize))
		rect.Resize(fyne.NewSquareSize(config.GridCellSize))
	}
	if rr.ring != nil {
		rr.ring.Move(fyne.NewPos(float32(rr.ringIndex)*pitch-config.GridRingSize, 0))
		rr.ring.Resize(fyne.NewSquareSize(config.GridCellSize + 2*config.GridRingSize))
	}
}

func (rr *yearRowRenderer) MinSize() fyne.Size {
	return fyne.NewSize(
		float32(config.WeeksPerYear)*cellPitch(),
		config.GridCellSize+2*config.GridRingSize,
	)
}

func (rr *yearRowRenderer) Refresh() {
	for _, o := range rr.objects {
		o.Refresh()
	}
}

func (rr *yearRowRenderer) Objects() []fyne.CanvasObject { return rr.objects }
func (rr *yearRowRenderer) Destroy()                     {}
