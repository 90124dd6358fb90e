package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// formView holds references to the input form widgets so submit and the
// tests can read them back.
type formView struct {
	content       fyne.CanvasObject
	language      *widget.Select
	entry         *DateEntry
	slider        *widget.Slider
	lifespanLabel *widget.Label
	errLabel      *widget.Label
	submit        *widget.Button
	importBtn     *widget.Button
}

// buildForm constructs the birth date and lifespan form.
func (app *LifeWeeksApp) buildForm() *formView {
	tr := app.Translator
	fv := &formView{}

	fv.language = app.newLanguageSelect()

	fv.entry = NewDateEntry()
	fv.entry.PlaceHolder = tr.Msg(config.TKeyHintDate)
	fv.entry.OnSubmitted = func(string) { app.submitForm() }

	fv.lifespanLabel = widget.NewLabel(tr.LifespanLabel(app.lifespanYears))
	fv.slider = app.newLifespanSlider(fv.lifespanLabel)

	// Hidden until a submission fails.
	fv.errLabel = widget.NewLabel("")
	fv.errLabel.Importance = widget.DangerImportance
	fv.errLabel.Wrapping = fyne.TextWrapWord
	fv.errLabel.Hide()

	fv.submit = widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnVisualize), theme.ConfirmIcon(), app.submitForm)
	fv.submit.Importance = widget.HighImportance

	fv.importBtn = widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnImport), theme.AccountIcon(), app.showImportDialog)

	itemBirth := widget.NewFormItem(tr.Msg(config.TKeyLblBirthDate), fv.entry)
	itemBirth.HintText = tr.Msg(config.TKeyHintDate)
	itemLifespan := widget.NewFormItem(tr.Msg(config.TKeyLblLifespan),
		container.NewBorder(nil, nil, nil, fv.lifespanLabel, fv.slider))
	itemLang := widget.NewFormItem(tr.Msg(config.TKeyLblLanguage), fv.language)

	title := widget.NewLabelWithStyle(tr.Msg(config.TKeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle(tr.Msg(config.TKeyAppSubtitle), fyne.TextAlignCenter, fyne.TextStyle{})
	subtitle.Wrapping = fyne.TextWrapWord

	fv.content = container.NewPadded(container.NewVBox(
		title,
		subtitle,
		widget.NewForm(itemBirth, itemLifespan, itemLang),
		fv.errLabel,
		fv.submit,
		fv.importBtn,
	))
	return fv
}

// submitForm validates the form, persists the profile and shows the grid.
func (app *LifeWeeksApp) submitForm() {
	fv := app.form
	if fv == nil {
		return
	}

	now := app.Clock.Now()
	birth, err := engine.ParseBirthDate(fv.entry.Text)
	var p engine.Profile
	if err == nil {
		p, err = engine.NewProfile(birth, app.lifespanYears, now)
	}
	if err != nil {
		slog.Debug(config.MsgProfileInvalid,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyValue, fv.entry.Text,
			config.LogKeyError, err)
		app.showFormError(app.Translator.ValidationMessage(err))
		return
	}

	app.saveProfile(p)
	app.showCurrentView()
}

func (app *LifeWeeksApp) showFormError(msg string) {
	if app.form == nil {
		return
	}
	app.form.errLabel.SetText(msg)
	app.form.errLabel.Show()
}

// showImportDialog lets the user pick a contact card to prefill the date.
func (app *LifeWeeksApp) showImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		app.importBirthDate(path)
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importBirthDate fills the date entry from a vCard file or URL.
func (app *LifeWeeksApp) importBirthDate(source string) {
	if app.form == nil {
		return
	}

	birth, err := app.Importer.ImportBirthDate(app.Ctx, source)
	if err != nil {
		slog.Warn(config.ErrNoBirthday,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.showFormError(app.Translator.Msg(config.TKeyErrImport))
		return
	}

	app.form.entry.SetText(birth.Format(config.DateFormatInput))
	app.form.errLabel.Hide()
}

// newLifespanSlider binds a 40 to 120 year slider to the app lifespan. When a
// profile is shown, releasing the slider persists the new value.
func (app *LifeWeeksApp) newLifespanSlider(label *widget.Label) *widget.Slider {
	s := widget.NewSlider(config.MinLifespanYears, config.MaxLifespanYears)
	s.Step = config.LifespanSliderStep
	s.SetValue(float64(app.lifespanYears))

	s.OnChanged = func(v float64) {
		label.SetText(app.Translator.LifespanLabel(int(v)))
		if app.profile == nil {
			app.lifespanYears = int(v)
		}
	}
	s.OnChangeEnded = func(v float64) {
		if app.profile != nil {
			app.changeLifespan(int(v))
		}
	}
	return s
}

// newLanguageSelect lists the embedded locales and switches on selection.
func (app *LifeWeeksApp) newLanguageSelect() *widget.Select {
	sel := widget.NewSelect(app.Translator.Languages(), nil)
	sel.SetSelected(app.Translator.Language())
	sel.OnChanged = app.setLanguage
	return sel
}
