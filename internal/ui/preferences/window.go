package preferences

import (
	"fmt"
	"image/color"
	"strconv"

	"deepwork/internal/ui/apptheme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

type colorField struct {
	entry  *widget.Entry
	swatch *canvas.Rectangle
	get    func(*Colors) *string
}

// Window handles the preferences UI. Every edit is reported immediately.
type Window struct {
	window      fyne.Window
	settings    Settings
	onChange    func(Settings)
	workEntry   *widget.Entry
	breakEntry  *widget.Entry
	colorFields []*colorField
	themeRadio  *widget.RadioGroup
	alpha       *widget.Slider
	alphaLabel  *widget.Label
	syncing     bool
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onChange func(Settings)) *Window {
	window := app.NewWindow("DeepWork Preferences")

	prefs := &Window{
		window:   window,
		settings: settings,
		onChange: onChange,
	}

	prefs.workEntry = widget.NewEntry()
	prefs.workEntry.OnChanged = func(value string) {
		if minutes, ok := parsePositiveInt(value); ok {
			prefs.edit(func(settings *Settings) { settings.WorkMinutes = minutes })
		}
	}
	prefs.breakEntry = widget.NewEntry()
	prefs.breakEntry.OnChanged = func(value string) {
		if minutes, ok := parsePositiveInt(value); ok {
			prefs.edit(func(settings *Settings) { settings.BreakMinutes = minutes })
		}
	}

	colorRows := container.NewVBox()
	for _, item := range []struct {
		label string
		get   func(*Colors) *string
	}{
		{"Work background", func(colors *Colors) *string { return &colors.WorkBg }},
		{"Work button", func(colors *Colors) *string { return &colors.WorkBtn }},
		{"Break background", func(colors *Colors) *string { return &colors.BreakBg }},
		{"Button text", func(colors *Colors) *string { return &colors.BtnText }},
	} {
		field := prefs.newColorField(item.label, item.get)
		prefs.colorFields = append(prefs.colorFields, field)
		pick := widget.NewButton("Pick...", func() { prefs.pickColor(item.label, field) })
		swatch := container.NewGridWrap(fyne.NewSize(24, 24), field.swatch)
		colorRows.Add(container.NewBorder(nil, nil, widget.NewLabel(item.label), container.NewHBox(swatch, pick), field.entry))
	}

	prefs.themeRadio = widget.NewRadioGroup([]string{ThemeLight, ThemeDark}, func(selected string) {
		if ValidTheme(selected) {
			prefs.edit(func(settings *Settings) { settings.Theme = selected })
		}
	})
	prefs.themeRadio.Horizontal = true

	prefs.alphaLabel = widget.NewLabel("")
	prefs.alpha = widget.NewSlider(MinMiniAlpha, MaxMiniAlpha)
	prefs.alpha.Step = 0.1
	prefs.alpha.OnChangeEnded = func(value float64) {
		prefs.edit(func(settings *Settings) { settings.MiniAlpha = value })
	}
	prefs.alpha.OnChanged = func(value float64) {
		prefs.alphaLabel.SetText(fmt.Sprintf("%.1f", value))
	}

	resetButton := widget.NewButton("Restore defaults", func() {
		prefs.UpdateSettings(DefaultSettings())
		prefs.report()
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Work (min)"), nil, prefs.workEntry),
		container.NewBorder(nil, nil, widget.NewLabel("Break (min)"), nil, prefs.breakEntry),
		widget.NewLabelWithStyle("Colors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		colorRows,
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.themeRadio,
		container.NewBorder(nil, nil, widget.NewLabel("Mini widget opacity"), prefs.alphaLabel, prefs.alpha),
	)

	window.SetContent(container.NewBorder(nil, container.NewHBox(resetButton), nil, nil, form))
	window.Resize(fyne.NewSize(440, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values without reporting them as edits.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.syncing = true
	defer func() { prefs.syncing = false }()

	prefs.settings = settings
	prefs.workEntry.SetText(strconv.Itoa(settings.WorkMinutes))
	prefs.breakEntry.SetText(strconv.Itoa(settings.BreakMinutes))
	for _, field := range prefs.colorFields {
		value := *field.get(&settings.Colors)
		field.entry.SetText(value)
		field.swatch.FillColor = apptheme.ParseHex(value)
		field.swatch.Refresh()
	}
	prefs.themeRadio.SetSelected(settings.Theme)
	prefs.alpha.SetValue(settings.MiniAlpha)
	prefs.alphaLabel.SetText(fmt.Sprintf("%.1f", settings.MiniAlpha))
}

func (prefs *Window) newColorField(label string, get func(*Colors) *string) *colorField {
	field := &colorField{
		entry:  widget.NewEntry(),
		swatch: canvas.NewRectangle(color.Black),
		get:    get,
	}
	field.entry.Validator = func(value string) error {
		if !ValidColor(value) {
			return fmt.Errorf("%s must look like #rrggbb", label)
		}
		return nil
	}
	field.entry.OnChanged = func(value string) {
		if !ValidColor(value) {
			return
		}
		field.swatch.FillColor = apptheme.ParseHex(value)
		field.swatch.Refresh()
		prefs.edit(func(settings *Settings) { *field.get(&settings.Colors) = value })
	}
	return field
}

func (prefs *Window) pickColor(label string, field *colorField) {
	picker := dialog.NewColorPicker(label, "Choose a color", func(picked color.Color) {
		field.entry.SetText(apptheme.FormatHex(picked))
	}, prefs.window)
	picker.Advanced = true
	picker.SetColor(apptheme.ParseHex(field.entry.Text))
	picker.Show()
}

func (prefs *Window) edit(change func(*Settings)) {
	if prefs.syncing {
		return
	}
	settings := prefs.settings
	change(&settings)
	if settings == prefs.settings {
		return
	}
	prefs.settings = settings
	prefs.report()
}

func (prefs *Window) report() {
	if prefs.onChange != nil {
		prefs.onChange(prefs.settings)
	}
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
