// Package mainview is the primary timer window.
package mainview

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"deepwork/internal/core/model"
	"deepwork/internal/core/timekeeper"
	"deepwork/internal/ui/apptheme"
	"deepwork/internal/ui/gauge"
	"deepwork/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller is the part of the timekeeper the window drives.
type Controller interface {
	Start()
	Stop()
	UpdateConfig(config model.TimerConfig) error
	Subscribe(display timekeeper.Display) func()
	State() timekeeper.SessionState
}

// Callbacks defines window action handlers that live outside the window.
type Callbacks struct {
	OnStatistics  func()
	OnMini        func()
	OnPreferences func()
	OnTheme       func(mode string)
	OnToggleTheme func()
	OnQuit        func()
}

type coloredButton struct {
	button     *widget.Button
	background *canvas.Rectangle
}

// Window is the view timer window.
type Window struct {
	window     fyne.Window
	controller Controller
	callbacks  Callbacks
	background *canvas.Rectangle
	title      *canvas.Text
	phaseLabel *canvas.Text
	workEntry  *widget.Entry
	breakEntry *widget.Entry
	gauge      *gauge.Gauge
	buttons    []coloredButton
	settings   preferences.Settings
	phase      model.Phase
	about      string
	detach     func()
}

// New creates the view window and subscribes it to the controller.
func New(app fyne.App, controller Controller, settings preferences.Settings, callbacks Callbacks, about string) *Window {
	window := app.NewWindow("DeepWork Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:     window,
		controller: controller,
		callbacks:  callbacks,
		background: canvas.NewRectangle(color.Black),
		gauge:      gauge.New(220),
		settings:   settings,
		phase:      model.PhaseWork,
		about:      about,
	}

	view.title = canvas.NewText("Deep Work", color.White)
	view.title.Alignment = fyne.TextAlignCenter
	view.title.TextStyle = fyne.TextStyle{Bold: true}
	view.title.TextSize = 26

	view.phaseLabel = canvas.NewText(model.PhaseWork.Label(), color.White)
	view.phaseLabel.Alignment = fyne.TextAlignCenter
	view.phaseLabel.TextSize = 16

	view.workEntry = widget.NewEntry()
	view.breakEntry = widget.NewEntry()

	durations := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel("Work (min)"), nil, view.workEntry),
		container.NewBorder(nil, nil, widget.NewLabel("Break (min)"), nil, view.breakEntry),
	)

	controls := container.NewVBox(
		view.newButton("Start", view.handleStart),
		view.newButton("Stop", view.controller.Stop),
		view.newButton("Statistics", func() { invoke(view.callbacks.OnStatistics) }),
		view.newButton("Fullscreen", view.ToggleFullScreen),
		view.newButton("Mini widget", func() { invoke(view.callbacks.OnMini) }),
	)

	content := container.NewPadded(container.NewVBox(
		view.title,
		view.phaseLabel,
		durations,
		container.NewCenter(view.gauge),
		layout.NewSpacer(),
		controls,
	))
	window.SetContent(container.NewStack(view.background, content))
	window.SetMainMenu(view.buildMenu())
	view.registerShortcuts()
	window.Resize(fyne.NewSize(420, 640))

	view.ApplySettings(settings)
	view.detach = controller.Subscribe(view)
	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// ShowProgress implements timekeeper.Display.
func (view *Window) ShowProgress(phase model.Phase, remaining int, progress float64) {
	fyne.Do(func() {
		view.gauge.SetValue(remaining, progress)
	})
}

// ShowPhase implements timekeeper.Display.
func (view *Window) ShowPhase(phase model.Phase) {
	fyne.Do(func() {
		view.phase = phase
		view.phaseLabel.Text = phase.Label()
		view.applyColorsUnsafe()
	})
}

// ApplySettings loads durations and colors. Call on the UI thread.
func (view *Window) ApplySettings(settings preferences.Settings) {
	view.settings = settings
	view.workEntry.SetText(strconv.Itoa(settings.WorkMinutes))
	view.breakEntry.SetText(strconv.Itoa(settings.BreakMinutes))
	view.applyColorsUnsafe()
}

// Toggle stops a running countdown, or starts one with the durations typed in
// the window. The tray and the mini widget start the timer through here. Call on the UI thread.
func (view *Window) Toggle() {
	if view.controller.State().Running {
		view.controller.Stop()
		return
	}
	view.handleStart()
}

// Subscribe attaches display to the controller the window drives.
func (view *Window) Subscribe(display timekeeper.Display) func() {
	return view.controller.Subscribe(display)
}

// ToggleFullScreen switches between windowed and fullscreen.
func (view *Window) ToggleFullScreen() {
	view.window.SetFullScreen(!view.window.FullScreen())
}

// Close detaches the window from the controller.
func (view *Window) Close() {
	if view.detach != nil {
		view.detach()
		view.detach = nil
	}
}

func (view *Window) handleStart() {
	config, err := parseDurations(view.workEntry.Text, view.breakEntry.Text)
	if err != nil {
		dialog.ShowError(err, view.window)
		return
	}
	if err := view.controller.UpdateConfig(config); err != nil {
		dialog.ShowError(err, view.window)
		return
	}
	view.controller.Start()
}

func (view *Window) newButton(label string, tapped func()) fyne.CanvasObject {
	button := widget.NewButton(label, tapped)
	button.Importance = widget.LowImportance
	background := canvas.NewRectangle(color.Black)
	background.CornerRadius = 6
	view.buttons = append(view.buttons, coloredButton{button: button, background: background})
	return container.NewStack(background, button)
}

func (view *Window) applyColorsUnsafe() {
	colors := view.settings.PhaseColors(view.phase)
	background := apptheme.ParseHex(colors.Background)
	button := apptheme.ParseHex(colors.Button)
	text := apptheme.ParseHex(colors.Text)

	view.background.FillColor = background
	view.background.Refresh()
	view.title.Color = text
	view.title.Refresh()
	view.phaseLabel.Color = text
	view.phaseLabel.Refresh()
	for _, item := range view.buttons {
		item.background.FillColor = button
		item.background.Refresh()
	}
	view.gauge.SetColors(button, apptheme.WithAlpha(text, 0.2), text)
}

func (view *Window) buildMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Quit", func() { invoke(view.callbacks.OnQuit) }),
	)
	// fyne appends its own Quit item to the first menu; keep ours as the only one.
	file.Items[0].IsQuit = true

	options := fyne.NewMenu("Options",
		fyne.NewMenuItem("Preferences", func() { invoke(view.callbacks.OnPreferences) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Light theme", func() { view.setTheme(preferences.ThemeLight) }),
		fyne.NewMenuItem("Dark theme", func() { view.setTheme(preferences.ThemeDark) }),
	)
	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About DeepWork", view.about, view.window)
		}),
	)
	return fyne.NewMainMenu(file, options, help)
}

func (view *Window) registerShortcuts() {
	surface := view.window.Canvas()
	surface.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF11}, func(fyne.Shortcut) {
		view.ToggleFullScreen()
	})
	surface.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyT, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		invoke(view.callbacks.OnToggleTheme)
	})
}

func (view *Window) setTheme(mode string) {
	if view.callbacks.OnTheme != nil {
		view.callbacks.OnTheme(mode)
	}
}

func parseDurations(work, rest string) (model.TimerConfig, error) {
	workMinutes, err := strconv.Atoi(strings.TrimSpace(work))
	if err != nil || workMinutes <= 0 {
		return model.TimerConfig{}, fmt.Errorf("%w: work minutes %q", model.ErrInvalidDuration, work)
	}
	breakMinutes, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || breakMinutes <= 0 {
		return model.TimerConfig{}, fmt.Errorf("%w: break minutes %q", model.ErrInvalidDuration, rest)
	}
	return model.TimerConfig{WorkSeconds: workMinutes * 60, BreakSeconds: breakMinutes * 60}, nil
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
