package mini

import (
	"image/color"

	"deepwork/internal/core/model"
	"deepwork/internal/core/timekeeper"
	"deepwork/internal/ui/apptheme"
	"deepwork/internal/ui/gauge"
	"deepwork/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controller is what the widget drives: the main window, so typed durations apply.
type Controller interface {
	Toggle()
	Subscribe(display timekeeper.Display) func()
}

// Window is the small always-on-top countdown widget.
type Window struct {
	app          fyne.App
	window       fyne.Window
	controller   Controller
	background   *canvas.Rectangle
	gauge        *gauge.Gauge
	toggleButton *widget.Button
	closeButton  *widget.Button
	settings     preferences.Settings
	phase        model.Phase
	running      bool
	detach       func()
	visible      bool
}

const (
	miniSide       = float32(150)
	miniGaugeSide  = float32(110)
	miniMarginFrac = float32(0.06)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the mini widget. It stays hidden until Show.
func New(app fyne.App, controller Controller, settings preferences.Settings) *Window {
	window := app.NewWindow("DeepWork")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.Black)
	countdown := gauge.New(miniGaugeSide)

	mini := &Window{
		app:        app,
		window:     window,
		controller: controller,
		background: background,
		gauge:      countdown,
		settings:   settings,
		phase:      model.PhaseWork,
	}

	mini.toggleButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		mini.controller.Toggle()
	})
	mini.toggleButton.Importance = widget.LowImportance
	mini.closeButton = widget.NewButtonWithIcon("", theme.WindowCloseIcon(), mini.Hide)
	mini.closeButton.Importance = widget.LowImportance

	content := container.New(&miniLayout{}, countdown, mini.toggleButton, mini.closeButton)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(miniSide, miniSide))

	mini.applyColorsUnsafe()
	return mini
}

// Show attaches the widget to the timekeeper and displays it.
func (mini *Window) Show() {
	if mini.detach == nil {
		mini.detach = mini.controller.Subscribe(mini)
	}
	mini.visible = true
	mini.window.Show()
	mini.applyNativeTopmost()
	mini.applyNativeOpacity(apptheme.AlphaByte(mini.settings.MiniAlpha))
}

// Hide detaches the widget and hides it.
func (mini *Window) Hide() {
	if mini.detach != nil {
		mini.detach()
		mini.detach = nil
	}
	mini.visible = false
	mini.window.Hide()
}

// ToggleVisible shows a hidden widget or hides a visible one.
func (mini *Window) ToggleVisible() {
	if mini.visible {
		mini.Hide()
		return
	}
	mini.Show()
}

// ApplySettings updates colors and transparency. Call on the UI thread.
func (mini *Window) ApplySettings(settings preferences.Settings) {
	mini.settings = settings
	mini.applyColorsUnsafe()
	if mini.visible {
		mini.applyNativeOpacity(apptheme.AlphaByte(settings.MiniAlpha))
	}
}

// ShowProgress implements timekeeper.Display.
func (mini *Window) ShowProgress(phase model.Phase, remaining int, progress float64) {
	fyne.Do(func() {
		mini.gauge.SetValue(remaining, progress)
		mini.setRunningUnsafe(progress > 0)
	})
}

// ShowPhase implements timekeeper.Display.
func (mini *Window) ShowPhase(phase model.Phase) {
	fyne.Do(func() {
		mini.phase = phase
		mini.applyColorsUnsafe()
	})
}

func (mini *Window) setRunningUnsafe(running bool) {
	if running == mini.running {
		return
	}
	mini.running = running
	if running {
		mini.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		mini.toggleButton.SetIcon(theme.MediaPlayIcon())
	}
}

func (mini *Window) applyColorsUnsafe() {
	colors := mini.settings.PhaseColors(mini.phase)
	text := apptheme.ParseHex(colors.Text)

	mini.background.FillColor = apptheme.WithAlpha(apptheme.ParseHex(colors.Background), mini.settings.MiniAlpha)
	mini.background.Refresh()
	mini.gauge.SetColors(apptheme.ParseHex(colors.Button), apptheme.WithAlpha(text, 0.2), text)
}

type miniLayout struct{}

func (layout *miniLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	countdown := objects[0]
	toggle := objects[1]
	closer := objects[2]

	margin := size.Height * miniMarginFrac
	toggleSize := toggle.MinSize()
	closeSize := closer.MinSize()

	side := size.Height - toggleSize.Height - margin*2
	if side > size.Width-margin*2 {
		side = size.Width - margin*2
	}
	if side < 0 {
		side = 0
	}
	countdown.Resize(fyne.NewSize(side, side))
	countdown.Move(fyne.NewPos((size.Width-side)/2, margin))

	toggle.Resize(toggleSize)
	toggle.Move(fyne.NewPos((size.Width-toggleSize.Width)/2, size.Height-margin-toggleSize.Height))

	closer.Resize(closeSize)
	closer.Move(fyne.NewPos(size.Width-closeSize.Width, 0))
}

func (layout *miniLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	gaugeMin := objects[0].MinSize()
	toggleMin := objects[1].MinSize()
	width := gaugeMin.Width
	if toggleMin.Width > width {
		width = toggleMin.Width
	}
	return fyne.NewSize(width+20, gaugeMin.Height+toggleMin.Height+20)
}
