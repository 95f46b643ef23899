// Package tui provides the terminal front-end of the timer.
package tui

import (
	"fmt"
	"strings"

	"deepwork/internal/core/model"
	"deepwork/internal/core/timekeeper"
	"deepwork/internal/ui/preferences"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	mutedColor = lipgloss.Color("#6B7280")
	errorColor = lipgloss.Color("#EF4444")

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

const defaultBarWidth = 40

// Controller is the part of the timekeeper the terminal UI drives.
type Controller interface {
	Start()
	Stop()
	Toggle()
	Subscribe(display timekeeper.Display) func()
}

type progressMsg struct {
	phase     model.Phase
	remaining int
	progress  float64
}

type phaseMsg struct {
	phase model.Phase
}

type errorMsg struct {
	err error
}

type attachedMsg struct {
	detach func()
}

// App is the bubbletea model. It implements timekeeper.Display and
// timekeeper.Notifier by forwarding to the running program.
type App struct {
	program    *tea.Program
	controller Controller
	settings   preferences.Settings
	phase      model.Phase
	remaining  int
	progress   float64
	bar        progress.Model
	lastError  string
	detach     func()
	width      int
}

// New creates the terminal UI. Attach a controller before Run.
func New(settings preferences.Settings, options ...tea.ProgramOption) *App {
	app := &App{
		settings: settings,
		phase:    model.PhaseWork,
		width:    defaultBarWidth,
	}
	app.bar = app.newBar()
	app.program = tea.NewProgram(app, options...)
	return app
}

// Attach sets the controller the keys drive. Display subscription starts with the program.
func (app *App) Attach(controller Controller) {
	app.controller = controller
}

// Run blocks until the user quits.
func (app *App) Run() error {
	_, err := app.program.Run()
	if app.detach != nil {
		app.detach()
		app.detach = nil
	}
	return err
}

// ShowProgress implements timekeeper.Display.
func (app *App) ShowProgress(phase model.Phase, remaining int, progress float64) {
	app.program.Send(progressMsg{phase: phase, remaining: remaining, progress: progress})
}

// ShowPhase implements timekeeper.Display.
func (app *App) ShowPhase(phase model.Phase) {
	app.program.Send(phaseMsg{phase: phase})
}

// ReportError implements timekeeper.Notifier.
func (app *App) ReportError(err error) {
	app.program.Send(errorMsg{err: err})
}

// Init implements tea.Model
func (app *App) Init() tea.Cmd {
	if app.controller == nil {
		return nil
	}
	controller := app.controller
	return func() tea.Msg {
		return attachedMsg{detach: controller.Subscribe(app)}
	}
}

// Update implements tea.Model
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return app, tea.Quit
		case "s":
			return app, app.command(Controller.Start)
		case "x":
			return app, app.command(Controller.Stop)
		case " ", "space":
			return app, app.command(Controller.Toggle)
		}

	case tea.WindowSizeMsg:
		app.width = msg.Width - 8
		if app.width > 80 {
			app.width = 80
		}
		if app.width < 10 {
			app.width = 10
		}
		app.bar.Width = app.width

	case attachedMsg:
		app.detach = msg.detach

	case progressMsg:
		app.phase = msg.phase
		app.remaining = msg.remaining
		app.progress = msg.progress

	case phaseMsg:
		if msg.phase != app.phase {
			app.phase = msg.phase
			app.bar = app.newBar()
		}
		app.lastError = ""

	case errorMsg:
		app.lastError = msg.err.Error()
	}

	return app, nil
}

// View implements tea.Model
func (app *App) View() string {
	colors := app.settings.PhaseColors(app.phase)
	phaseStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Text)).
		Background(lipgloss.Color(colors.Background)).
		Padding(0, 1)

	state := "stopped"
	if app.progress > 0 {
		state = "running"
	}

	var builder strings.Builder
	builder.WriteString(phaseStyle.Render(app.phase.Label()))
	builder.WriteString(" ")
	builder.WriteString(clockStyle.Render(model.FormatClock(app.remaining)))
	builder.WriteString(helpStyle.Render(state))
	builder.WriteString("\n\n")
	builder.WriteString(app.bar.ViewAs(app.progress))
	builder.WriteString("\n\n")
	if app.lastError != "" {
		builder.WriteString(errorStyle.Render(fmt.Sprintf("error: %s", app.lastError)))
		builder.WriteString("\n")
	}
	builder.WriteString(helpStyle.Render("s start · x stop · space start/stop · q quit"))

	return frameStyle.BorderForeground(lipgloss.Color(colors.Background)).Render(builder.String()) + "\n"
}

// command runs a controller action off the event loop; the timekeeper reports back through Send.
func (app *App) command(action func(Controller)) tea.Cmd {
	if app.controller == nil {
		return nil
	}
	controller := app.controller
	return func() tea.Msg {
		action(controller)
		return nil
	}
}

func (app *App) newBar() progress.Model {
	colors := app.settings.PhaseColors(app.phase)
	fill := colors.Button
	if app.phase == model.PhaseBreak {
		fill = colors.Background
	}
	bar := progress.New(progress.WithSolidFill(fill), progress.WithoutPercentage())
	bar.Width = app.width
	return bar
}
