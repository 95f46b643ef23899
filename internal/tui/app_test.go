package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"deepwork/internal/core/model"
	"deepwork/internal/core/timekeeper"
	"deepwork/internal/ui/preferences"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeController struct {
	mu      sync.Mutex
	actions []string
}

func (controller *fakeController) record(action string) {
	controller.mu.Lock()
	controller.actions = append(controller.actions, action)
	controller.mu.Unlock()
}

func (controller *fakeController) Start()  { controller.record("start") }
func (controller *fakeController) Stop()   { controller.record("stop") }
func (controller *fakeController) Toggle() { controller.record("toggle") }

func (controller *fakeController) Subscribe(display timekeeper.Display) func() {
	controller.record("subscribe")
	return func() { controller.record("detach") }
}

func runCommand(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestKeysDriveController(t *testing.T) {
	controller := &fakeController{}
	app := New(preferences.DefaultSettings())
	app.Attach(controller)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("s")},
		{Type: tea.KeyRunes, Runes: []rune("x")},
		{Type: tea.KeySpace, Runes: []rune(" ")},
	}
	for _, key := range keys {
		_, cmd := app.Update(key)
		runCommand(t, cmd)
	}

	want := []string{"start", "stop", "toggle"}
	if strings.Join(controller.actions, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, controller.actions)
	}
}

func TestQuitKey(t *testing.T) {
	app := New(preferences.DefaultSettings())
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if _, ok := runCommand(t, cmd).(tea.QuitMsg); !ok {
		t.Fatal("expected quit")
	}
}

func TestInitSubscribes(t *testing.T) {
	controller := &fakeController{}
	app := New(preferences.DefaultSettings())
	app.Attach(controller)

	msg := runCommand(t, app.Init())
	app.Update(msg)
	if app.detach == nil || len(controller.actions) != 1 || controller.actions[0] != "subscribe" {
		t.Fatalf("expected subscription, got %v", controller.actions)
	}
}

func TestViewShowsProgress(t *testing.T) {
	app := New(preferences.DefaultSettings())
	app.Update(phaseMsg{phase: model.PhaseBreak})
	app.Update(progressMsg{phase: model.PhaseBreak, remaining: 125, progress: 0.5})

	view := app.View()
	if !strings.Contains(view, "Break") || !strings.Contains(view, "02:05") || !strings.Contains(view, "running") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	app.Update(errorMsg{err: errors.New("disk full")})
	if !strings.Contains(app.View(), "disk full") {
		t.Fatal("expected error in the status line")
	}

	app.Update(progressMsg{phase: model.PhaseBreak})
	if !strings.Contains(app.View(), "stopped") {
		t.Fatal("expected stopped state after an empty gauge")
	}
}
