package mainview

import (
	"errors"
	"testing"
	"time"

	"deepwork/internal/core/model"
	"deepwork/internal/core/timekeeper"
	"deepwork/internal/ui/preferences"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
)

type fakeController struct {
	starts  int
	stops   int
	config  model.TimerConfig
	display timekeeper.Display
}

func (controller *fakeController) Start() { controller.starts++ }

func (controller *fakeController) Stop() { controller.stops++ }

func (controller *fakeController) UpdateConfig(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	controller.config = config
	return nil
}

func (controller *fakeController) Subscribe(display timekeeper.Display) func() {
	controller.display = display
	return func() { controller.display = nil }
}

func (controller *fakeController) State() timekeeper.SessionState {
	return timekeeper.SessionState{Running: controller.starts > controller.stops}
}

type pendingTimer struct{}

func (pendingTimer) Stop() bool { return true }

// heldScheduler never fires; the countdown stays on its first second.
type heldScheduler struct{}

func (heldScheduler) AfterFunc(time.Duration, func()) timekeeper.Timer { return pendingTimer{} }

type savedConfigs struct {
	configs []model.TimerConfig
}

func (saver *savedConfigs) SaveTimerConfig(config model.TimerConfig) error {
	saver.configs = append(saver.configs, config)
	return nil
}

func TestStartUsesEnteredDurations(t *testing.T) {
	app := test.NewTempApp(t)
	controller := &fakeController{}
	view := New(app, controller, preferences.DefaultSettings(), Callbacks{}, "DeepWork")

	if controller.display == nil {
		t.Fatal("expected the window to subscribe")
	}

	view.workEntry.SetText("50")
	view.breakEntry.SetText("10")
	view.handleStart()

	if controller.starts != 1 {
		t.Fatalf("expected one start, got %d", controller.starts)
	}
	if controller.config.WorkSeconds != 3000 || controller.config.BreakSeconds != 600 {
		t.Fatalf("unexpected config %+v", controller.config)
	}

	view.Close()
	if controller.display != nil {
		t.Fatal("expected close to detach the window")
	}
}

func TestToggleStartsWithEnteredDurations(t *testing.T) {
	app := test.NewTempApp(t)
	saver := &savedConfigs{}
	keeper := timekeeper.New(
		preferences.DefaultSettings().TimerConfig(),
		timekeeper.Config{Scheduler: heldScheduler{}},
		timekeeper.Collaborators{ConfigSaver: saver},
		zerolog.Nop(),
	)
	defer keeper.Close()
	view := New(app, keeper, preferences.DefaultSettings(), Callbacks{}, "DeepWork")

	view.workEntry.SetText("1")
	view.breakEntry.SetText("2")
	view.Toggle()

	state := keeper.State()
	if !state.Running || state.TotalSeconds != 60 {
		t.Fatalf("expected a 60s work countdown, got %+v", state)
	}
	if keeper.Config().BreakSeconds != 120 {
		t.Fatalf("expected break of 120s, got %+v", keeper.Config())
	}
	if len(saver.configs) != 1 || saver.configs[0].WorkSeconds != 60 {
		t.Fatalf("expected the entered durations to be saved, got %+v", saver.configs)
	}

	view.Toggle()
	if keeper.State().Running {
		t.Fatal("expected the second toggle to stop the countdown")
	}
}

func TestStartRefusesInvalidDurations(t *testing.T) {
	app := test.NewTempApp(t)
	controller := &fakeController{}
	view := New(app, controller, preferences.DefaultSettings(), Callbacks{}, "DeepWork")

	view.workEntry.SetText("zero")
	view.handleStart()
	if controller.starts != 0 {
		t.Fatal("invalid durations must not start the timer")
	}
}

func TestParseDurations(t *testing.T) {
	config, err := parseDurations(" 25 ", "5")
	if err != nil || config.WorkSeconds != 1500 || config.BreakSeconds != 300 {
		t.Fatalf("unexpected result %+v / %v", config, err)
	}
	if _, err := parseDurations("25", "-1"); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestPhaseColorsFollowPhase(t *testing.T) {
	app := test.NewTempApp(t)
	view := New(app, &fakeController{}, preferences.DefaultSettings(), Callbacks{}, "DeepWork")

	view.ShowPhase(model.PhaseBreak)
	if view.phaseLabel.Text != "Break" {
		t.Fatalf("expected break label, got %q", view.phaseLabel.Text)
	}
	r, g, b, _ := view.background.FillColor.RGBA()
	if r>>8 != 0x37 || g>>8 != 0x13 || b>>8 != 0xaf {
		t.Fatalf("expected break background, got %x %x %x", r>>8, g>>8, b>>8)
	}
}

func TestPhaseEndMessage(t *testing.T) {
	if PhaseEndMessage(timekeeper.CueWorkEnd) != "Session finished! Switching to Break" {
		t.Fatal("work end should announce the break")
	}
	if PhaseEndMessage(timekeeper.CueBreakEnd) != "Session finished! Switching to Work" {
		t.Fatal("break end should announce work")
	}
}
