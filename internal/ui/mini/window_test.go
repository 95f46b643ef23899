package mini

import (
	"testing"
	"time"

	"deepwork/internal/core/timekeeper"
	"deepwork/internal/ui/mainview"
	"deepwork/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
)

type fakeController struct {
	toggles    int
	subscribed int
	detached   int
}

func (controller *fakeController) Toggle() {
	controller.toggles++
}

func (controller *fakeController) Subscribe(display timekeeper.Display) func() {
	controller.subscribed++
	return func() {
		controller.detached++
	}
}

func TestShowSubscribesOnceAndHideDetaches(t *testing.T) {
	app := test.NewTempApp(t)
	controller := &fakeController{}
	mini := New(app, controller, preferences.DefaultSettings())

	mini.Show()
	mini.Show()
	if controller.subscribed != 1 {
		t.Fatalf("expected one subscription, got %d", controller.subscribed)
	}

	mini.ToggleVisible()
	if controller.detached != 1 || mini.visible {
		t.Fatalf("expected the widget to detach on hide, got %d", controller.detached)
	}

	mini.ToggleVisible()
	if controller.subscribed != 2 {
		t.Fatalf("expected a fresh subscription, got %d", controller.subscribed)
	}
}

func TestApplySettingsUsesMiniAlpha(t *testing.T) {
	app := test.NewTempApp(t)
	mini := New(app, &fakeController{}, preferences.DefaultSettings())

	settings := preferences.DefaultSettings()
	settings.MiniAlpha = 0.4
	mini.ApplySettings(settings)

	_, _, _, a := mini.background.FillColor.RGBA()
	if a>>8 != 102 {
		t.Fatalf("expected background alpha 102, got %d", a>>8)
	}
}

func TestMiniLayoutKeepsGaugeSquare(t *testing.T) {
	countdown := canvas.NewRectangle(nil)
	toggle := canvas.NewRectangle(nil)
	toggle.SetMinSize(fyne.NewSize(30, 30))
	closer := canvas.NewRectangle(nil)
	closer.SetMinSize(fyne.NewSize(20, 20))

	layout := &miniLayout{}
	layout.Layout([]fyne.CanvasObject{countdown, toggle, closer}, fyne.NewSize(200, 150))

	if countdown.Size().Width != countdown.Size().Height {
		t.Fatalf("expected square gauge, got %v", countdown.Size())
	}
	if countdown.Position().Y+countdown.Size().Height > toggle.Position().Y {
		t.Fatal("gauge overlaps the toggle button")
	}
	if closer.Position().X+closer.Size().Width != 200 {
		t.Fatalf("expected close button in the top-right corner, got %v", closer.Position())
	}
}

type pendingTimer struct{}

func (pendingTimer) Stop() bool { return true }

type heldScheduler struct{}

func (heldScheduler) AfterFunc(time.Duration, func()) timekeeper.Timer { return pendingTimer{} }

func TestPlayButtonStartsWithMainWindowDurations(t *testing.T) {
	app := test.NewTempApp(t)
	keeper := timekeeper.New(
		preferences.DefaultSettings().TimerConfig(),
		timekeeper.Config{Scheduler: heldScheduler{}},
		timekeeper.Collaborators{},
		zerolog.Nop(),
	)
	defer keeper.Close()

	settings := preferences.DefaultSettings()
	settings.WorkMinutes = 1
	view := mainview.New(app, keeper, settings, mainview.Callbacks{}, "DeepWork")
	mini := New(app, view, settings)
	mini.Show()

	test.Tap(mini.toggleButton)
	if state := keeper.State(); !state.Running || state.TotalSeconds != 60 {
		t.Fatalf("expected the 1 minute typed in the main window, got %+v", state)
	}

	test.Tap(mini.toggleButton)
	if keeper.State().Running {
		t.Fatal("expected the second tap to stop the countdown")
	}
}
