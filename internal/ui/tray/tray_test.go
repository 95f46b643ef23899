package tray

import (
	"testing"

	"deepwork/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestStatusFollowsProgress(t *testing.T) {
	test.NewTempApp(t)

	toggles := 0
	manager := New(nil, Callbacks{OnToggleTimer: func() { toggles++ }})
	if manager.StatusLine() != "Work: stopped" || manager.timerItem.Label != "Start" {
		t.Fatalf("unexpected idle status %q / %q", manager.StatusLine(), manager.timerItem.Label)
	}

	manager.ShowProgress(model.PhaseBreak, 125, 0.4)
	if manager.StatusLine() != "Break: 02:05" || manager.timerItem.Label != "Stop" {
		t.Fatalf("unexpected running status %q / %q", manager.StatusLine(), manager.timerItem.Label)
	}

	manager.timerItem.Action()
	if toggles != 1 {
		t.Fatalf("expected toggle callback, got %d", toggles)
	}

	manager.ShowProgress(model.PhaseBreak, 0, 0)
	if manager.StatusLine() != "Break: stopped" {
		t.Fatalf("unexpected stopped status %q", manager.StatusLine())
	}
}

func TestIconFollowsRunningState(t *testing.T) {
	test.NewTempApp(t)

	idle := fyne.NewStaticResource("idle.svg", []byte("<svg/>"))
	active := fyne.NewStaticResource("active.svg", []byte("<svg/>"))

	manager := New(nil, Callbacks{})
	if manager.icon() != nil {
		t.Fatal("expected no icon before SetIcons")
	}
	manager.SetIcons(idle, active)
	if manager.icon() != idle {
		t.Fatal("expected idle icon while stopped")
	}
	manager.ShowProgress(model.PhaseWork, 60, 1)
	if manager.icon() != active {
		t.Fatal("expected active icon while running")
	}
}
