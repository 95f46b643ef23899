package preferences

import (
	"testing"

	"deepwork/internal/core/model"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()
	if err := settings.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	config := settings.TimerConfig()
	if config.WorkSeconds != 1500 || config.BreakSeconds != 300 {
		t.Fatalf("unexpected default durations %+v", config)
	}
	if settings.Theme != ThemeDark {
		t.Fatalf("expected dark theme by default, got %s", settings.Theme)
	}
}

func TestWithDurations(t *testing.T) {
	settings := DefaultSettings().WithDurations(model.TimerConfig{WorkSeconds: 50 * 60, BreakSeconds: 10 * 60})
	if settings.WorkMinutes != 50 || settings.BreakMinutes != 10 {
		t.Fatalf("unexpected minutes %d/%d", settings.WorkMinutes, settings.BreakMinutes)
	}
}

func TestPhaseColors(t *testing.T) {
	settings := DefaultSettings()
	work := settings.PhaseColors(model.PhaseWork)
	if work.Background != "#924040" || work.Button != "#556027" {
		t.Fatalf("unexpected work colors %+v", work)
	}
	rest := settings.PhaseColors(model.PhaseBreak)
	if rest.Background != "#3713af" || rest.Button != BreakButtonColor {
		t.Fatalf("unexpected break colors %+v", rest)
	}
}

func TestToggleTheme(t *testing.T) {
	settings := DefaultSettings().ToggleTheme()
	if settings.Theme != ThemeLight {
		t.Fatalf("expected light, got %s", settings.Theme)
	}
	if settings.ToggleTheme().Theme != ThemeDark {
		t.Fatal("expected toggle back to dark")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Settings){
		"work minutes": func(s *Settings) { s.WorkMinutes = 0 },
		"theme":        func(s *Settings) { s.Theme = "solarized" },
		"alpha":        func(s *Settings) { s.MiniAlpha = 1.5 },
		"color":        func(s *Settings) { s.Colors.BreakBg = "blue" },
	}
	for name, mutate := range cases {
		settings := DefaultSettings()
		mutate(&settings)
		if err := settings.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
