package preferences

import (
	"fmt"
	"regexp"

	"deepwork/internal/core/model"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// BreakButtonColor is fixed; only the work button color is user editable.
	BreakButtonColor = "#444444"

	MinMiniAlpha = 0.4
	MaxMiniAlpha = 1.0
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Colors holds the user-picked palette.
type Colors struct {
	WorkBg  string
	WorkBtn string
	BreakBg string
	BtnText string
}

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes  int
	BreakMinutes int
	Colors       Colors
	Theme        string
	MiniAlpha    float64
}

// PhaseColors are the colors applied to the windows for one phase.
type PhaseColors struct {
	Background string
	Button     string
	Text       string
}

// DefaultSettings returns default settings for DeepWork.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  25,
		BreakMinutes: 5,
		Colors:       DefaultColors(),
		Theme:        ThemeDark,
		MiniAlpha:    1.0,
	}
}

// DefaultColors returns the stock palette.
func DefaultColors() Colors {
	return Colors{
		WorkBg:  "#924040",
		WorkBtn: "#556027",
		BreakBg: "#3713af",
		BtnText: "#ffffff",
	}
}

// TimerConfig converts settings to the durations used by the timekeeper.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		WorkSeconds:  settings.WorkMinutes * 60,
		BreakSeconds: settings.BreakMinutes * 60,
	}
}

// WithDurations returns a copy carrying the given durations in whole minutes.
func (settings Settings) WithDurations(config model.TimerConfig) Settings {
	settings.WorkMinutes = config.WorkSeconds / 60
	settings.BreakMinutes = config.BreakSeconds / 60
	return settings
}

// PhaseColors returns background, button and text colors for a phase.
func (settings Settings) PhaseColors(phase model.Phase) PhaseColors {
	if phase == model.PhaseBreak {
		return PhaseColors{
			Background: settings.Colors.BreakBg,
			Button:     BreakButtonColor,
			Text:       settings.Colors.BtnText,
		}
	}
	return PhaseColors{
		Background: settings.Colors.WorkBg,
		Button:     settings.Colors.WorkBtn,
		Text:       settings.Colors.BtnText,
	}
}

// ToggleTheme flips between light and dark.
func (settings Settings) ToggleTheme() Settings {
	if settings.Theme == ThemeDark {
		settings.Theme = ThemeLight
	} else {
		settings.Theme = ThemeDark
	}
	return settings
}

// Dark reports whether the dark appearance is selected.
func (settings Settings) Dark() bool {
	return settings.Theme != ThemeLight
}

// Validate reports the first invalid field.
func (settings Settings) Validate() error {
	if err := settings.TimerConfig().Validate(); err != nil {
		return err
	}
	if !ValidTheme(settings.Theme) {
		return fmt.Errorf("invalid theme %q", settings.Theme)
	}
	if settings.MiniAlpha < 0 || settings.MiniAlpha > 1 {
		return fmt.Errorf("mini alpha %v outside [0, 1]", settings.MiniAlpha)
	}
	for name, value := range map[string]string{
		"work_bg":  settings.Colors.WorkBg,
		"work_btn": settings.Colors.WorkBtn,
		"break_bg": settings.Colors.BreakBg,
		"btn_text": settings.Colors.BtnText,
	} {
		if !ValidColor(value) {
			return fmt.Errorf("invalid color %s=%q", name, value)
		}
	}
	return nil
}

// ValidTheme reports whether theme is a known appearance mode.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// ValidColor reports whether value is a #rrggbb color.
func ValidColor(value string) bool {
	return hexColorPattern.MatchString(value)
}
