package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"deepwork/internal/core/model"
	"deepwork/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the preferences document inside the data directory.
const SettingsFileName = "config.yaml"

type yamlColors struct {
	WorkBg  *string `yaml:"work_bg"`
	WorkBtn *string `yaml:"work_btn"`
	BreakBg *string `yaml:"break_bg"`
	BtnText *string `yaml:"btn_text"`
}

type yamlSettings struct {
	WorkMinutes  *int        `yaml:"work_minutes"`
	BreakMinutes *int        `yaml:"break_minutes"`
	Colors       *yamlColors `yaml:"colors"`
	Theme        *string     `yaml:"theme"`
	MiniAlpha    *float64    `yaml:"mini_alpha"`
}

type savedColors struct {
	WorkBg  string `yaml:"work_bg"`
	WorkBtn string `yaml:"work_btn"`
	BreakBg string `yaml:"break_bg"`
	BtnText string `yaml:"btn_text"`
}

type savedSettings struct {
	WorkMinutes  int         `yaml:"work_minutes"`
	BreakMinutes int         `yaml:"break_minutes"`
	Colors       savedColors `yaml:"colors"`
	Theme        string      `yaml:"theme"`
	MiniAlpha    float64     `yaml:"mini_alpha"`
}

// SettingsStore reads and writes the preferences document and keeps the last
// loaded or saved copy in memory.
type SettingsStore struct {
	path    string
	mu      sync.Mutex
	current preferences.Settings
}

// NewSettingsStore creates a store for the document at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path, current: preferences.DefaultSettings()}
}

// Path returns the document location.
func (store *SettingsStore) Path() string {
	return store.path
}

// Current returns the last loaded or saved settings.
func (store *SettingsStore) Current() preferences.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.current
}

// Load reads user preferences. A missing file yields defaults; missing or
// out-of-range keys are back-filled with defaults. On a parse error the defaults
// are kept in memory and the error is returned for the caller to report.
func (store *SettingsStore) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			store.setCurrent(settings)
			return settings, nil
		}
		store.setCurrent(settings)
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		store.setCurrent(settings)
		return settings, fmt.Errorf("parse settings yaml %s: %w", store.path, err)
	}

	applyYamlSettings(&settings, fileData)
	store.setCurrent(settings)
	return settings, nil
}

// Save writes the full preferences document.
func (store *SettingsStore) Save(settings preferences.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.saveLocked(settings)
}

func (store *SettingsStore) saveLocked(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalSettings(settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	store.current = settings
	return nil
}

// MarshalSettings renders settings as the YAML preferences document.
func MarshalSettings(settings preferences.Settings) ([]byte, error) {
	fileData := savedSettings{
		WorkMinutes:  settings.WorkMinutes,
		BreakMinutes: settings.BreakMinutes,
		Colors: savedColors{
			WorkBg:  settings.Colors.WorkBg,
			WorkBtn: settings.Colors.WorkBtn,
			BreakBg: settings.Colors.BreakBg,
			BtnText: settings.Colors.BtnText,
		},
		Theme:     settings.Theme,
		MiniAlpha: settings.MiniAlpha,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// Update applies change to the current settings and saves the result as one step,
// so concurrent updates from the timer and the UI do not overwrite each other.
func (store *SettingsStore) Update(change func(preferences.Settings) preferences.Settings) (preferences.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	updated := change(store.current)
	if err := store.saveLocked(updated); err != nil {
		return store.current, err
	}
	return updated, nil
}

// SaveTimerConfig persists the durations that are about to take effect.
func (store *SettingsStore) SaveTimerConfig(config model.TimerConfig) error {
	_, err := store.Update(func(settings preferences.Settings) preferences.Settings {
		return settings.WithDurations(config)
	})
	return err
}

func (store *SettingsStore) setCurrent(settings preferences.Settings) {
	store.mu.Lock()
	store.current = settings
	store.mu.Unlock()
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes != nil && *fileData.WorkMinutes > 0 {
		settings.WorkMinutes = *fileData.WorkMinutes
	}
	if fileData.BreakMinutes != nil && *fileData.BreakMinutes > 0 {
		settings.BreakMinutes = *fileData.BreakMinutes
	}
	if fileData.Theme != nil && preferences.ValidTheme(*fileData.Theme) {
		settings.Theme = *fileData.Theme
	}
	if fileData.MiniAlpha != nil && *fileData.MiniAlpha >= 0 && *fileData.MiniAlpha <= 1 {
		settings.MiniAlpha = *fileData.MiniAlpha
	}
	if fileData.Colors != nil {
		applyColor(&settings.Colors.WorkBg, fileData.Colors.WorkBg)
		applyColor(&settings.Colors.WorkBtn, fileData.Colors.WorkBtn)
		applyColor(&settings.Colors.BreakBg, fileData.Colors.BreakBg)
		applyColor(&settings.Colors.BtnText, fileData.Colors.BtnText)
	}
}

func applyColor(target *string, value *string) {
	if value != nil && preferences.ValidColor(*value) {
		*target = *value
	}
}
