package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Options holds the runtime options of the application.
type Options struct {
	DataDir    string           `mapstructure:"data_dir"`
	Log        LogOptions       `mapstructure:"log"`
	SessionLog SessionLogConfig `mapstructure:"session_log"`
	Timer      TimerOptions     `mapstructure:"timer"`
	Sounds     SoundOptions     `mapstructure:"sounds"`
}

// LogOptions defines logging behavior
type LogOptions struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionLogConfig selects the session log backend
type SessionLogConfig struct {
	Backend string `mapstructure:"backend"`
}

// TimerOptions tunes the countdown driver
type TimerOptions struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// SoundOptions points phase-end cues at WAV files. Empty means a synthesized tone.
type SoundOptions struct {
	WorkEnd  string `mapstructure:"work_end"`
	BreakEnd string `mapstructure:"break_end"`
}

// New returns a viper instance carrying defaults and environment bindings.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DEEPWORK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional options file and decodes everything into Options.
func Load(v *viper.Viper, configPath string) (*Options, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var options Options
	if err := v.Unmarshal(&options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&options); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &options, nil
}

// DefaultDataDir returns the per-user directory holding preferences and logs.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "."
	}
	return filepath.Join(base, "DeepWork")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("session_log.backend", "csv")

	v.SetDefault("timer.tick_interval", "1s")

	v.SetDefault("sounds.work_end", "")
	v.SetDefault("sounds.break_end", "")
}

func validate(options *Options) error {
	if options.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch options.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", options.Log.Format)
	}
	switch options.SessionLog.Backend {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("invalid session log backend: %s", options.SessionLog.Backend)
	}
	if options.Timer.TickInterval <= 0 {
		return fmt.Errorf("invalid tick interval: %s", options.Timer.TickInterval)
	}
	return nil
}
