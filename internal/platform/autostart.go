package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyCommand indicates an autostart entry without a program to run.
var ErrEmptyCommand = errors.New("autostart command is empty")

// Autostart manages the start-at-login entry of the application.
type Autostart struct {
	AppName string
	Command []string

	// baseDir overrides the directory holding the entry; empty means the OS default.
	baseDir string
}

// NewAutostart returns an entry that launches the running executable with args.
func NewAutostart(appName string, args ...string) (*Autostart, error) {
	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return &Autostart{
		AppName: appName,
		Command: append([]string{executable}, args...),
	}, nil
}

// Enable writes the entry, replacing any previous one.
func (autostart *Autostart) Enable() error {
	if err := autostart.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := autostart.enable(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// Disable removes the entry. A missing entry is not an error.
func (autostart *Autostart) Disable() error {
	if strings.TrimSpace(autostart.AppName) == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}
	if err := autostart.disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

// Enabled reports whether the entry exists.
func (autostart *Autostart) Enabled() (bool, error) {
	exists, err := autostart.exists()
	if err != nil {
		return false, fmt.Errorf("query autostart: %w", err)
	}
	return exists, nil
}

func (autostart *Autostart) validate() error {
	if strings.TrimSpace(autostart.AppName) == "" {
		return fmt.Errorf("app name is empty")
	}
	if len(autostart.Command) == 0 || autostart.Command[0] == "" {
		return ErrEmptyCommand
	}
	return nil
}

func (autostart *Autostart) slug() string {
	name := strings.ToLower(strings.TrimSpace(autostart.AppName))
	if name == "" {
		name = "deepwork"
	}
	return strings.ReplaceAll(name, " ", "-")
}

// commandLine joins the command, quoting arguments that contain spaces.
func (autostart *Autostart) commandLine() string {
	parts := make([]string, 0, len(autostart.Command))
	for _, part := range autostart.Command {
		trimmed := strings.Trim(part, `"`)
		if strings.ContainsAny(trimmed, " \t") {
			trimmed = `"` + trimmed + `"`
		}
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, " ")
}
