//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func (autostart *Autostart) entryPath() (string, error) {
	dir := autostart.baseDir
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		dir = configDir
	}
	return filepath.Join(dir, "autostart", autostart.slug()+".desktop"), nil
}

func (autostart *Autostart) enable() error {
	path, err := autostart.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(autostart.desktopEntry()), 0o644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func (autostart *Autostart) disable() error {
	path, err := autostart.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

func (autostart *Autostart) exists() (bool, error) {
	path, err := autostart.entryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (autostart *Autostart) desktopEntry() string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Work/break focus timer
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, autostart.AppName, autostart.commandLine())
}
