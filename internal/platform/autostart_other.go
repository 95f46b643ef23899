//go:build !linux && !darwin && !windows

package platform

import "errors"

func (autostart *Autostart) enable() error {
	return errors.ErrUnsupported
}

func (autostart *Autostart) disable() error {
	return errors.ErrUnsupported
}

func (autostart *Autostart) exists() (bool, error) {
	return false, errors.ErrUnsupported
}
