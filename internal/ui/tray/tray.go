package tray

import (
	"fmt"

	"deepwork/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleTimer func()
	OnMini        func()
	OnShowMain    func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	timerItem  *fyne.MenuItem
	callbacks  Callbacks
	phase      model.Phase
	remaining  int
	running    bool
	idleIcon   fyne.Resource
	activeIcon fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		phase:     model.PhaseWork,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.timerItem = fyne.NewMenuItem("", func() {
		invoke(manager.callbacks.OnToggleTimer)
	})

	manager.refresh()
	return manager
}

// ShowProgress implements timekeeper.Display.
func (manager *Manager) ShowProgress(phase model.Phase, remaining int, progress float64) {
	fyne.Do(func() {
		manager.phase = phase
		manager.remaining = remaining
		manager.running = progress > 0
		manager.refresh()
	})
}

// ShowPhase implements timekeeper.Display.
func (manager *Manager) ShowPhase(phase model.Phase) {
	fyne.Do(func() {
		manager.phase = phase
		manager.refresh()
	})
}

// SetIcons sets the tray icons shown while stopped and while counting down.
func (manager *Manager) SetIcons(idle, active fyne.Resource) {
	manager.idleIcon = idle
	manager.activeIcon = active
	manager.refresh()
}

// StatusLine returns the text of the status item.
func (manager *Manager) StatusLine() string {
	return manager.statusItem.Label
}

func (manager *Manager) refresh() {
	if manager.running {
		manager.statusItem.Label = fmt.Sprintf("%s: %s", manager.phase.Label(), model.FormatClock(manager.remaining))
		manager.timerItem.Label = "Stop"
	} else {
		manager.statusItem.Label = fmt.Sprintf("%s: stopped", manager.phase.Label())
		manager.timerItem.Label = "Start"
	}

	if manager.app == nil {
		return
	}
	if icon := manager.icon(); icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("DeepWork",
		manager.statusItem,
		manager.timerItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show window", func() { invoke(manager.callbacks.OnShowMain) }),
		fyne.NewMenuItem("Mini widget", func() { invoke(manager.callbacks.OnMini) }),
		fyne.NewMenuItem("Preferences", func() { invoke(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) }),
	))
}

func (manager *Manager) icon() fyne.Resource {
	if manager.running && manager.activeIcon != nil {
		return manager.activeIcon
	}
	return manager.idleIcon
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
