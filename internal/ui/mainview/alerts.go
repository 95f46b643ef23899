package mainview

import (
	"deepwork/internal/core/model"
	"deepwork/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Alerts sends phase-end notifications and shows collaborator failures.
type Alerts struct {
	app    fyne.App
	parent fyne.Window
}

// NewAlerts creates alerts whose dialogs attach to parent.
// A nil parent is allowed until SetParent is called; errors then go out as notifications.
func NewAlerts(app fyne.App, parent fyne.Window) *Alerts {
	return &Alerts{app: app, parent: parent}
}

// SetParent attaches later error dialogs to parent. Call it from the UI goroutine.
func (alerts *Alerts) SetParent(parent fyne.Window) {
	alerts.parent = parent
}

// Play implements timekeeper.CuePlayer with a desktop notification.
func (alerts *Alerts) Play(cue timekeeper.Cue) error {
	message := PhaseEndMessage(cue)
	fyne.Do(func() {
		alerts.app.SendNotification(fyne.NewNotification("DeepWork", message))
	})
	return nil
}

// ReportError implements timekeeper.Notifier with a non-fatal error dialog.
func (alerts *Alerts) ReportError(err error) {
	fyne.Do(func() {
		if alerts.parent == nil {
			alerts.app.SendNotification(fyne.NewNotification("DeepWork", err.Error()))
			return
		}
		dialog.ShowError(err, alerts.parent)
	})
}

// PhaseEndMessage is the notification text for a cue.
func PhaseEndMessage(cue timekeeper.Cue) string {
	next := model.PhaseBreak
	if cue == timekeeper.CueBreakEnd {
		next = model.PhaseWork
	}
	return "Session finished! Switching to " + next.Label()
}
