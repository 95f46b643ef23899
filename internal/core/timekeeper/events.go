package timekeeper

import (
	"time"

	"deepwork/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventProgress        EventType = "progress"
	EventPhaseChange     EventType = "phase_change"
	EventSessionComplete EventType = "session_complete"
	EventCue             EventType = "cue"
	EventPersistConfig   EventType = "persist_config"
	EventScheduleTick    EventType = "schedule_tick"
)

// Cue selects the sound played when a phase ends.
type Cue string

const (
	// CueWorkEnd plays when work just finished and a break begins.
	CueWorkEnd Cue = "work_end"
	// CueBreakEnd plays when a break just finished and work begins.
	CueBreakEnd Cue = "break_end"
)

// CueFor returns the cue bound to the phase that just ended.
func CueFor(ended model.Phase) Cue {
	if ended == model.PhaseBreak {
		return CueBreakEnd
	}
	return CueWorkEnd
}

// Event is a side effect requested by the state machine for the caller to dispatch.
type Event struct {
	Type      EventType
	Phase     model.Phase
	Remaining int
	Progress  float64
	Record    model.SessionRecord
	Cue       Cue
	Config    model.TimerConfig
	At        time.Time
}

// SessionState is a snapshot of the live countdown.
type SessionState struct {
	Phase            model.Phase
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
}

// Progress returns the remaining fraction of the current phase in [0, 1].
func (state SessionState) Progress() float64 {
	return progressFraction(state.RemainingSeconds, state.TotalSeconds)
}

// Transition is the outcome of one command or tick.
type Transition struct {
	State  SessionState
	Events []Event
}

func progressFraction(remaining, total int) float64 {
	if total <= 0 || remaining <= 0 {
		return 0
	}
	if remaining >= total {
		return 1
	}
	return float64(remaining) / float64(total)
}
