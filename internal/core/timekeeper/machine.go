package timekeeper

import (
	"time"

	"deepwork/internal/core/model"
)

// Machine is the work/break countdown state machine.
//
// It performs no I/O and never schedules anything itself: every command returns
// the resulting state together with the events the caller must dispatch.
//
//	Idle --Start--> Running --Tick (remaining hits 0)--> Running (next phase)
//	Running --Stop--> Idle
type Machine struct {
	state SessionState
}

// NewMachine creates an idle machine positioned on the given phase.
func NewMachine(phase model.Phase) *Machine {
	if phase != model.PhaseBreak {
		phase = model.PhaseWork
	}
	return &Machine{state: SessionState{Phase: phase}}
}

// State returns the current snapshot.
func (machine *Machine) State() SessionState {
	return machine.state
}

// Start begins a countdown for the current phase. It is a no-op while running
// and when the configured duration of the phase is not positive.
func (machine *Machine) Start(config model.TimerConfig, now time.Time) Transition {
	var events []Event
	events = machine.begin(config, now, events)
	return machine.transition(events)
}

// Stop halts the countdown and resets the visible gauge to empty.
// The remaining seconds are kept; a later Start begins the phase afresh.
func (machine *Machine) Stop(now time.Time) Transition {
	machine.state.Running = false
	return machine.transition([]Event{{
		Type:  EventProgress,
		Phase: machine.state.Phase,
		At:    now,
	}})
}

// Toggle stops a running countdown or starts an idle one.
func (machine *Machine) Toggle(config model.TimerConfig, now time.Time) Transition {
	if machine.state.Running {
		return machine.Stop(now)
	}
	return machine.Start(config, now)
}

// Tick advances the countdown by one second. Ticks arriving while idle are ignored.
// Reaching zero completes the phase and chains straight into the next one.
func (machine *Machine) Tick(config model.TimerConfig, now time.Time) Transition {
	if !machine.state.Running {
		return machine.transition(nil)
	}

	var events []Event
	if machine.state.RemainingSeconds > 0 {
		events = append(events, Event{
			Type:      EventProgress,
			Phase:     machine.state.Phase,
			Remaining: machine.state.RemainingSeconds,
			Progress:  machine.state.Progress(),
			At:        now,
		})
		machine.state.RemainingSeconds--
	}

	if machine.state.RemainingSeconds > 0 {
		events = append(events, Event{Type: EventScheduleTick, Phase: machine.state.Phase, At: now})
		return machine.transition(events)
	}

	events = machine.complete(config, now, events)
	return machine.transition(events)
}

func (machine *Machine) complete(config model.TimerConfig, now time.Time, events []Event) []Event {
	ended := machine.state.Phase
	total := machine.state.TotalSeconds

	events = append(events,
		Event{
			Type:  EventSessionComplete,
			Phase: ended,
			Record: model.SessionRecord{
				Timestamp:       now,
				Phase:           ended,
				DurationMinutes: total / 60,
				DurationSeconds: total,
			},
			At: now,
		},
		Event{Type: EventCue, Phase: ended, Cue: CueFor(ended), At: now},
	)

	machine.state.Phase = ended.Next()
	machine.state.Running = false
	events = append(events, Event{Type: EventPhaseChange, Phase: machine.state.Phase, At: now})

	return machine.begin(config, now, events)
}

func (machine *Machine) begin(config model.TimerConfig, now time.Time, events []Event) []Event {
	if machine.state.Running {
		return events
	}
	duration := config.DurationFor(machine.state.Phase)
	if duration <= 0 {
		return events
	}

	machine.state.TotalSeconds = duration
	machine.state.RemainingSeconds = duration
	machine.state.Running = true

	return append(events,
		Event{Type: EventPersistConfig, Phase: machine.state.Phase, Config: config, At: now},
		Event{
			Type:      EventProgress,
			Phase:     machine.state.Phase,
			Remaining: duration,
			Progress:  1,
			At:        now,
		},
		Event{Type: EventScheduleTick, Phase: machine.state.Phase, At: now},
	)
}

func (machine *Machine) transition(events []Event) Transition {
	return Transition{State: machine.state, Events: events}
}
