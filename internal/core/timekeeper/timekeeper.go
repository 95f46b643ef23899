package timekeeper

import (
	"context"
	"sync"
	"time"

	"deepwork/internal/core/model"

	"github.com/rs/zerolog"
)

// Display is a passive view of the countdown.
// Implementations must not call back into the TimeKeeper from these methods.
type Display interface {
	ShowProgress(phase model.Phase, remaining int, progress float64)
	ShowPhase(phase model.Phase)
}

// Recorder durably appends completed sessions.
type Recorder interface {
	Append(ctx context.Context, record model.SessionRecord) error
}

// CuePlayer plays the sound bound to a phase end.
type CuePlayer interface {
	Play(cue Cue) error
}

// ConfigSaver persists the durations that are about to take effect.
type ConfigSaver interface {
	SaveTimerConfig(config model.TimerConfig) error
}

// Notifier surfaces collaborator failures to the user.
type Notifier interface {
	ReportError(err error)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}

// Collaborators are the I/O owners the TimeKeeper dispatches to. Nil members are skipped.
type Collaborators struct {
	Recorder    Recorder
	Cues        CuePlayer
	ConfigSaver ConfigSaver
	Notifier    Notifier
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	Scheduler    Scheduler
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

type subscription struct {
	id      int
	display Display
}

// TimeKeeper drives a Machine from a one-shot timer that it re-arms after every tick
// and dispatches the emitted events to its collaborators.
type TimeKeeper struct {
	mu         sync.Mutex
	dispatchMu sync.Mutex
	machine    *Machine
	config     model.TimerConfig
	options    Config
	deps       Collaborators
	displays   []subscription
	nextID     int
	pending    Timer
	generation uint64
	closed     bool
	logger     zerolog.Logger
}

// New creates a TimeKeeper positioned on the work phase.
func New(config model.TimerConfig, options Config, deps Collaborators, logger zerolog.Logger) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = systemClock{}
	}
	if options.Scheduler == nil {
		options.Scheduler = systemScheduler{}
	}

	return &TimeKeeper{
		machine: NewMachine(model.PhaseWork),
		config:  config,
		options: options,
		deps:    deps,
		logger:  logger.With().Str("component", "timekeeper").Logger(),
	}
}

// Subscribe attaches a display and immediately shows it the current state.
// The returned function detaches it again.
func (keeper *TimeKeeper) Subscribe(display Display) func() {
	keeper.mu.Lock()
	keeper.nextID++
	id := keeper.nextID
	keeper.displays = append(keeper.displays, subscription{id: id, display: display})
	state := keeper.machine.State()
	keeper.dispatchMu.Lock()
	keeper.mu.Unlock()

	display.ShowPhase(state.Phase)
	if state.Running {
		display.ShowProgress(state.Phase, state.RemainingSeconds, state.Progress())
	} else {
		display.ShowProgress(state.Phase, 0, 0)
	}
	keeper.dispatchMu.Unlock()

	return func() {
		keeper.unsubscribe(id)
	}
}

func (keeper *TimeKeeper) unsubscribe(id int) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for index, sub := range keeper.displays {
		if sub.id == id {
			keeper.displays = append(keeper.displays[:index], keeper.displays[index+1:]...)
			return
		}
	}
}

// Start begins the current phase. Calling it while running has no effect.
func (keeper *TimeKeeper) Start() {
	keeper.apply(func(now time.Time) Transition {
		return keeper.machine.Start(keeper.config, now)
	})
}

// Stop halts the countdown and empties the gauge.
func (keeper *TimeKeeper) Stop() {
	keeper.apply(func(now time.Time) Transition {
		return keeper.machine.Stop(now)
	})
}

// Toggle starts an idle timer or stops a running one.
func (keeper *TimeKeeper) Toggle() {
	keeper.apply(func(now time.Time) Transition {
		return keeper.machine.Toggle(keeper.config, now)
	})
}

// UpdateConfig replaces the configured durations. A running countdown keeps the
// length it was started with; the new values apply from the next start.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	keeper.mu.Lock()
	keeper.config = config
	keeper.mu.Unlock()
	return nil
}

// Config returns the authoritative in-memory durations.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// State returns a snapshot of the countdown.
func (keeper *TimeKeeper) State() SessionState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.machine.State()
}

// Close cancels the pending tick. Further commands are ignored.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.closed = true
	keeper.cancelPendingLocked()
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.apply(func(now time.Time) Transition {
		if generation != keeper.generation {
			return Transition{State: keeper.machine.State()}
		}
		keeper.pending = nil
		return keeper.machine.Tick(keeper.config, now)
	})
}

func (keeper *TimeKeeper) apply(step func(now time.Time) Transition) {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}

	before := keeper.machine.State()
	transition := step(keeper.options.Clock.Now())
	if before.Running && !transition.State.Running {
		keeper.cancelPendingLocked()
	}
	for _, event := range transition.Events {
		if event.Type == EventScheduleTick {
			keeper.armLocked()
		}
	}

	displays := make([]Display, 0, len(keeper.displays))
	for _, sub := range keeper.displays {
		displays = append(displays, sub.display)
	}
	keeper.dispatchMu.Lock()
	keeper.mu.Unlock()
	defer keeper.dispatchMu.Unlock()

	for _, event := range transition.Events {
		keeper.dispatch(event, displays)
	}
}

func (keeper *TimeKeeper) armLocked() {
	keeper.cancelPendingLocked()
	generation := keeper.generation
	keeper.pending = keeper.options.Scheduler.AfterFunc(keeper.options.TickInterval, func() {
		keeper.tick(generation)
	})
}

func (keeper *TimeKeeper) cancelPendingLocked() {
	keeper.generation++
	if keeper.pending != nil {
		keeper.pending.Stop()
		keeper.pending = nil
	}
}

func (keeper *TimeKeeper) dispatch(event Event, displays []Display) {
	switch event.Type {
	case EventProgress:
		for _, display := range displays {
			display.ShowProgress(event.Phase, event.Remaining, event.Progress)
		}
	case EventPhaseChange:
		keeper.logger.Info().Str("phase", string(event.Phase)).Msg("phase changed")
		for _, display := range displays {
			display.ShowPhase(event.Phase)
		}
	case EventSessionComplete:
		keeper.logger.Info().
			Str("phase", string(event.Record.Phase)).
			Int("minutes", event.Record.DurationMinutes).
			Msg("session complete")
		if keeper.deps.Recorder != nil {
			if err := keeper.deps.Recorder.Append(context.Background(), event.Record); err != nil {
				keeper.fail(err, "append session record")
			}
		}
	case EventCue:
		if keeper.deps.Cues != nil {
			if err := keeper.deps.Cues.Play(event.Cue); err != nil {
				keeper.fail(err, "play cue")
			}
		}
	case EventPersistConfig:
		if keeper.deps.ConfigSaver != nil {
			if err := keeper.deps.ConfigSaver.SaveTimerConfig(event.Config); err != nil {
				keeper.fail(err, "save timer config")
			}
		}
	}
}

func (keeper *TimeKeeper) fail(err error, action string) {
	keeper.logger.Error().Err(err).Msg(action)
	if keeper.deps.Notifier != nil {
		keeper.deps.Notifier.ReportError(err)
	}
}
