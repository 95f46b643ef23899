package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDuration indicates a non-positive phase duration.
var ErrInvalidDuration = errors.New("phase duration must be positive")

// Phase identifies one of the two alternating timer modes.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Next returns the phase that follows this one.
func (phase Phase) Next() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// Label returns the human-readable label written to the session log.
func (phase Phase) Label() string {
	if phase == PhaseBreak {
		return "Break"
	}
	return "Work"
}

// ParsePhase maps a log label back to a Phase.
// Labels written by the earlier French build ("Travail", "Repos") are accepted too.
func ParsePhase(label string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "work", "travail":
		return PhaseWork, nil
	case "break", "repos":
		return PhaseBreak, nil
	default:
		return "", fmt.Errorf("unknown phase label %q", label)
	}
}

// TimerConfig holds the configured length of each phase.
type TimerConfig struct {
	WorkSeconds  int
	BreakSeconds int
}

// DurationFor returns the configured seconds for the given phase.
func (config TimerConfig) DurationFor(phase Phase) int {
	if phase == PhaseBreak {
		return config.BreakSeconds
	}
	return config.WorkSeconds
}

// Validate reports whether both phases have a positive duration.
func (config TimerConfig) Validate() error {
	if config.WorkSeconds <= 0 {
		return fmt.Errorf("%w: work %ds", ErrInvalidDuration, config.WorkSeconds)
	}
	if config.BreakSeconds <= 0 {
		return fmt.Errorf("%w: break %ds", ErrInvalidDuration, config.BreakSeconds)
	}
	return nil
}

// SessionRecord is one completed phase in the append-only session log.
type SessionRecord struct {
	ID              string
	Timestamp       time.Time
	Phase           Phase
	DurationMinutes int
	DurationSeconds int
	// Label is the phase label as written in the log, kept for legacy rows.
	Label string
}

// PhaseLabel returns the stored label, or the canonical one for new records.
func (record SessionRecord) PhaseLabel() string {
	if record.Label != "" {
		return record.Label
	}
	return record.Phase.Label()
}
