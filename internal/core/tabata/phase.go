package tabata

import "tabatavox/internal/core/model"

// Phase is a named span of the countdown.
type Phase string

const (
	PhasePrep Phase = "prep"
	PhaseWork Phase = "work"
	PhaseRest Phase = "rest"
)

// Label returns the display and announcement text for the phase.
func (phase Phase) Label() string {
	return string(phase)
}

// Next returns the phase that follows. Prep only occurs once.
func (phase Phase) Next() Phase {
	switch phase {
	case PhasePrep:
		return PhaseWork
	case PhaseWork:
		return PhaseRest
	default:
		return PhaseWork
	}
}

// Duration returns the configured length of the phase in seconds.
func (phase Phase) Duration(settings model.TimerSettings) int {
	switch phase {
	case PhasePrep:
		return settings.Prep
	case PhaseWork:
		return settings.Work
	case PhaseRest:
		return settings.Rest
	default:
		return 0
	}
}

// State is a point-in-time copy of the timer.
type State struct {
	Phase            Phase
	Cycle            int
	SecondsRemaining int
	Running          bool
	Session          string
}
