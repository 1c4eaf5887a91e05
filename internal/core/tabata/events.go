package tabata

import "time"

// EventType defines the type of timer event.
type EventType string

const (
	EventStarted     EventType = "started"
	EventStopped     EventType = "stopped"
	EventReset       EventType = "reset"
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventSessionDone EventType = "session_done"
)

// Event represents a timer update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Cycle     int
	Remaining int
	Session   string
	At        time.Time
}
