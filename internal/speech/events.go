// Package speech defines the events delivered by a speech recognition
// pipeline and a console transcript source that produces them.
package speech

import "time"

// EventType defines the type of speech pipeline event.
type EventType string

const (
	EventRecognize  EventType = "recognize"
	EventError      EventType = "error"
	EventTrace      EventType = "trace"
	EventActivate   EventType = "activate"
	EventDeactivate EventType = "deactivate"
	EventTimeout    EventType = "timeout"
)

// Event is a speech pipeline notification. Transcript is set for
// EventRecognize, Err for EventError and Message for EventTrace.
type Event struct {
	Type       EventType
	Transcript string
	Err        error
	Message    string
	At         time.Time
}

// Listener receives speech pipeline events.
type Listener interface {
	OnSpeechEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

// OnSpeechEvent calls the underlying function.
func (f ListenerFunc) OnSpeechEvent(event Event) {
	f(event)
}

// Recognized builds a transcript-ready event.
func Recognized(transcript string) Event {
	return Event{Type: EventRecognize, Transcript: transcript, At: time.Now()}
}

// Failed builds a recognition error event.
func Failed(err error) Event {
	return Event{Type: EventError, Err: err, At: time.Now()}
}

// Trace builds a diagnostic trace event.
func Trace(message string) Event {
	return Event{Type: EventTrace, Message: message, At: time.Now()}
}

// Activated builds an activation event.
func Activated() Event {
	return Event{Type: EventActivate, At: time.Now()}
}

// Deactivated builds a deactivation event.
func Deactivated() Event {
	return Event{Type: EventDeactivate, At: time.Now()}
}

// TimedOut builds a recognition timeout event.
func TimedOut() Event {
	return Event{Type: EventTimeout, At: time.Now()}
}
