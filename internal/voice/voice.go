// Package voice delivers spoken prompts to a text-to-speech engine.
package voice

import "time"

// Mode tells the engine how to interpret prompt text.
type Mode int

const (
	// ModePlain is ordinary text.
	ModePlain Mode = iota
	// ModeMarkup is SSML, e.g. with <break/> pause directives.
	ModeMarkup
)

// String returns the mode name.
func (mode Mode) String() string {
	switch mode {
	case ModePlain:
		return "plain"
	case ModeMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// Speaker accepts fire-and-forget speech requests.
type Speaker interface {
	Speak(text string, mode Mode)
}

// SpeakerFunc adapts a function to Speaker.
type SpeakerFunc func(text string, mode Mode)

// Speak calls the underlying function.
func (f SpeakerFunc) Speak(text string, mode Mode) {
	f(text, mode)
}

// Discard drops every request.
var Discard Speaker = SpeakerFunc(func(string, Mode) {})

// Multi fans a request out to several speakers in order.
func Multi(speakers ...Speaker) Speaker {
	return SpeakerFunc(func(text string, mode Mode) {
		for _, speaker := range speakers {
			if speaker != nil {
				speaker.Speak(text, mode)
			}
		}
	})
}

// EventType defines the type of TTS subsystem event.
type EventType string

const (
	EventSpoken EventType = "spoken"
	EventError  EventType = "error"
)

// Event reports the outcome of a speech request.
type Event struct {
	Type EventType
	Text string
	Mode Mode
	Err  error
	At   time.Time
}

// Listener receives TTS subsystem events.
type Listener interface {
	OnVoiceEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

// OnVoiceEvent calls the underlying function.
func (f ListenerFunc) OnVoiceEvent(event Event) {
	f(event)
}
