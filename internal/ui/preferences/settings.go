package preferences

import (
	"tabatavox/internal/core/model"
	"tabatavox/internal/voice"
)

// Settings defines editable user preferences.
type Settings struct {
	Timer model.TimerSettings

	VoiceEnabled bool
	VoiceCommand string
}

// DefaultSettings returns default settings for the app.
func DefaultSettings() Settings {
	return Settings{
		Timer:        model.DefaultTimerSettings(),
		VoiceEnabled: true,
		VoiceCommand: voice.DefaultCommand(),
	}
}

// TimerSettings returns the timer configuration.
func (settings Settings) TimerSettings() model.TimerSettings {
	return settings.Timer
}
