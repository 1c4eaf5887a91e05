// Package dialogue routes speech and TTS subsystem events to the timer.
package dialogue

import (
	"errors"
	"log/slog"
	"sync"

	"tabatavox/internal/core/intent"
	"tabatavox/internal/speech"
	"tabatavox/internal/voice"
)

// FallbackPrompt is spoken when an utterance matches no command.
const FallbackPrompt = "Sorry; I don't know how to do that."

// Commands is the part of the timer driven by voice.
type Commands interface {
	Start()
	Stop()
	Reset()
}

// Controls toggles the manual controls while the microphone is live.
type Controls interface {
	OnEnableControls()
	OnDisableControls()
}

// Config contains the collaborators of a Manager.
type Config struct {
	Timer    Commands
	Speaker  voice.Speaker
	Controls Controls
	Logger   *slog.Logger
	// Classify defaults to intent.Classify.
	Classify func(utterance string) intent.Intent
}

// Manager dispatches speech events to timer commands and spoken replies.
type Manager struct {
	mu       sync.RWMutex
	timer    Commands
	speaker  voice.Speaker
	controls Controls
	logger   *slog.Logger
	classify func(string) intent.Intent
}

var (
	_ speech.Listener = (*Manager)(nil)
	_ voice.Listener  = (*Manager)(nil)
)

// New creates a dialogue manager.
func New(config Config) (*Manager, error) {
	if config.Timer == nil {
		return nil, errors.New("dialogue: timer is nil")
	}
	if config.Speaker == nil {
		config.Speaker = voice.Discard
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Classify == nil {
		config.Classify = intent.Classify
	}
	return &Manager{
		timer:    config.Timer,
		speaker:  config.Speaker,
		controls: config.Controls,
		logger:   config.Logger,
		classify: config.Classify,
	}, nil
}

// SetTimer swaps the timer that receives commands, e.g. after the settings
// changed and a new timer was built.
func (manager *Manager) SetTimer(timer Commands) {
	if timer == nil {
		return
	}
	manager.mu.Lock()
	manager.timer = timer
	manager.mu.Unlock()
}

// Timer returns the timer that currently receives commands.
func (manager *Manager) Timer() Commands {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.timer
}

// OnSpeechEvent handles one speech pipeline event.
func (manager *Manager) OnSpeechEvent(event speech.Event) {
	switch event.Type {
	case speech.EventRecognize:
		manager.processUtterance(event.Transcript)
	case speech.EventError:
		manager.logger.Warn("speech recognition error", "error", event.Err)
	case speech.EventTrace:
		manager.logger.Debug("speech trace", "message", event.Message)
	case speech.EventActivate:
		manager.logger.Debug("speech activated")
		if manager.controls != nil {
			manager.controls.OnDisableControls()
		}
	case speech.EventDeactivate:
		manager.logger.Debug("speech deactivated")
		if manager.controls != nil {
			manager.controls.OnEnableControls()
		}
	case speech.EventTimeout:
		manager.logger.Debug("speech recognition timed out")
		if manager.controls != nil {
			manager.controls.OnEnableControls()
		}
	}
}

// OnVoiceEvent handles TTS subsystem events. Only failures are of interest.
func (manager *Manager) OnVoiceEvent(event voice.Event) {
	if event.Type == voice.EventError {
		manager.logger.Warn("speech synthesis error", "text", event.Text, "error", event.Err)
	}
}

func (manager *Manager) processUtterance(utterance string) {
	timer := manager.Timer()

	switch classified := manager.classify(utterance); classified {
	case intent.Start:
		timer.Start()
	case intent.Stop:
		timer.Stop()
	case intent.Reset:
		timer.Reset()
	default:
		manager.logger.Info("unknown utterance", "utterance", utterance)
		manager.speaker.Speak(FallbackPrompt, voice.ModePlain)
	}
}
