package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"tabatavox/internal/core/tabata"
	"tabatavox/internal/storage"
	"tabatavox/internal/ui/preferences"
	"tabatavox/internal/voice"
)

func newLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the settings file and applies command-line overrides.
// A malformed file is logged and replaced by defaults.
func loadSettings(fs afero.Fs, opts *options, logger *slog.Logger) (preferences.Settings, string, error) {
	configPath := opts.configPath
	if configPath == "" {
		resolved, err := storage.ResolveConfigPath(appName)
		if err != nil {
			return preferences.Settings{}, "", fmt.Errorf("resolve settings path: %w", err)
		}
		configPath = resolved
	}

	settings, err := storage.LoadSettings(fs, configPath)
	if err != nil {
		logger.Warn("settings unreadable; using defaults", "path", configPath, "error", err)
	}
	applyOverrides(&settings, opts)
	if err := settings.Timer.Validate(); err != nil {
		return settings, configPath, fmt.Errorf("load settings: %w", err)
	}
	return settings, configPath, nil
}

func applyOverrides(settings *preferences.Settings, opts *options) {
	if opts.noVoice {
		settings.VoiceEnabled = false
	}
	if command := strings.TrimSpace(opts.voiceCommand); command != "" {
		settings.VoiceCommand = command
	}
}

// selectEngine returns the synthesizer for settings, or nil when voice is
// disabled or no synthesizer is installed.
func selectEngine(settings preferences.Settings, logger *slog.Logger) voice.Engine {
	if !settings.VoiceEnabled {
		return nil
	}
	engine, err := voice.NewCommandEngine(settings.VoiceCommand)
	if err != nil {
		logger.Warn("voice output disabled", "error", err)
		return nil
	}
	logger.Debug("voice output ready", "engine", engine.Path())
	return engine
}

// statusLine summarizes a timer event for the tray.
func statusLine(event tabata.Event, cycles int) string {
	switch event.Type {
	case tabata.EventSessionDone:
		return "done"
	case tabata.EventReset:
		return "ready"
	}
	return fmt.Sprintf("%s %02d:%02d (round %d/%d)",
		strings.ToUpper(event.Phase.Label()), event.Remaining/60, event.Remaining%60, event.Cycle, cycles)
}
