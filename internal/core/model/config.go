package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings indicates a TimerSettings value failed validation.
var ErrInvalidSettings = errors.New("invalid timer settings")

// TimerSettings contains the immutable configuration of a Tabata session.
// Durations are whole seconds.
type TimerSettings struct {
	Cycles int
	Prep   int
	Work   int
	Rest   int
}

// DefaultTimerSettings returns eight cycles of 30s work and 10s rest after a
// 10s preparation.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		Cycles: 8,
		Prep:   10,
		Work:   30,
		Rest:   10,
	}
}

// Validate reports whether the settings can drive a session.
func (settings TimerSettings) Validate() error {
	if settings.Cycles <= 0 {
		return fmt.Errorf("%w: cycles must be positive, got %d", ErrInvalidSettings, settings.Cycles)
	}
	if settings.Prep < 0 {
		return fmt.Errorf("%w: prep must not be negative, got %d", ErrInvalidSettings, settings.Prep)
	}
	if settings.Work <= 0 {
		return fmt.Errorf("%w: work must be positive, got %d", ErrInvalidSettings, settings.Work)
	}
	if settings.Rest < 0 {
		return fmt.Errorf("%w: rest must not be negative, got %d", ErrInvalidSettings, settings.Rest)
	}
	return nil
}

// TotalSeconds returns the nominal wall-clock length of a full session.
func (settings TimerSettings) TotalSeconds() int {
	if settings.Cycles <= 0 {
		return settings.Prep
	}
	return settings.Prep + settings.Cycles*settings.Work + (settings.Cycles-1)*settings.Rest
}
