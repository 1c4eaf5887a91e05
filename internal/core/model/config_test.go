package model

import (
	"errors"
	"testing"
)

func TestTimerSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings TimerSettings
		wantErr  bool
	}{
		{name: "defaults", settings: DefaultTimerSettings()},
		{name: "zero prep and rest", settings: TimerSettings{Cycles: 1, Prep: 0, Work: 1, Rest: 0}},
		{name: "zero cycles", settings: TimerSettings{Cycles: 0, Prep: 1, Work: 1, Rest: 1}, wantErr: true},
		{name: "negative prep", settings: TimerSettings{Cycles: 1, Prep: -1, Work: 1, Rest: 1}, wantErr: true},
		{name: "zero work", settings: TimerSettings{Cycles: 1, Prep: 1, Work: 0, Rest: 1}, wantErr: true},
		{name: "negative rest", settings: TimerSettings{Cycles: 1, Prep: 1, Work: 1, Rest: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSettings) {
					t.Fatalf("Validate() = %v, want ErrInvalidSettings", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestTimerSettingsTotalSeconds(t *testing.T) {
	settings := TimerSettings{Cycles: 2, Prep: 3, Work: 2, Rest: 1}
	if got := settings.TotalSeconds(); got != 8 {
		t.Fatalf("TotalSeconds() = %d, want 8", got)
	}
	if got := DefaultTimerSettings().TotalSeconds(); got != 10+8*30+7*10 {
		t.Fatalf("TotalSeconds() = %d for defaults", got)
	}
}
