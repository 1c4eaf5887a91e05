package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"tabatavox/internal/platform"
	"tabatavox/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Cycles       int    `yaml:"cycles"`
	PrepSeconds  *int   `yaml:"prep_seconds,omitempty"`
	WorkSeconds  int    `yaml:"work_seconds"`
	RestSeconds  *int   `yaml:"rest_seconds,omitempty"`
	VoiceEnabled *bool  `yaml:"voice_enabled,omitempty"`
	VoiceCommand string `yaml:"voice_command,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(fs afero.Fs, configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := afero.ReadFile(fs, configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(fs afero.Fs, configPath string, settings preferences.Settings) error {
	if err := fs.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	prep := settings.Timer.Prep
	rest := settings.Timer.Rest
	voiceEnabled := settings.VoiceEnabled
	fileData := yamlSettings{
		Cycles:       settings.Timer.Cycles,
		PrepSeconds:  &prep,
		WorkSeconds:  settings.Timer.Work,
		RestSeconds:  &rest,
		VoiceEnabled: &voiceEnabled,
		VoiceCommand: settings.VoiceCommand,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := afero.WriteFile(fs, configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Cycles > 0 {
		settings.Timer.Cycles = fileData.Cycles
	}
	if fileData.PrepSeconds != nil && *fileData.PrepSeconds >= 0 {
		settings.Timer.Prep = *fileData.PrepSeconds
	}
	if fileData.WorkSeconds > 0 {
		settings.Timer.Work = fileData.WorkSeconds
	}
	if fileData.RestSeconds != nil && *fileData.RestSeconds >= 0 {
		settings.Timer.Rest = *fileData.RestSeconds
	}

	if fileData.VoiceEnabled != nil {
		settings.VoiceEnabled = *fileData.VoiceEnabled
	}
	if fileData.VoiceCommand != "" {
		settings.VoiceCommand = fileData.VoiceCommand
	}
}
