package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrEngineUnavailable indicates no speech synthesizer binary was found.
var ErrEngineUnavailable = errors.New("speech engine unavailable")

type commandRunner func(ctx context.Context, path string, args ...string) error

// CommandEngine speaks through a local synthesizer binary such as
// espeak-ng or macOS say.
type CommandEngine struct {
	path       string
	markupFlag string
	run        commandRunner
}

var _ Engine = (*CommandEngine)(nil)

// DefaultCommand returns the synthesizer expected on this platform.
func DefaultCommand() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak-ng"
}

// NewCommandEngine resolves command on PATH.
func NewCommandEngine(command string) (*CommandEngine, error) {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand()
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, command, err)
	}
	return &CommandEngine{
		path:       path,
		markupFlag: markupFlagFor(path),
		run:        runCommand,
	}, nil
}

// Say runs the synthesizer and waits for it to finish speaking.
func (engine *CommandEngine) Say(ctx context.Context, text string, mode Mode) error {
	args := engine.argsFor(text, mode)
	if err := engine.run(ctx, engine.path, args...); err != nil {
		return fmt.Errorf("speak %q: %w", text, err)
	}
	return nil
}

// Path returns the resolved synthesizer binary.
func (engine *CommandEngine) Path() string {
	return engine.path
}

func (engine *CommandEngine) argsFor(text string, mode Mode) []string {
	if mode == ModeMarkup {
		if engine.markupFlag != "" {
			return []string{engine.markupFlag, text}
		}
		text = Flatten(text)
	}
	return []string{text}
}

func markupFlagFor(path string) string {
	switch strings.TrimSuffix(filepath.Base(path), ".exe") {
	case "espeak", "espeak-ng":
		return "-m"
	default:
		return ""
	}
}

func runCommand(ctx context.Context, path string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if message := strings.TrimSpace(stderr.String()); message != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(path), err, message)
		}
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
