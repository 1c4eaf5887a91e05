package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ConsoleSource treats each input line as one push-to-talk utterance.
// A blank line is an activation that heard nothing and times out.
type ConsoleSource struct {
	input io.Reader
}

// NewConsoleSource reads utterances from input.
func NewConsoleSource(input io.Reader) *ConsoleSource {
	return &ConsoleSource{input: input}
}

// Run delivers events to listener until input ends or ctx is cancelled.
func (source *ConsoleSource) Run(ctx context.Context, listener Listener) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(source.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	listener.OnSpeechEvent(Trace("console speech source ready"))
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return source.finish(listener, scanErr)
			}
			source.deliver(listener, line)
		}
	}
}

func (source *ConsoleSource) deliver(listener Listener, line string) {
	listener.OnSpeechEvent(Activated())
	utterance := strings.TrimSpace(line)
	if utterance == "" {
		listener.OnSpeechEvent(TimedOut())
		return
	}
	listener.OnSpeechEvent(Recognized(utterance))
	listener.OnSpeechEvent(Deactivated())
}

func (source *ConsoleSource) finish(listener Listener, scanErr <-chan error) error {
	var err error
	select {
	case err = <-scanErr:
	default:
	}
	if err != nil {
		listener.OnSpeechEvent(Failed(err))
		return fmt.Errorf("read utterances: %w", err)
	}
	return nil
}
