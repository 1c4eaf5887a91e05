package voice

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultQueueSize = 16

// Engine synthesizes and plays one prompt, returning when playback ends.
type Engine interface {
	Say(ctx context.Context, text string, mode Mode) error
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, text string, mode Mode) error

// Say calls the underlying function.
func (f EngineFunc) Say(ctx context.Context, text string, mode Mode) error {
	return f(ctx, text, mode)
}

// QueueConfig contains options for a Queue.
type QueueConfig struct {
	Size     int
	Listener Listener
	Logger   *slog.Logger
}

type request struct {
	text string
	mode Mode
}

// Queue plays prompts one at a time, in the order they were requested.
type Queue struct {
	mu       sync.Mutex
	closed   bool
	engine   Engine
	requests chan request
	listener Listener
	logger   *slog.Logger
}

var _ Speaker = (*Queue)(nil)

// NewQueue creates a queue in front of engine. Call Run to start playback.
func NewQueue(engine Engine, config QueueConfig) *Queue {
	if config.Size <= 0 {
		config.Size = defaultQueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Queue{
		engine:   engine,
		requests: make(chan request, config.Size),
		listener: config.Listener,
		logger:   config.Logger,
	}
}

// Speak enqueues a prompt without blocking. Prompts beyond the queue size
// are dropped, as are prompts after Close.
func (queue *Queue) Speak(text string, mode Mode) {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	if queue.closed {
		return
	}
	select {
	case queue.requests <- request{text: text, mode: mode}:
	default:
		queue.logger.Warn("voice queue full; prompt dropped", "text", text)
	}
}

// Close stops accepting prompts. Run returns once the pending ones played.
func (queue *Queue) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	if !queue.closed {
		queue.closed = true
		close(queue.requests)
	}
}

// Run plays queued prompts until ctx is cancelled or the queue is closed
// and drained.
func (queue *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-queue.requests:
			if !ok {
				return nil
			}
			queue.play(ctx, next)
		}
	}
}

func (queue *Queue) play(ctx context.Context, next request) {
	err := queue.engine.Say(ctx, next.text, next.mode)
	if err != nil && ctx.Err() != nil {
		return
	}

	event := Event{
		Type: EventSpoken,
		Text: next.text,
		Mode: next.mode,
		At:   time.Now(),
	}
	if err != nil {
		event.Type = EventError
		event.Err = err
	}
	if queue.listener != nil {
		queue.listener.OnVoiceEvent(event)
	}
}
