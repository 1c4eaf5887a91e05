package voice

import (
	"context"
	"sync"
)

// SwitchEngine forwards to an engine that can be replaced while the queue
// is running. With no engine set, prompts are silently skipped.
type SwitchEngine struct {
	mu     sync.RWMutex
	engine Engine
}

var _ Engine = (*SwitchEngine)(nil)

// Set replaces the active engine. A nil engine mutes playback.
func (engine *SwitchEngine) Set(next Engine) {
	engine.mu.Lock()
	engine.engine = next
	engine.mu.Unlock()
}

// Active reports whether an engine is set.
func (engine *SwitchEngine) Active() bool {
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	return engine.engine != nil
}

// Say speaks through the active engine.
func (engine *SwitchEngine) Say(ctx context.Context, text string, mode Mode) error {
	engine.mu.RLock()
	active := engine.engine
	engine.mu.RUnlock()
	if active == nil {
		return nil
	}
	return active.Say(ctx, text, mode)
}
