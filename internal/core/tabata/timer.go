// Package tabata implements the interval-training countdown state machine.
package tabata

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tabatavox/internal/core/model"
	"tabatavox/internal/voice"
)

// Prompt thresholds, in seconds remaining. The countdown starts one second
// early so the audio is playing when "three" is due.
const (
	countdownAt    = 4
	announcementAt = 1
)

// Spoken prompts issued by the timer.
const (
	CountdownMarkup = `<speak>three <break time="500ms"/> two <break time="500ms"/> one</speak>`
	DonePrompt      = "Done!"
	doneLabel       = "done"
)

// Display receives countdown updates.
type Display interface {
	OnTimeChanged(phaseLabel string, secondsRemaining int)
}

// Options contains runtime collaborators for a Timer.
type Options struct {
	Scheduler Scheduler
	Interval  time.Duration
	Display   Display
	Speaker   voice.Speaker
	Logger    *slog.Logger
	// NewSessionID names each session; defaults to a random UUID.
	NewSessionID func() string
}

// Timer is the Tabata state machine. All state changes happen under mu.
// Display and Speaker are invoked while mu is held, so they must not call
// back into the Timer synchronously.
type Timer struct {
	mu         sync.Mutex
	settings   model.TimerSettings
	options    Options
	phase      Phase
	cycle      int
	remaining  int
	running    bool
	generation uint64
	cancel     func()
	session    string
	events     []chan Event
	closed     bool
}

// New validates settings and creates a stopped timer in its initial state.
func New(settings model.TimerSettings, options Options) (*Timer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("create timer: %w", err)
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Interval <= 0 {
		options.Interval = time.Second
	}
	if options.Display == nil {
		options.Display = nopDisplay{}
	}
	if options.Speaker == nil {
		options.Speaker = voice.Discard
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.NewSessionID == nil {
		options.NewSessionID = uuid.NewString
	}

	timer := &Timer{
		settings: settings,
		options:  options,
	}
	timer.initLocked()
	return timer, nil
}

// Settings returns the configuration the timer was built with.
func (timer *Timer) Settings() model.TimerSettings {
	return timer.settings
}

// DefaultPhaseLabel returns the label shown before a session starts.
func (timer *Timer) DefaultPhaseLabel() string {
	return PhasePrep.Label()
}

// DefaultSeconds returns the time shown before a session starts.
func (timer *Timer) DefaultSeconds() int {
	return timer.settings.Prep
}

// Snapshot returns a copy of the current state.
func (timer *Timer) Snapshot() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return State{
		Phase:            timer.phase,
		Cycle:            timer.cycle,
		SecondsRemaining: timer.remaining,
		Running:          timer.running,
		Session:          timer.session,
	}
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	if timer.closed {
		close(ch)
	} else {
		timer.events = append(timer.events, ch)
	}
	timer.mu.Unlock()
	return ch
}

// Start begins counting down from the remaining time. It is a no-op while
// a countdown is active.
func (timer *Timer) Start() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.closed || timer.running {
		return
	}

	if timer.session == "" {
		timer.session = timer.options.NewSessionID()
	}
	timer.generation++
	generation := timer.generation
	timer.running = true
	timer.cancel = timer.options.Scheduler.Every(timer.options.Interval, func() {
		timer.tick(generation)
	})

	timer.options.Logger.Debug("timer started",
		"session", timer.session, "phase", timer.phase, "cycle", timer.cycle, "remaining", timer.remaining)
	timer.emitLocked(EventStarted)
}

// Stop cancels the countdown and keeps phase, cycle and remaining time.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return
	}
	timer.cancelLocked()

	timer.options.Logger.Debug("timer stopped",
		"session", timer.session, "phase", timer.phase, "remaining", timer.remaining)
	timer.emitLocked(EventStopped)
}

// Reset cancels the countdown and returns to the initial state.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.closed {
		return
	}
	timer.resetLocked()
}

// Close stops the countdown and closes observer channels.
func (timer *Timer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.cancelLocked()
	timer.closed = true
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) tick(generation uint64) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	// a countdown cancelled by Stop or Reset may still deliver one late tick
	if !timer.running || generation != timer.generation {
		return
	}

	if timer.remaining > 0 {
		timer.remaining--
		timer.options.Display.OnTimeChanged(timer.phase.Label(), timer.remaining)
		timer.emitLocked(EventTick)
		timer.handleSpecialTimesLocked()
	}
	if timer.remaining == 0 {
		timer.expirePhaseLocked()
	}
}

func (timer *Timer) handleSpecialTimesLocked() {
	switch timer.remaining {
	case countdownAt:
		timer.options.Speaker.Speak(CountdownMarkup, voice.ModeMarkup)
	case announcementAt:
		timer.options.Speaker.Speak(timer.upcomingLabelLocked(), voice.ModePlain)
	}
}

func (timer *Timer) upcomingLabelLocked() string {
	if timer.finalPhaseLocked() {
		return doneLabel
	}
	return timer.phase.Next().Label()
}

func (timer *Timer) finalPhaseLocked() bool {
	return timer.phase == PhaseWork && timer.cycle >= timer.settings.Cycles
}

func (timer *Timer) expirePhaseLocked() {
	if timer.finalPhaseLocked() {
		timer.options.Logger.Info("session complete",
			"session", timer.session, "cycles", timer.cycle, "total_seconds", timer.settings.TotalSeconds())
		timer.options.Speaker.Speak(DonePrompt, voice.ModePlain)
		timer.emitLocked(EventSessionDone)
		timer.resetLocked()
		return
	}

	if timer.phase == PhaseWork {
		timer.cycle++
	}
	timer.phase = timer.phase.Next()
	timer.remaining = timer.phase.Duration(timer.settings)
	timer.options.Display.OnTimeChanged(timer.phase.Label(), timer.remaining)

	timer.options.Logger.Debug("phase changed",
		"session", timer.session, "phase", timer.phase, "cycle", timer.cycle, "remaining", timer.remaining)
	timer.emitLocked(EventPhaseChange)
	timer.options.Speaker.Speak(timer.phase.Label(), voice.ModePlain)
}

func (timer *Timer) resetLocked() {
	timer.cancelLocked()
	session := timer.session
	timer.initLocked()
	timer.options.Display.OnTimeChanged(timer.phase.Label(), timer.remaining)

	timer.options.Logger.Debug("timer reset", "session", session)
	timer.emitLocked(EventReset)
}

func (timer *Timer) initLocked() {
	timer.phase = PhasePrep
	timer.cycle = 1
	timer.remaining = timer.settings.Prep
	timer.running = false
	timer.session = ""
}

func (timer *Timer) cancelLocked() {
	if timer.cancel != nil {
		timer.cancel()
		timer.cancel = nil
	}
	timer.generation++
	timer.running = false
}

func (timer *Timer) emitLocked(eventType EventType) {
	event := Event{
		Type:      eventType,
		Phase:     timer.phase,
		Cycle:     timer.cycle,
		Remaining: timer.remaining,
		Session:   timer.session,
		At:        time.Now(),
	}
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type nopDisplay struct{}

func (nopDisplay) OnTimeChanged(string, int) {}
