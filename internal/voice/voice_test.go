package voice

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "countdown",
			markup: `<speak>three <break time="500ms"/> two <break time="500ms"/> one</speak>`,
			want:   "three, two, one",
		},
		{name: "plain text", markup: "work", want: "work"},
		{name: "entities", markup: "<speak>rock &amp; roll</speak>", want: "rock & roll"},
		{name: "empty", markup: "<speak></speak>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.markup); got != tt.want {
				t.Fatalf("Flatten() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMultiFansOut(t *testing.T) {
	var got []string
	record := func(prefix string) Speaker {
		return SpeakerFunc(func(text string, mode Mode) {
			got = append(got, prefix+":"+text+":"+mode.String())
		})
	}

	Multi(record("a"), nil, record("b")).Speak("go", ModeMarkup)

	want := []string{"a:go:markup", "b:go:markup"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

type recordingListener struct {
	mu     sync.Mutex
	events []Event
	done   chan struct{}
	expect int
}

func (listener *recordingListener) OnVoiceEvent(event Event) {
	listener.mu.Lock()
	defer listener.mu.Unlock()
	listener.events = append(listener.events, event)
	if len(listener.events) == listener.expect {
		close(listener.done)
	}
}

func TestQueuePlaysInOrderAndReportsErrors(t *testing.T) {
	var (
		mu     sync.Mutex
		spoken []string
	)
	failure := errors.New("no audio device")
	engine := EngineFunc(func(ctx context.Context, text string, mode Mode) error {
		mu.Lock()
		spoken = append(spoken, text)
		mu.Unlock()
		if text == "broken" {
			return failure
		}
		return nil
	})
	listener := &recordingListener{done: make(chan struct{}), expect: 3}
	queue := NewQueue(engine, QueueConfig{Listener: listener})

	queue.Speak("work", ModePlain)
	queue.Speak("broken", ModePlain)
	queue.Speak("rest", ModePlain)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = queue.Run(ctx)
	}()

	select {
	case <-listener.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for queue")
	}

	mu.Lock()
	defer mu.Unlock()
	if want := []string{"work", "broken", "rest"}; !reflect.DeepEqual(spoken, want) {
		t.Fatalf("spoken = %v, want %v", spoken, want)
	}

	listener.mu.Lock()
	defer listener.mu.Unlock()
	if listener.events[0].Type != EventSpoken || listener.events[2].Type != EventSpoken {
		t.Fatalf("unexpected events: %+v", listener.events)
	}
	if listener.events[1].Type != EventError || !errors.Is(listener.events[1].Err, failure) {
		t.Fatalf("expected error event, got %+v", listener.events[1])
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	queue := NewQueue(EngineFunc(func(context.Context, string, Mode) error { return nil }), QueueConfig{Size: 1})

	queue.Speak("one", ModePlain)
	queue.Speak("two", ModePlain)

	if got := len(queue.requests); got != 1 {
		t.Fatalf("queued = %d, want 1", got)
	}
}

func TestQueueRunStopsOnCancel(t *testing.T) {
	queue := NewQueue(EngineFunc(func(context.Context, string, Mode) error { return nil }), QueueConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := queue.Run(ctx); err != nil {
		t.Fatalf("Run() = %v", err)
	}
}

func TestQueueCloseDrainsPending(t *testing.T) {
	var spoken []string
	queue := NewQueue(EngineFunc(func(_ context.Context, text string, _ Mode) error {
		spoken = append(spoken, text)
		return nil
	}), QueueConfig{})

	queue.Speak("work", ModePlain)
	queue.Speak("Sorry", ModePlain)
	queue.Close()
	queue.Close()
	queue.Speak("late", ModePlain)

	if err := queue.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if want := []string{"work", "Sorry"}; !reflect.DeepEqual(spoken, want) {
		t.Fatalf("spoken = %v, want %v", spoken, want)
	}
}

func TestCommandEngineArgs(t *testing.T) {
	var calls [][]string
	runner := func(ctx context.Context, path string, args ...string) error {
		calls = append(calls, append([]string{path}, args...))
		return nil
	}

	espeak := &CommandEngine{path: "/usr/bin/espeak-ng", markupFlag: markupFlagFor("/usr/bin/espeak-ng"), run: runner}
	say := &CommandEngine{path: "/usr/bin/say", markupFlag: markupFlagFor("/usr/bin/say"), run: runner}

	markup := `<speak>three <break time="500ms"/> two</speak>`
	if err := espeak.Say(context.Background(), markup, ModeMarkup); err != nil {
		t.Fatal(err)
	}
	if err := say.Say(context.Background(), markup, ModeMarkup); err != nil {
		t.Fatal(err)
	}
	if err := say.Say(context.Background(), "work", ModePlain); err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"/usr/bin/espeak-ng", "-m", markup},
		{"/usr/bin/say", "three, two"},
		{"/usr/bin/say", "work"},
	}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestCommandEngineWrapsErrors(t *testing.T) {
	failure := errors.New("exit status 1")
	engine := &CommandEngine{path: "espeak-ng", run: func(context.Context, string, ...string) error { return failure }}
	if err := engine.Say(context.Background(), "rest", ModePlain); !errors.Is(err, failure) {
		t.Fatalf("Say() = %v, want wrapped failure", err)
	}
}

func TestNewCommandEngineMissingBinary(t *testing.T) {
	_, err := NewCommandEngine("tabatavox-no-such-synthesizer")
	if !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("NewCommandEngine() = %v, want ErrEngineUnavailable", err)
	}
}

func TestSwitchEngine(t *testing.T) {
	var engine SwitchEngine
	if engine.Active() {
		t.Fatal("zero SwitchEngine should be inactive")
	}
	if err := engine.Say(context.Background(), "work", ModePlain); err != nil {
		t.Fatalf("muted Say() error: %v", err)
	}

	var spoken []string
	engine.Set(EngineFunc(func(_ context.Context, text string, _ Mode) error {
		spoken = append(spoken, text)
		return nil
	}))
	if err := engine.Say(context.Background(), "rest", ModePlain); err != nil {
		t.Fatalf("Say() error: %v", err)
	}
	engine.Set(nil)
	_ = engine.Say(context.Background(), "done", ModePlain)

	if !reflect.DeepEqual(spoken, []string{"rest"}) {
		t.Fatalf("spoken = %v", spoken)
	}
}

func TestListenerFunc(t *testing.T) {
	var got EventType
	ListenerFunc(func(event Event) { got = event.Type }).OnVoiceEvent(Event{Type: EventError})
	if got != EventError {
		t.Fatalf("got %q", got)
	}
}
