package speech

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"
)

type collector struct {
	events []Event
}

func (c *collector) OnSpeechEvent(event Event) {
	c.events = append(c.events, event)
}

func (c *collector) types() []EventType {
	types := make([]EventType, 0, len(c.events))
	for _, event := range c.events {
		types = append(types, event.Type)
	}
	return types
}

func TestConsoleSourceDeliversUtterances(t *testing.T) {
	source := NewConsoleSource(strings.NewReader("start the timer\n\n  stop  \n"))
	listener := &collector{}

	if err := source.Run(context.Background(), listener); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []EventType{
		EventTrace,
		EventActivate, EventRecognize, EventDeactivate,
		EventActivate, EventTimeout,
		EventActivate, EventRecognize, EventDeactivate,
	}
	if got := listener.types(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if listener.events[2].Transcript != "start the timer" || listener.events[7].Transcript != "stop" {
		t.Fatalf("unexpected transcripts: %q %q", listener.events[2].Transcript, listener.events[7].Transcript)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestConsoleSourceReportsReadErrors(t *testing.T) {
	listener := &collector{}
	err := NewConsoleSource(failingReader{}).Run(context.Background(), listener)
	if err == nil || !strings.Contains(err.Error(), "device gone") {
		t.Fatalf("Run() = %v, want read error", err)
	}
	last := listener.events[len(listener.events)-1]
	if last.Type != EventError || last.Err == nil {
		t.Fatalf("last event = %+v, want error event", last)
	}
}

func TestConsoleSourceStopsOnCancel(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewConsoleSource(reader).Run(ctx, ListenerFunc(func(Event) {}))
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
