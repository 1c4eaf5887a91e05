package intent

import (
	"sync"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		utterance string
		want      Intent
	}{
		{"reset", Reset},
		{"reset the timer", Reset},
		{"Reset my timer", Reset},
		{"start over", Reset},
		{"START OVER please", Reset},
		{"let's do that again", Reset},
		{"lets do that again", Reset},
		{"let’s do that again", Reset},

		{"start", Start},
		{"start the timer", Start},
		{"Start my timer", Start},
		{"go", Start},
		{"Go!", Start},
		{"let's go", Start},
		{"lets go", Start},

		{"stop", Stop},
		{"stop the timer", Stop},
		{"STOP MY TIMER", Stop},
		{"enough", Stop},
		{"I've had enough", Stop},
		{"ive had enough", Stop},

		{"stopped", Stop},
		{"going", Start},
		{"goodbye", Start},
		{"let's gooo", Start},
		{"starting now", Start},
		{"resetting", Reset},

		{"banana", Unknown},
		{"", Unknown},
		{"   ", Unknown},
		{"please start", Unknown},
		{"restart", Unknown},
		{"halt", Unknown},
		{"\x00\xff", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			if got := Classify(tt.utterance); got != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestClassifyResetTakesPriority(t *testing.T) {
	// each of these also begins with, or contains, a start or stop phrase
	for _, utterance := range []string{
		"start over",
		"start over and stop",
		"reset the timer then start",
		"let's do that again, enough",
	} {
		if got := Classify(utterance); got != Reset {
			t.Errorf("Classify(%q) = %s, want reset", utterance, got)
		}
	}
}

func TestClassifyIgnoresSurroundingWhitespace(t *testing.T) {
	if got := Classify("  start the timer\n"); got != Start {
		t.Fatalf("Classify() = %s, want start", got)
	}
}

func TestClassifyConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if Classify("I've had enough") != Stop {
					t.Error("unexpected intent")
					return
				}
			}
		}()
	}
	wg.Wait()
}
