// Package intent turns free-form utterances into timer commands.
package intent

import (
	"regexp"
	"strings"
)

// Intent is a classified timer command.
type Intent string

const (
	Start   Intent = "start"
	Stop    Intent = "stop"
	Reset   Intent = "reset"
	Unknown Intent = "unknown"
)

type rule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// Patterns match a prefix of the utterance, so "stopped" is Stop.
// Reset is tested first: "start over" would otherwise match Start.
var rules = []rule{
	{
		intent:  Reset,
		pattern: regexp.MustCompile(`(?i)^(?:reset(?:\s+(?:the|my)\s+timer)?|start\s+over|let['’]?s\s+do\s+that\s+again)`),
	},
	{
		intent:  Start,
		pattern: regexp.MustCompile(`(?i)^(?:start(?:\s+(?:the|my)\s+timer)?|(?:let['’]?s\s+)?go)`),
	},
	{
		intent:  Stop,
		pattern: regexp.MustCompile(`(?i)^(?:stop(?:\s+(?:the|my)\s+timer)?|(?:i['’]?ve\s+had\s+)?enough)`),
	},
}

// Classify maps an utterance to the first matching intent, or Unknown.
// It is pure and safe for concurrent use.
func Classify(utterance string) Intent {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Unknown
	}
	for _, candidate := range rules {
		if candidate.pattern.MatchString(utterance) {
			return candidate.intent
		}
	}
	return Unknown
}

// String returns the intent tag.
func (value Intent) String() string {
	return string(value)
}
