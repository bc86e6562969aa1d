package llm

import (
	"context"
	"strings"
)

// Chat message roles shared by every backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature or a model override.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any generation backend. Every variant
// accepts the same ordered message sequence; backends without native role
// support flatten it via FlattenMessages.
type LLMProvider interface {
	// Chat sends the assembled message sequence to the model and returns the
	// response text.
	Chat(ctx context.Context, messages []Message, options ...Option) (string, error)
}

// FlattenMessages deterministically collapses role-structured messages into a
// single prompt string, preserving order and labeling each line with its
// capitalized role ("System: ...", "User: ...", "Assistant: ..."). Backends
// driven with one text part use this instead of inventing their own layout.
func FlattenMessages(messages []Message) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = capitalize(msg.Role) + ": " + msg.Content
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ApplyOptions folds functional options over the given defaults.
func ApplyOptions(defaults Options, opts []Option) Options {
	options := defaults
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
