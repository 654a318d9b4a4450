// Package llm defines the external completion-provider contract.
//
// The core runtime never calls a provider directly; leaf functions and
// coordinators built on the core do. Providers return plain text or, for
// CompleteStructured, a mapping shaped by a caller-supplied schema.
package llm

import (
	"context"
	"strings"
)

// Provider is the abstraction over an external completion model.
// Implementations may block on network I/O; callers bound such calls
// through the context.
type Provider interface {
	// Complete returns the model's text completion for a prompt.
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)

	// CompleteStructured returns a mapping whose keys follow schema.
	// Schema values name the expected shape of each key: "string",
	// "number", "list", or "map".
	CompleteStructured(ctx context.Context, prompt string, schema map[string]string) (map[string]any, error)
}

// Options configures a completion request.
type Options struct {
	// Model names the model to use. Empty means the provider default.
	Model string

	// Temperature controls randomness (0.0 to 2.0).
	Temperature *float64

	// MaxTokens limits the number of tokens to generate.
	MaxTokens *int
}

// Option is a functional option for configuring a completion request.
type Option func(*Options)

// WithModel selects the model for the request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithMaxTokens limits the tokens generated.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = &n
	}
}

// ApplyOptions applies a set of options and returns the result.
func ApplyOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExtractList parses bullet or numbered list items out of completion
// text. Lines starting with "-", "*", "•", or "N." are treated as items;
// everything else is ignored.
func ExtractList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if marker := bulletMarker(line); marker != "" {
			items = append(items, strings.TrimSpace(strings.TrimPrefix(line, marker)))
			continue
		}
		if item, ok := trimOrdinal(line); ok {
			items = append(items, item)
		}
	}
	return items
}

// bulletMarker returns the bullet prefix of a line, or "".
func bulletMarker(line string) string {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return marker
		}
	}
	return ""
}

// trimOrdinal strips a leading "N." or "N)" marker from a line.
func trimOrdinal(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return "", false
	}
	return strings.TrimSpace(line[i+1:]), true
}
