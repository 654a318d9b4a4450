package llm

import (
	"context"
	"strings"
	"sync"
)

// Call records one request made to a MockProvider.
type Call struct {
	Prompt  string
	Options Options
	Schema  map[string]string
}

// MockProvider is a rule-based Provider for tests and demos. It never
// performs I/O; responses are derived from keywords in the prompt, and
// every call is recorded for inspection.
type MockProvider struct {
	mu    sync.Mutex
	calls []Call
}

// NewMockProvider creates an empty mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Complete returns a canned response keyed on words in the prompt.
func (m *MockProvider) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.record(Call{Prompt: prompt, Options: ApplyOptions(opts...)})

	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "extract"):
		return "Extracted: key point 1, key point 2, key point 3", nil
	case strings.Contains(lower, "analyze"):
		return "Analysis: the data shows a clear trend. Key findings follow.", nil
	case strings.Contains(lower, "summarize"):
		return "Summary: the main points of the input, condensed.", nil
	case strings.Contains(lower, "generate"), strings.Contains(lower, "write"):
		return "Generated content based on the request.", nil
	default:
		return "Done: the task was carried out.", nil
	}
}

// CompleteStructured returns mock data shaped by the schema. Recognized
// shape names are "string", "number", "list", and "map".
func (m *MockProvider) CompleteStructured(ctx context.Context, prompt string, schema map[string]string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.record(Call{Prompt: prompt, Schema: schema})

	result := make(map[string]any, len(schema))
	for key, shape := range schema {
		switch shape {
		case "string":
			result[key] = "sample " + key
		case "number":
			result[key] = 42.0
		case "list":
			result[key] = []any{"item1", "item2", "item3"}
		case "map":
			result[key] = map[string]any{"nested_key": "nested_value"}
		}
	}
	return result, nil
}

// Calls returns a copy of every recorded call, in order.
func (m *MockProvider) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of requests made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *MockProvider) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}
