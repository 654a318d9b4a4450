package functions

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownTransformer is returned when a pipeline names a transformer
// that has not been registered.
var ErrUnknownTransformer = errors.New("functions: unknown transformer")

// Transformer rewrites a value. Transformers that only make sense for
// strings pass non-string input through unchanged.
type Transformer func(any) any

var numberRe = regexp.MustCompile(`-?\d+`)

// Pipeline chains named transform steps over a value.
type Pipeline struct {
	transformers map[string]Transformer
}

// NewPipeline creates a pipeline with the built-in string transformers:
// uppercase, lowercase, trim, normalize_spaces, and extract_numbers.
func NewPipeline() *Pipeline {
	p := &Pipeline{transformers: make(map[string]Transformer)}

	p.Register("uppercase", stringTransformer(strings.ToUpper))
	p.Register("lowercase", stringTransformer(strings.ToLower))
	p.Register("trim", stringTransformer(strings.TrimSpace))
	p.Register("normalize_spaces", stringTransformer(func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	}))
	p.Register("extract_numbers", func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		var nums []int
		for _, m := range numberRe.FindAllString(s, -1) {
			n, err := strconv.Atoi(m)
			if err != nil {
				continue
			}
			nums = append(nums, n)
		}
		return nums
	})

	return p
}

// Register installs a transformer under a name, replacing any previous
// one.
func (p *Pipeline) Register(name string, t Transformer) {
	p.transformers[name] = t
}

// Names returns the registered transformer names, sorted.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.transformers))
	for name := range p.transformers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named steps over data in order. An unregistered step
// name fails, naming the offending step.
func (p *Pipeline) Apply(data any, steps []string) (any, error) {
	result := data
	for _, step := range steps {
		t, ok := p.transformers[step]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransformer, step)
		}
		result = t(result)
	}
	return result, nil
}

// Leaf adapts the pipeline to the executor's leaf contract. The steps
// come from params["pipeline"] (a sequence of step names); when absent,
// a default trim + normalize_spaces pass is applied.
func (p *Pipeline) Leaf(ctx context.Context, input any, params map[string]any) (any, error) {
	steps := []string{"trim", "normalize_spaces"}
	if raw, ok := params["pipeline"]; ok {
		steps = toStringSlice(raw)
	}
	return p.Apply(input, steps)
}

// stringTransformer lifts a string function into a Transformer that
// passes non-string values through.
func stringTransformer(f func(string) string) Transformer {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return f(s)
		}
		return v
	}
}

// toStringSlice normalizes []string or []any parameter values.
func toStringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
