package functions

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gencompute/sdk/exec"
	"github.com/gencompute/sdk/llm"
)

// GenerateLeaf returns a leaf that produces new content through a
// completion provider. The task's clause (params["matches"]) shapes the
// prompt; the gathered input, when present, is appended as context.
func GenerateLeaf(provider llm.Provider) exec.Leaf {
	return func(ctx context.Context, input any, params map[string]any) (any, error) {
		subject := "the requested content"
		if matches := toStringSlice(params["matches"]); len(matches) > 0 {
			subject = matches[0]
		}

		var prompt strings.Builder
		fmt.Fprintf(&prompt, "Generate %s.", subject)
		if input != nil {
			fmt.Fprintf(&prompt, "\n\nInput:\n%v", input)
		}

		text, err := provider.Complete(ctx, prompt.String())
		if err != nil {
			return nil, err
		}
		return map[string]any{"generated": text}, nil
	}
}

// AnalyzeLeaf computes basic shape statistics over its input: character,
// word, and line counts for text, element counts for sequences, and key
// counts for mappings.
func AnalyzeLeaf(ctx context.Context, input any, params map[string]any) (any, error) {
	analysis := map[string]any{}

	switch v := input.(type) {
	case string:
		analysis["chars"] = utf8.RuneCountInString(v)
		analysis["words"] = len(strings.Fields(v))
		analysis["lines"] = strings.Count(v, "\n") + 1
	case []any:
		analysis["elements"] = len(v)
	case map[string]any:
		analysis["keys"] = len(v)
	case nil:
		analysis["empty"] = true
	default:
		analysis["type"] = fmt.Sprintf("%T", v)
	}

	return map[string]any{"analysis": analysis, "data": input}, nil
}
