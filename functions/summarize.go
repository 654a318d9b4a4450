package functions

import (
	"context"
	"strings"
)

// Strategy selects how Summarize compresses text that exceeds the
// length budget.
type Strategy string

const (
	// StrategyTruncate cuts at the budget and appends an ellipsis.
	StrategyTruncate Strategy = "truncate"

	// StrategySentence cuts at the last sentence boundary that fits.
	StrategySentence Strategy = "sentence_boundary"

	// StrategyKeyLines keeps lines containing summary keywords, falling
	// back to truncation when none fit.
	StrategyKeyLines Strategy = "extract_key"
)

// keyLineMarkers flag lines worth keeping under StrategyKeyLines.
var keyLineMarkers = []string{"important", "conclusion", "summary", "key finding", "takeaway"}

// Summarize compresses text to at most maxLen characters using the
// given strategy. Text already within budget is returned unchanged.
// An unrecognized strategy behaves like StrategyTruncate.
func Summarize(text string, maxLen int, strategy Strategy) string {
	if len(text) <= maxLen {
		return text
	}

	switch strategy {
	case StrategySentence:
		return summarizeSentences(text, maxLen)
	case StrategyKeyLines:
		return summarizeKeyLines(text, maxLen)
	default:
		return text[:maxLen] + "..."
	}
}

func summarizeSentences(text string, maxLen int) string {
	sentences := strings.SplitAfter(text, ". ")
	var b strings.Builder
	for _, sentence := range sentences {
		if b.Len()+len(sentence) > maxLen {
			break
		}
		b.WriteString(sentence)
	}
	if b.Len() == 0 {
		return text[:maxLen] + "..."
	}
	return strings.TrimSpace(b.String()) + "..."
}

func summarizeKeyLines(text string, maxLen int) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, marker := range keyLineMarkers {
			if strings.Contains(lower, marker) {
				kept = append(kept, line)
				break
			}
		}
	}

	if len(kept) > 0 {
		summary := strings.Join(kept, "\n")
		if len(summary) <= maxLen {
			return summary
		}
	}
	return text[:maxLen] + "..."
}

// SummarizeLeaf adapts Summarize to the executor's leaf contract.
// params["max_length"] (number) and params["strategy"] (string)
// override the defaults of 500 and truncation.
func SummarizeLeaf(ctx context.Context, input any, params map[string]any) (any, error) {
	text, _ := input.(string)

	maxLen := 500
	switch v := params["max_length"].(type) {
	case int:
		maxLen = v
	case float64:
		maxLen = int(v)
	}

	strategy := StrategyTruncate
	if s, ok := params["strategy"].(string); ok {
		strategy = Strategy(s)
	}

	return Summarize(text, maxLen, strategy), nil
}
