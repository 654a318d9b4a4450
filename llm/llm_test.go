package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCompleteKeywordRouting(t *testing.T) {
	m := NewMockProvider()
	ctx := context.Background()

	cases := []struct {
		prompt string
		want   string
	}{
		{"Please extract the names", "Extracted"},
		{"analyze these figures", "Analysis"},
		{"summarize this document", "Summary"},
		{"generate a poem", "Generated"},
		{"hello there", "Done"},
	}
	for _, tc := range cases {
		got, err := m.Complete(ctx, tc.prompt)
		require.NoError(t, err)
		assert.Contains(t, got, tc.want)
	}
	assert.Equal(t, len(cases), m.CallCount())
}

func TestMockCompleteRecordsOptions(t *testing.T) {
	m := NewMockProvider()

	_, err := m.Complete(context.Background(), "generate", WithModel("tiny"), WithTemperature(0.3), WithMaxTokens(100))
	require.NoError(t, err)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tiny", calls[0].Options.Model)
	require.NotNil(t, calls[0].Options.Temperature)
	assert.Equal(t, 0.3, *calls[0].Options.Temperature)
	require.NotNil(t, calls[0].Options.MaxTokens)
	assert.Equal(t, 100, *calls[0].Options.MaxTokens)
}

func TestMockCompleteStructured(t *testing.T) {
	m := NewMockProvider()

	out, err := m.CompleteStructured(context.Background(), "fill this in", map[string]string{
		"title": "string",
		"count": "number",
		"tags":  "list",
		"extra": "map",
	})
	require.NoError(t, err)

	assert.Equal(t, "sample title", out["title"])
	assert.Equal(t, 42.0, out["count"])
	assert.Equal(t, []any{"item1", "item2", "item3"}, out["tags"])
	assert.Equal(t, map[string]any{"nested_key": "nested_value"}, out["extra"])
}

func TestMockHonorsCancelledContext(t *testing.T) {
	m := NewMockProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = m.CompleteStructured(ctx, "anything", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractList(t *testing.T) {
	text := `Here are the findings:
- first item
* second item
• third item
1. fourth item
2) fifth item
not an item
10. tenth item`

	items := ExtractList(text)
	assert.Equal(t, []string{
		"first item",
		"second item",
		"third item",
		"fourth item",
		"fifth item",
		"tenth item",
	}, items)
}

func TestExtractListEmpty(t *testing.T) {
	assert.Empty(t, ExtractList("no list here\njust prose"))
	assert.Empty(t, ExtractList(""))
}
