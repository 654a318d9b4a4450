package functions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `As shown in [Smith, 2019], scaling laws hold.
See https://example.com/paper for details.
The author notes "results were consistent across runs" in the appendix.`

func TestExtractCitations(t *testing.T) {
	citations := ExtractCitations(sampleText)
	require.Len(t, citations, 3)

	byType := map[string]Citation{}
	for _, c := range citations {
		byType[c.Type] = c
	}

	academic := byType["academic"]
	assert.Equal(t, "Smith", academic.Author)
	assert.Equal(t, 2019, academic.Year)

	url := byType["url"]
	assert.Equal(t, "https://example.com/paper", url.URL)

	quote := byType["quote"]
	assert.Equal(t, "results were consistent across runs", quote.Text)
	assert.Greater(t, quote.Position, academic.Position)
}

func TestExtractCitationsEmpty(t *testing.T) {
	assert.Empty(t, ExtractCitations("no references here"))
	assert.Empty(t, ExtractCitations(""))
}

func TestExtractCitationsShortQuoteIgnored(t *testing.T) {
	// Quotes under ten characters are not citation material.
	assert.Empty(t, ExtractCitations(`he said "yes" firmly`))
}

func TestVerifyCitation(t *testing.T) {
	cases := []struct {
		name  string
		c     Citation
		valid bool
	}{
		{"plausible academic", Citation{Type: "academic", Author: "Smith", Year: 2019}, true},
		{"future year", Citation{Type: "academic", Author: "Doe", Year: 2999}, false},
		{"ancient year", Citation{Type: "academic", Author: "Doe", Year: 1500}, false},
		{"url", Citation{Type: "url", URL: "https://example.com"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := VerifyCitation(tc.c)
			assert.Equal(t, tc.valid, v.Valid)
		})
	}
}

func TestVerifyCitationShortQuoteWarns(t *testing.T) {
	v := VerifyCitation(Citation{Type: "quote", Text: "short"})
	assert.True(t, v.Valid)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "short")
}

func TestCitationLeaf(t *testing.T) {
	out, err := CitationLeaf(context.Background(), sampleText, map[string]any{})
	require.NoError(t, err)

	result := out.(map[string]any)
	assert.Equal(t, 3, result["total"])
	assert.Len(t, result["citations"], 3)
	assert.NotContains(t, result, "verifications")
}

func TestCitationLeafWithVerify(t *testing.T) {
	out, err := CitationLeaf(context.Background(), "[Doe, 2999] is suspect", map[string]any{"verify": true})
	require.NoError(t, err)

	result := out.(map[string]any)
	verifications := result["verifications"].([]Verification)
	require.Len(t, verifications, 1)
	assert.False(t, verifications[0].Valid)
}

func TestCitationLeafNonStringInput(t *testing.T) {
	out, err := CitationLeaf(context.Background(), 42, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.(map[string]any)["total"])
}
