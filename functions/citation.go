package functions

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Citation is one reference extracted from text.
type Citation struct {
	// Type is "academic", "url", or "quote".
	Type string `json:"type"`

	// Author and Year are set for academic citations.
	Author string `json:"author,omitempty"`
	Year   int    `json:"year,omitempty"`

	// URL is set for url citations.
	URL string `json:"url,omitempty"`

	// Text is set for quote citations.
	Text string `json:"text,omitempty"`

	// Position is the byte offset of the match in the source text.
	Position int `json:"position"`
}

// Verification is the result of checking one citation for plausibility.
type Verification struct {
	Citation Citation `json:"citation"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// Citation match patterns, one per citation type.
var (
	academicRe = regexp.MustCompile(`\[([^\]]+),\s*(\d{4})\]`)
	urlRe      = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	quoteRe    = regexp.MustCompile(`"([^"]{10,})"`)
)

// ExtractCitations finds academic [Author, Year] references, URLs, and
// quoted passages (10+ characters) in text, with their positions.
func ExtractCitations(text string) []Citation {
	var citations []Citation

	for _, m := range academicRe.FindAllStringSubmatchIndex(text, -1) {
		year, _ := strconv.Atoi(text[m[4]:m[5]])
		citations = append(citations, Citation{
			Type:     "academic",
			Author:   text[m[2]:m[3]],
			Year:     year,
			Position: m[0],
		})
	}

	for _, m := range urlRe.FindAllStringIndex(text, -1) {
		citations = append(citations, Citation{
			Type:     "url",
			URL:      text[m[0]:m[1]],
			Position: m[0],
		})
	}

	for _, m := range quoteRe.FindAllStringSubmatchIndex(text, -1) {
		citations = append(citations, Citation{
			Type:     "quote",
			Text:     text[m[2]:m[3]],
			Position: m[0],
		})
	}

	return citations
}

// VerifyCitation checks one citation for plausibility: academic years
// must fall between 1900 and the current year, and quotes shorter than
// ten characters draw a warning.
func VerifyCitation(c Citation) Verification {
	v := Verification{Citation: c, Valid: true}

	switch c.Type {
	case "academic":
		if c.Year > time.Now().Year() || c.Year < 1900 {
			v.Valid = false
			v.Warnings = append(v.Warnings, fmt.Sprintf("implausible year %d", c.Year))
		}
	case "quote":
		if len(c.Text) < 10 {
			v.Warnings = append(v.Warnings, "quote is very short")
		}
	}

	return v
}

// CitationLeaf adapts citation extraction to the executor's leaf
// contract. Non-string input yields an empty citation set. When
// params["verify"] is true, a verification pass is included.
func CitationLeaf(ctx context.Context, input any, params map[string]any) (any, error) {
	text, _ := input.(string)
	citations := ExtractCitations(text)

	result := map[string]any{
		"citations": citations,
		"total":     len(citations),
	}

	if verify, _ := params["verify"].(bool); verify {
		verifications := make([]Verification, len(citations))
		for i, c := range citations {
			verifications[i] = VerifyCitation(c)
		}
		result["verifications"] = verifications
	}

	return result, nil
}
