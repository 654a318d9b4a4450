package interpret

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKind is returned when a pattern configuration names a task
// kind the compiler does not recognize. Defensive: the built-in table
// never triggers it.
var ErrUnknownKind = errors.New("interpret: unknown task kind in pattern table")

// Config is the compiler's pattern table. It can be expressed in YAML:
//
//	connectives:
//	  - " then "
//	  - "; "
//	patterns:
//	  - kind: extract
//	    regex: 'extract (.+?) from (.+)'
//	  - kind: validate
//	    regex: 'verify (.+)'
//
// Pattern order is significant: clauses are classified by the first
// matching pattern.
type Config struct {
	// Connectives are the clause separators. Empty means the built-in set.
	Connectives []string `yaml:"connectives,omitempty"`

	// Patterns is the ordered classification table. Each regex is
	// compiled case-insensitively.
	Patterns []Pattern `yaml:"patterns"`
}

// Pattern maps one regular expression to a task kind.
type Pattern struct {
	Kind  string `yaml:"kind"`
	Regex string `yaml:"regex"`
}

// DefaultConfig returns the built-in English pattern table, ordered by
// category: extract, transform, analyze, generate, validate.
func DefaultConfig() Config {
	return Config{
		Connectives: defaultConnectives,
		Patterns: []Pattern{
			{Kind: "extract", Regex: `extract (?:the |all )?(.+?) from (?:the )?(.+)`},
			{Kind: "extract", Regex: `find (?:the |all )?(.+?) in (?:the )?(.+)`},
			{Kind: "extract", Regex: `pull (?:the |all )?(.+?) out of (?:the )?(.+)`},
			{Kind: "transform", Regex: `(?:convert|transform|turn) (?:the )?(.+?) (?:to|into) (?:a |an )?(.+)`},
			{Kind: "transform", Regex: `normalize (?:the )?(.+)`},
			{Kind: "transform", Regex: `reformat (?:the )?(.+)`},
			{Kind: "analyze", Regex: `analy[sz]e (?:the )?(.+)`},
			{Kind: "analyze", Regex: `examine (?:the )?(.+)`},
			{Kind: "analyze", Regex: `investigate (?:the )?(.+)`},
			{Kind: "generate", Regex: `generate (?:a |an |the )?(.+)`},
			{Kind: "generate", Regex: `(?:write|create|produce|compose) (?:a |an |the )?(.+)`},
			{Kind: "generate", Regex: `summarize (?:the )?(.+)`},
			{Kind: "validate", Regex: `(?:validate|verify) (?:the |that )?(.+)`},
			{Kind: "validate", Regex: `check (?:that |the |whether )?(.+)`},
			{Kind: "validate", Regex: `confirm (?:that )?(.+)`},
		},
	}
}

// ParseConfig decodes a YAML pattern table.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("interpret: parse pattern config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML pattern table from a file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("interpret: read pattern config: %w", err)
	}
	return ParseConfig(data)
}
