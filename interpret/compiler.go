package interpret

import (
	"fmt"
	"regexp"
	"strings"
)

// rule is one compiled classification pattern. Rules are tried in order;
// the first match wins.
type rule struct {
	re   *regexp.Regexp
	kind TaskKind
}

// Compiler splits a free-form instruction into ordered task descriptors.
//
// Compilation is a best-effort heuristic, not a grammar: the instruction
// is segmented on a fixed set of connective markers, each clause is
// classified by the first matching pattern, and dependencies are wired
// strictly linearly (task i consumes the outputs of task i-1). Ambiguous
// connectives may over- or under-split; a clause matching no pattern
// becomes an orchestrate catch-all task rather than being dropped.
type Compiler struct {
	connectives []string
	rules       []rule
}

// defaultConnectives are the sequencing markers instructions are split on.
// Longer markers come first so they are consumed before their substrings.
var defaultConnectives = []string{
	", and then ",
	" and then ",
	", then ",
	"; then ",
	" then ",
	" after that ",
	", afterwards ",
	"; ",
	". ",
}

// NewCompiler creates a compiler with the built-in English pattern table.
func NewCompiler() *Compiler {
	c, err := NewCompilerFromConfig(DefaultConfig())
	if err != nil {
		// The built-in table is static; failing to compile it is a bug.
		panic(fmt.Sprintf("interpret: built-in pattern table invalid: %v", err))
	}
	return c
}

// NewCompilerFromConfig creates a compiler from an explicit pattern
// configuration, typically loaded from YAML. Returns ErrUnknownKind if a
// pattern names an unrecognized task kind, or a compile error for an
// invalid regular expression.
func NewCompilerFromConfig(cfg Config) (*Compiler, error) {
	connectives := cfg.Connectives
	if len(connectives) == 0 {
		connectives = defaultConnectives
	}

	rules := make([]rule, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		kind := TaskKind(p.Kind)
		if !kind.IsValid() || kind == KindOrchestrate {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
		}
		re, err := regexp.Compile("(?i)" + p.Regex)
		if err != nil {
			return nil, fmt.Errorf("interpret: pattern %q: %w", p.Regex, err)
		}
		rules = append(rules, rule{re: re, kind: kind})
	}

	return &Compiler{connectives: connectives, rules: rules}, nil
}

// Compile splits an instruction into ordered task descriptors with
// linear producer/consumer dependencies. A whitespace-only instruction
// yields no tasks; otherwise at least one task is always produced, so no
// instruction content is silently lost.
func (c *Compiler) Compile(instruction string) []Task {
	clauses := c.segment(instruction)
	if len(clauses) == 0 {
		return nil
	}

	tasks := make([]Task, 0, len(clauses))
	for i, clause := range clauses {
		id := fmt.Sprintf("task_%d", i)
		tasks = append(tasks, c.classify(clause, id))
	}

	// Dependency wiring is strictly linear: each task consumes exactly
	// the output slots of its predecessor.
	for i := 1; i < len(tasks); i++ {
		tasks[i].InputSlots = append([]string(nil), tasks[i-1].OutputSlots...)
		tasks[i].DependsOn = []string{tasks[i-1].ID}
	}

	return tasks
}

// segment splits the instruction into ordered clauses on the connective
// markers, discarding empty or whitespace-only pieces.
func (c *Compiler) segment(instruction string) []string {
	trimmed := strings.TrimSpace(instruction)
	if trimmed == "" {
		return nil
	}

	parts := []string{trimmed}
	for _, sep := range c.connectives {
		var next []string
		for _, part := range parts {
			next = append(next, splitFold(part, sep)...)
		}
		parts = next
	}

	var clauses []string
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			clauses = append(clauses, p)
		}
	}
	if len(clauses) == 0 {
		clauses = []string{trimmed}
	}
	return clauses
}

// splitFold splits s on sep, matching case-insensitively.
func splitFold(s, sep string) []string {
	lower := strings.ToLower(s)
	lowerSep := strings.ToLower(sep)

	var out []string
	for {
		i := strings.Index(lower, lowerSep)
		if i < 0 {
			out = append(out, s)
			return out
		}
		out = append(out, s[:i])
		s = s[i+len(sep):]
		lower = lower[i+len(lowerSep):]
	}
}

// classify assigns a kind to one clause via the ordered pattern table.
// The first matching rule wins; capture groups become task parameters.
// A clause matching nothing falls through to an orchestrate task.
func (c *Compiler) classify(clause, id string) Task {
	task := Task{
		ID:          id,
		Kind:        KindOrchestrate,
		Description: clause,
		OutputSlots: []string{id + "_output"},
		Params:      map[string]any{},
	}

	for _, r := range c.rules {
		m := r.re.FindStringSubmatch(clause)
		if m == nil {
			continue
		}
		task.Kind = r.kind
		if len(m) > 1 {
			task.Params["matches"] = m[1:]
		}
		return task
	}

	return task
}
