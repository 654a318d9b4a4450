package functions

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Rule is one named validation expression. Expressions are written in
// CEL and evaluated against a single `content` variable holding the
// value under validation.
type Rule struct {
	Name string `json:"name" yaml:"name"`
	Expr string `json:"expr" yaml:"expr"`
}

// RuleResult is the outcome of evaluating one rule.
type RuleResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// Validator evaluates CEL rules against slot content.
type Validator struct {
	rules []compiledRule
}

type compiledRule struct {
	name string
	prg  cel.Program
}

// NewValidator compiles the rules. Each expression must evaluate to a
// boolean; compilation failures name the offending rule.
func NewValidator(rules []Rule) (*Validator, error) {
	env, err := cel.NewEnv(cel.Variable("content", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("functions: create validation env: %w", err)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		ast, iss := env.Compile(r.Expr)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("functions: compile rule %q: %w", r.Name, iss.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("functions: program rule %q: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{name: r.Name, prg: prg})
	}

	return &Validator{rules: compiled}, nil
}

// Validate evaluates every rule against content, in rule order. A rule
// that fails to evaluate (e.g. a type mismatch for this content) counts
// as failed, with the evaluation error recorded, rather than aborting
// the run.
func (v *Validator) Validate(content any) (bool, []RuleResult) {
	results := make([]RuleResult, 0, len(v.rules))
	allPassed := true

	for _, r := range v.rules {
		out, _, err := r.prg.Eval(map[string]any{"content": content})
		res := RuleResult{Name: r.name}
		if err != nil {
			res.Error = err.Error()
		} else if passed, ok := out.Value().(bool); ok {
			res.Passed = passed
		} else {
			res.Error = fmt.Sprintf("rule %q did not evaluate to a boolean", r.name)
		}
		if !res.Passed {
			allPassed = false
		}
		results = append(results, res)
	}

	return allPassed, results
}

// Leaf adapts the validator to the executor's leaf contract. Input that
// carries a "citations" key gets a citation verification pass in
// addition to the rule evaluation.
func (v *Validator) Leaf(ctx context.Context, input any, params map[string]any) (any, error) {
	passed, results := v.Validate(input)

	result := map[string]any{
		"validated": passed,
		"results":   results,
	}

	if m, ok := input.(map[string]any); ok {
		if raw, ok := m["citations"].([]Citation); ok {
			verifications := make([]Verification, len(raw))
			for i, c := range raw {
				verifications[i] = VerifyCitation(c)
				if !verifications[i].Valid {
					result["validated"] = false
				}
			}
			result["verifications"] = verifications
		}
	}

	return result, nil
}
