package reasoning

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrIndexOutOfRange is returned when a truncation index falls outside
// the chain's current step range.
var ErrIndexOutOfRange = errors.New("reasoning: step index out of range")

// Step is one entry in a reasoning chain.
type Step struct {
	// Index is the 0-based position assigned at append time.
	Index int `json:"index"`

	// Description summarizes what this step decided or did.
	Description string `json:"description"`

	// Rationale explains why.
	Rationale string `json:"rationale"`

	// Confidence is the self-assessed confidence in this step, in [0, 1].
	Confidence float64 `json:"confidence"`

	// CheckpointID optionally references a store checkpoint taken
	// alongside this step, marking it as a rollback point.
	CheckpointID string `json:"checkpoint_id,omitempty"`
}

// Chain is an append-only ordered sequence of reasoning steps. The
// current step is always the last appended one unless the chain has
// been truncated.
type Chain struct {
	steps []Step
}

// NewChain creates an empty reasoning chain.
func NewChain() *Chain {
	return &Chain{}
}

// Append adds a step at the next index and makes it the current step.
// Confidence values outside [0, 1] are clamped.
func (c *Chain) Append(description, rationale string, confidence float64, checkpointID string) Step {
	step := Step{
		Index:        len(c.steps),
		Description:  description,
		Rationale:    rationale,
		Confidence:   math.Max(0.0, math.Min(1.0, confidence)),
		CheckpointID: checkpointID,
	}
	c.steps = append(c.steps, step)
	return step
}

// Len returns the number of steps in the chain.
func (c *Chain) Len() int {
	return len(c.steps)
}

// Current returns the current (last) step. The second return value is
// false when the chain is empty.
func (c *Chain) Current() (Step, bool) {
	if len(c.steps) == 0 {
		return Step{}, false
	}
	return c.steps[len(c.steps)-1], true
}

// Steps returns a copy of all steps in order.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// TruncateTo discards every step after index and returns the discarded
// steps in their original order. The step at index becomes the current
// step, and the next Append continues at index+1.
//
// Returns ErrIndexOutOfRange if index is not in [0, Len).
func (c *Chain) TruncateTo(index int) ([]Step, error) {
	if index < 0 || index >= len(c.steps) {
		return nil, fmt.Errorf("%w: %d (chain has %d steps)", ErrIndexOutOfRange, index, len(c.steps))
	}

	discarded := make([]Step, len(c.steps)-index-1)
	copy(discarded, c.steps[index+1:])
	c.steps = c.steps[:index+1]
	return discarded, nil
}

// LowConfidence returns every step whose confidence is strictly below
// threshold, in original order. These are the candidate backtrack points.
func (c *Chain) LowConfidence(threshold float64) []Step {
	var out []Step
	for _, step := range c.steps {
		if step.Confidence < threshold {
			out = append(out, step)
		}
	}
	return out
}

// Visualize renders the chain as indented text, marking the current step.
func (c *Chain) Visualize() string {
	var b strings.Builder
	b.WriteString("=== Reasoning Chain ===")
	for _, step := range c.steps {
		marker := " "
		if step.Index == len(c.steps)-1 {
			marker = ">"
		}
		fmt.Fprintf(&b, "\n%s Step %d: %s", marker, step.Index, step.Description)
		fmt.Fprintf(&b, "\n  Rationale: %s", step.Rationale)
		fmt.Fprintf(&b, "\n  Confidence: %.2f", step.Confidence)
		if step.CheckpointID != "" {
			fmt.Fprintf(&b, "\n  Checkpoint: %s", step.CheckpointID)
		}
	}
	return b.String()
}
