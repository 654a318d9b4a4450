package report

import (
	"fmt"
	"sort"
	"strings"

	sdk "github.com/gencompute/sdk"
	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/memory"
	"github.com/gencompute/sdk/reasoning"
)

// maxTimelineActions bounds how many trailing log entries the timeline
// and dashboard renderings show.
const maxTimelineActions = 10

// PlanText renders a plan as a vertical sequence of task boxes joined by
// dependency arrows, in execution order.
func PlanText(plan *interpret.Plan) string {
	var b strings.Builder
	writeHeader(&b, "Execution Plan")

	for i, id := range plan.Order {
		task, ok := plan.Task(id)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "  [%d] %s\n", i+1, task.ID)
		fmt.Fprintf(&b, "      kind:   %s\n", task.Kind)
		fmt.Fprintf(&b, "      desc:   %s\n", truncate(task.Description, 60))
		if len(task.InputSlots) > 0 {
			fmt.Fprintf(&b, "      input:  %s\n", strings.Join(task.InputSlots, ", "))
		}
		if len(task.OutputSlots) > 0 {
			fmt.Fprintf(&b, "      output: %s\n", strings.Join(task.OutputSlots, ", "))
		}

		if i < len(plan.Order)-1 {
			b.WriteString("       |\n")
			b.WriteString("       v\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// ChainText renders a reasoning chain with a confidence bar per step.
// Steps whose confidence falls below threshold are listed in a warning
// section at the end.
func ChainText(chain *reasoning.Chain, threshold float64) string {
	var b strings.Builder
	writeHeader(&b, "Reasoning Chain")

	steps := chain.Steps()
	for _, step := range steps {
		marker := " "
		if step.Index == len(steps)-1 {
			marker = ">"
		}

		fmt.Fprintf(&b, "%s step %d: %s\n", marker, step.Index, step.Description)
		fmt.Fprintf(&b, "    confidence [%s] %.2f\n", confidenceBar(step.Confidence), step.Confidence)
		if step.CheckpointID != "" {
			fmt.Fprintf(&b, "    checkpoint %s\n", step.CheckpointID)
		}
	}

	if low := chain.LowConfidence(threshold); len(low) > 0 {
		fmt.Fprintf(&b, "\n  warning: %d low-confidence steps (below %.2f)\n", len(low), threshold)
		for _, step := range low {
			fmt.Fprintf(&b, "    - step %d: %.2f\n", step.Index, step.Confidence)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Timeline renders the most recent store actions, newest last.
func Timeline(log []memory.Action) string {
	var b strings.Builder
	writeHeader(&b, "Action Timeline")

	if len(log) == 0 {
		b.WriteString("  no actions recorded\n")
		return strings.TrimRight(b.String(), "\n")
	}

	start := 0
	if len(log) > maxTimelineActions {
		start = len(log) - maxTimelineActions
	}

	for i, action := range log[start:] {
		fmt.Fprintf(&b, "  %2d. %s\n", start+i+1, action.Name)
		for _, key := range sortedKeys(action.Details) {
			fmt.Fprintf(&b, "      %s: %v\n", key, action.Details[key])
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Dashboard renders a session export as a terminal summary: slot counts
// with a bar per kind, the checkpoint table, and the recent action log.
func Dashboard(export *sdk.SessionExport) string {
	var b strings.Builder
	writeHeader(&b, "Session "+export.SessionID)

	fmt.Fprintf(&b, "  slots:       %d\n", export.Usage.TotalSlots)
	fmt.Fprintf(&b, "  checkpoints: %d\n", export.Usage.Checkpoints)
	fmt.Fprintf(&b, "  actions:     %d\n", len(export.Log))
	b.WriteString("\n")

	b.WriteString("  slots by kind:\n")
	maxCount := 0
	for _, count := range export.Usage.ByKind {
		if count > maxCount {
			maxCount = count
		}
	}
	for _, kind := range memory.Kinds() {
		count := export.Usage.ByKind[kind]
		if count == 0 {
			continue
		}
		width := 0
		if maxCount > 0 {
			width = count * 20 / maxCount
		}
		fmt.Fprintf(&b, "    %-12s |%s %d\n", kind, strings.Repeat("#", width), count)
	}
	b.WriteString("\n")

	if len(export.Checkpoints) > 0 {
		b.WriteString("  checkpoints:\n")
		for _, cp := range export.Checkpoints {
			fmt.Fprintf(&b, "    %s (%d slots) %s\n", cp.ID, cp.SlotCount, truncate(cp.Description, 50))
		}
		b.WriteString("\n")
	}

	b.WriteString(Timeline(export.Log))
	return strings.TrimRight(b.String(), "\n")
}

// Markdown renders a session export as a Markdown report with slot and
// checkpoint tables.
func Markdown(export *sdk.SessionExport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Session Report: %s\n\n", export.SessionID)
	fmt.Fprintf(&b, "Exported at %s.\n\n", export.ExportedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Usage\n\n")
	fmt.Fprintf(&b, "- Slots: %d\n", export.Usage.TotalSlots)
	fmt.Fprintf(&b, "- Checkpoints: %d\n", export.Usage.Checkpoints)
	fmt.Fprintf(&b, "- Actions: %d\n\n", len(export.Log))

	if len(export.Slots) > 0 {
		b.WriteString("## Slots\n\n")
		b.WriteString("| ID | Kind | Updated |\n")
		b.WriteString("|----|------|--------|\n")
		for _, slot := range export.Slots {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				slot.ID, slot.Kind, slot.UpdatedAt.Format("15:04:05"))
		}
		b.WriteString("\n")
	}

	if len(export.Checkpoints) > 0 {
		b.WriteString("## Checkpoints\n\n")
		b.WriteString("| ID | Slots | Description |\n")
		b.WriteString("|----|-------|-------------|\n")
		for _, cp := range export.Checkpoints {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", cp.ID, cp.SlotCount, cp.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Actions\n\n")
	counts := map[string]int{}
	for _, action := range export.Log {
		counts[action.Name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %d\n", name, counts[name])
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeHeader(b *strings.Builder, title string) {
	rule := strings.Repeat("=", 56)
	fmt.Fprintf(b, "%s\n %s\n%s\n", rule, title, rule)
}

// confidenceBar renders confidence as ten filled or empty positions.
func confidenceBar(confidence float64) string {
	filled := int(confidence * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("*", filled) + strings.Repeat(".", 10-filled)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
