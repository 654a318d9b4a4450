package report

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/gencompute/sdk"
	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/memory"
	"github.com/gencompute/sdk/reasoning"
)

func buildPlan(t *testing.T) *interpret.Plan {
	t.Helper()
	compiler := interpret.NewCompiler()
	tasks := compiler.Compile("Extract the citations from the document, then analyze the results")
	plan, err := interpret.BuildPlan(tasks)
	require.NoError(t, err)
	return plan
}

func TestPlanText(t *testing.T) {
	out := PlanText(buildPlan(t))

	assert.Contains(t, out, "Execution Plan")
	assert.Contains(t, out, "[1] task_0")
	assert.Contains(t, out, "[2] task_1")
	assert.Contains(t, out, "kind:   extract")
	assert.Contains(t, out, "input:  task_0_output")
	assert.Contains(t, out, "v\n")
}

func TestChainText(t *testing.T) {
	chain := reasoning.NewChain()
	chain.Append("Parse instruction", "received input", 1.0, "")
	chain.Append("Risky inference", "weak signal", 0.4, "checkpoint_0")
	chain.Append("Finish", "done", 0.9, "")

	out := ChainText(chain, 0.7)

	assert.Contains(t, out, "step 0: Parse instruction")
	assert.Contains(t, out, "[**********] 1.00")
	assert.Contains(t, out, "[****......] 0.40")
	assert.Contains(t, out, "checkpoint checkpoint_0")
	assert.Contains(t, out, "> step 2: Finish")
	assert.Contains(t, out, "warning: 1 low-confidence steps")
}

func TestChainTextNoWarnings(t *testing.T) {
	chain := reasoning.NewChain()
	chain.Append("Only step", "fine", 0.95, "")

	out := ChainText(chain, 0.7)
	assert.NotContains(t, out, "warning")
}

func TestTimeline(t *testing.T) {
	store := memory.NewStore()
	for i := 0; i < 12; i++ {
		store.Allocate("slot", memory.KindIntermediate, i, nil)
	}

	out := Timeline(store.Log())

	// Only the last ten actions appear.
	assert.NotContains(t, out, " 1. allocate_slot")
	assert.Contains(t, out, " 12. allocate_slot")
	assert.Contains(t, out, "slot_id: slot")
}

func TestTimelineEmpty(t *testing.T) {
	out := Timeline(nil)
	assert.Contains(t, out, "no actions recorded")
}

func sampleExport(t *testing.T) *sdk.SessionExport {
	t.Helper()
	system, err := sdk.NewSystem(
		sdk.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	_, err = system.ExecuteInstruction(context.Background(),
		"Analyze the readings", map[string]any{"readings": "1 2 3"})
	require.NoError(t, err)

	return system.ExportSession()
}

func TestDashboard(t *testing.T) {
	export := sampleExport(t)
	out := Dashboard(export)

	assert.Contains(t, out, "Session "+export.SessionID)
	assert.Contains(t, out, "slots:       2")
	assert.Contains(t, out, "checkpoints: 1")
	assert.Contains(t, out, "context")
	assert.Contains(t, out, "output")
	assert.Contains(t, out, "checkpoint_0 (1 slots)")
	assert.Contains(t, out, "Action Timeline")
}

func TestMarkdown(t *testing.T) {
	export := sampleExport(t)
	out := Markdown(export)

	assert.Contains(t, out, "# Session Report: "+export.SessionID)
	assert.Contains(t, out, "## Usage")
	assert.Contains(t, out, "| context_readings | context |")
	assert.Contains(t, out, "| checkpoint_0 | 1 |")
	assert.Contains(t, out, "- allocate_slot: 2")
	assert.Contains(t, out, "- create_checkpoint: 1")
}

func TestMarkdownTimestampFormat(t *testing.T) {
	export := &sdk.SessionExport{
		SessionID:  "session_x",
		ExportedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	out := Markdown(export)
	assert.Contains(t, out, "2026-03-14 09:30:00 UTC")
}
