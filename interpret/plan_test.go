package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainTasks(n int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		id := string(rune('a' + i))
		tasks[i] = Task{ID: "task_" + id, Kind: KindOrchestrate, OutputSlots: []string{"out_" + id}}
		if i > 0 {
			tasks[i].DependsOn = []string{tasks[i-1].ID}
			tasks[i].InputSlots = tasks[i-1].OutputSlots
		}
	}
	return tasks
}

func TestBuildPlanChain(t *testing.T) {
	compiler := NewCompiler()
	tasks := compiler.Compile("analyze A then analyze B then analyze C")
	require.Len(t, tasks, 3)

	plan, err := BuildPlan(tasks)
	require.NoError(t, err)

	assert.Equal(t, []string{"task_0", "task_1", "task_2"}, plan.Order)
	assert.NotEmpty(t, plan.ID)

	task1, ok := plan.Task("task_1")
	require.True(t, ok)
	task0, _ := plan.Task("task_0")
	assert.Equal(t, task0.OutputSlots, task1.InputSlots)
}

func TestBuildPlanDiamond(t *testing.T) {
	// Fan-out then fan-in: the generator never emits this shape today,
	// but the ordering must handle a general DAG.
	tasks := []Task{
		{ID: "sink", DependsOn: []string{"left", "right"}, OutputSlots: []string{"s"}},
		{ID: "left", DependsOn: []string{"root"}, OutputSlots: []string{"l"}},
		{ID: "right", DependsOn: []string{"root"}, OutputSlots: []string{"r"}},
		{ID: "root", OutputSlots: []string{"x"}},
	}

	plan, err := BuildPlan(tasks)
	require.NoError(t, err)

	pos := make(map[string]int, len(plan.Order))
	for i, id := range plan.Order {
		pos[id] = i
	}
	assert.Less(t, pos["root"], pos["left"])
	assert.Less(t, pos["root"], pos["right"])
	assert.Greater(t, pos["sink"], pos["left"])
	assert.Greater(t, pos["sink"], pos["right"])

	// Ready tasks are placed in ascending ID order.
	assert.Less(t, pos["left"], pos["right"])
}

func TestBuildPlanCycle(t *testing.T) {
	tasks := []Task{
		{ID: "a", DependsOn: []string{"b"}, OutputSlots: []string{"x"}},
		{ID: "b", DependsOn: []string{"a"}, OutputSlots: []string{"y"}},
	}

	plan, err := BuildPlan(tasks)
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestBuildPlanUnknownDependency(t *testing.T) {
	tasks := []Task{
		{ID: "a", DependsOn: []string{"ghost"}, OutputSlots: []string{"x"}},
	}

	_, err := BuildPlan(tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Contains(t, err.Error(), "a")
}

func TestBuildPlanPartialCycle(t *testing.T) {
	tasks := append(chainTasks(2),
		Task{ID: "task_x", DependsOn: []string{"task_y"}, OutputSlots: []string{"x"}},
		Task{ID: "task_y", DependsOn: []string{"task_x"}, OutputSlots: []string{"y"}},
	)

	_, err := BuildPlan(tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
	// Only the stuck tasks are named.
	assert.Contains(t, err.Error(), "task_x")
	assert.Contains(t, err.Error(), "task_y")
	assert.NotContains(t, err.Error(), "task_a")
}

func TestBuildPlanEmpty(t *testing.T) {
	plan, err := BuildPlan(nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Order)
	assert.Empty(t, plan.Tasks)
}

func TestBuildPlanCopiesTasks(t *testing.T) {
	tasks := chainTasks(2)
	plan, err := BuildPlan(tasks)
	require.NoError(t, err)

	tasks[0].Description = "mutated after planning"
	got, _ := plan.Task(tasks[0].ID)
	assert.Empty(t, got.Description)
}

func TestPlanTaskLookup(t *testing.T) {
	plan, err := BuildPlan(chainTasks(1))
	require.NoError(t, err)

	_, ok := plan.Task("task_a")
	assert.True(t, ok)
	_, ok = plan.Task("missing")
	assert.False(t, ok)
}

func TestPlanVisualize(t *testing.T) {
	compiler := NewCompiler()
	plan, err := BuildPlan(compiler.Compile("extract citations from the text then verify the citations"))
	require.NoError(t, err)

	out := plan.Visualize()
	assert.Contains(t, out, "=== Execution Plan ===")
	assert.Contains(t, out, "Total Tasks: 2")
	assert.Contains(t, out, "1. task_0 (extract)")
	assert.Contains(t, out, "Input Slots: none")
	assert.Contains(t, out, "Depends On: task_0")
}
