// Package exec walks an execution plan and runs its tasks against a
// memory store.
//
// The executor holds no text-processing logic of its own. Each task
// kind dispatches to a registered leaf function; the executor only
// wires slots: it gathers the task's declared input slots from the
// store, invokes the leaf, and writes the result back into every
// declared output slot as output-kind content tagged with the task's ID
// and kind.
//
// A task whose kind has no registered leaf does not fail the plan; it
// degrades to a recorded not-implemented result. An error returned by a
// leaf function, in contrast, is propagated untouched: whether to abort
// or restore a checkpoint is the surrounding coordinator's decision.
package exec

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/memory"
)

// Leaf is an external task-kind-specific operation invoked by the
// runner. It receives the gathered input content (nil when the task has
// no resolvable inputs, a single value for one input slot, a slice for
// several) and the task's compiler parameters. Errors it returns are
// not translated by the runner.
//
// Leaves may block on I/O, e.g. calling a completion provider; the
// runner passes its context through so callers can bound such calls.
type Leaf func(ctx context.Context, input any, params map[string]any) (any, error)

// Summary reports the outcome of running one plan.
type Summary struct {
	// PlanID identifies the plan that ran.
	PlanID string `json:"plan_id"`

	// Completed is the number of tasks that produced a result.
	Completed int `json:"completed"`

	// Results maps task ID to the value the task's leaf returned.
	Results map[string]any `json:"results"`
}

// Runner executes plans by dispatching each task to a leaf function
// registered for its kind. A Runner assumes a single plan/store pair at
// a time; it does no internal locking.
type Runner struct {
	leaves map[interpret.TaskKind]Leaf
	tracer trace.Tracer
}

// NewRunner creates a runner with no registered leaves. Until leaves
// are registered, every task degrades to the not-implemented fallback.
func NewRunner() *Runner {
	return &Runner{
		leaves: make(map[interpret.TaskKind]Leaf),
		tracer: noop.NewTracerProvider().Tracer("exec"),
	}
}

// WithTracer sets the tracer used to record a span per task. Defaults to
// a no-op tracer. Returns the runner for chaining.
func (r *Runner) WithTracer(tracer trace.Tracer) *Runner {
	r.tracer = tracer
	return r
}

// Register installs the leaf function for a task kind, replacing any
// previous registration.
func (r *Runner) Register(kind interpret.TaskKind, leaf Leaf) {
	r.leaves[kind] = leaf
}

// Registered reports whether a leaf is registered for the kind.
func (r *Runner) Registered(kind interpret.TaskKind) bool {
	_, ok := r.leaves[kind]
	return ok
}

// Run walks plan.Order and executes each task against the store.
//
// For every task it gathers input content (absent slot IDs resolve to
// nil, not an error), dispatches to the kind's leaf, and allocates the
// result into each declared output slot with {task_id, task_kind}
// metadata. Missing leaves degrade to a not-implemented result; leaf
// errors abort the run and propagate unwrapped, with the partial
// summary of completed tasks returned alongside.
func (r *Runner) Run(ctx context.Context, plan *interpret.Plan, store *memory.Store) (*Summary, error) {
	summary := &Summary{
		PlanID:  plan.ID,
		Results: make(map[string]any, len(plan.Order)),
	}

	for _, id := range plan.Order {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		task, ok := plan.Task(id)
		if !ok {
			return summary, fmt.Errorf("exec: plan %s orders unknown task %q", plan.ID, id)
		}

		taskCtx, span := r.tracer.Start(ctx, "sdk.task", trace.WithAttributes(
			attribute.String("task.id", task.ID),
			attribute.String("task.kind", task.Kind.String()),
		))

		result, err := r.dispatch(taskCtx, task, store)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "leaf failed")
			span.End()
			return summary, err
		}
		span.End()

		summary.Results[task.ID] = result
		summary.Completed++

		for _, slotID := range task.OutputSlots {
			store.Allocate(slotID, memory.KindOutput, result, map[string]any{
				"task_id":   task.ID,
				"task_kind": task.Kind.String(),
			})
		}
	}

	return summary, nil
}

// dispatch resolves the task's inputs and invokes its leaf, or the
// fallback when no leaf is registered for the kind.
func (r *Runner) dispatch(ctx context.Context, task interpret.Task, store *memory.Store) (any, error) {
	input := r.gather(task.InputSlots, store)

	leaf, ok := r.leaves[task.Kind]
	if !ok {
		return map[string]any{
			"status": "not_implemented",
			"task":   task.Description,
		}, nil
	}

	return leaf(ctx, input, task.Params)
}

// gather resolves input slot IDs against the store. No slots yields
// nil; one slot yields its content (nil if absent); several yield a
// slice of the contents of those that exist.
func (r *Runner) gather(slotIDs []string, store *memory.Store) any {
	if len(slotIDs) == 0 {
		return nil
	}

	if len(slotIDs) == 1 {
		slot, ok := store.Get(slotIDs[0])
		if !ok {
			return nil
		}
		return slot.Content
	}

	var contents []any
	for _, id := range slotIDs {
		if slot, ok := store.Get(id); ok {
			contents = append(contents, slot.Content)
		}
	}
	return contents
}
