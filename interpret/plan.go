package interpret

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrCycle is returned when a task set's dependencies are not
// well-founded: at some point no unplaced task has all of its
// dependencies placed, either because of a genuine cycle or because a
// task depends on an ID that does not exist.
var ErrCycle = errors.New("interpret: task dependencies contain a cycle")

// Plan is a task set plus a dependency-respecting linear order. A plan
// is a one-shot value: it is never mutated after creation.
type Plan struct {
	// ID uniquely identifies the plan.
	ID string `json:"id"`

	// Tasks holds every task in the plan.
	Tasks []Task `json:"tasks"`

	// Order lists task IDs such that every task's dependencies precede it.
	Order []string `json:"order"`
}

// Task looks up a task in the plan by ID.
func (p *Plan) Task(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// BuildPlan linearizes tasks into a dependency-respecting execution
// order. The compiler only ever emits chain dependencies, but the
// ordering here is a general topological sort over the full dependency
// graph, so fan-in and fan-out task sets order correctly too. Among
// tasks whose dependencies are all placed, ascending task ID breaks
// ties, which keeps plans deterministic.
//
// Returns ErrCycle naming the stuck task IDs if the dependency set is
// not well-founded.
func BuildPlan(tasks []Task) (*Plan, error) {
	order, err := topoSort(tasks)
	if err != nil {
		return nil, err
	}

	return &Plan{
		ID:    "plan_" + uuid.NewString(),
		Tasks: append([]Task(nil), tasks...),
		Order: order,
	}, nil
}

// topoSort is Kahn's algorithm over an explicit dependency-edge list,
// decoupled from how the edges were produced.
func topoSort(tasks []Task) ([]string, error) {
	placed := make(map[string]bool, len(tasks))
	order := make([]string, 0, len(tasks))

	remaining := append([]Task(nil), tasks...)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].ID < remaining[j].ID })

	for len(order) < len(tasks) {
		progressed := false
		for _, t := range remaining {
			if placed[t.ID] {
				continue
			}
			ready := true
			for _, dep := range t.DependsOn {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				placed[t.ID] = true
				order = append(order, t.ID)
				progressed = true
			}
		}
		if !progressed {
			var stuck []string
			for _, t := range remaining {
				if !placed[t.ID] {
					stuck = append(stuck, t.ID)
				}
			}
			return nil, fmt.Errorf("%w: unsatisfiable tasks [%s]", ErrCycle, strings.Join(stuck, ", "))
		}
	}

	return order, nil
}

// Visualize renders the plan's execution order as indented text.
func (p *Plan) Visualize() string {
	var b strings.Builder
	b.WriteString("=== Execution Plan ===")
	fmt.Fprintf(&b, "\nPlan ID: %s", p.ID)
	fmt.Fprintf(&b, "\nTotal Tasks: %d", len(p.Tasks))
	b.WriteString("\n\nExecution Order:")

	for i, id := range p.Order {
		task, ok := p.Task(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n\n%d. %s (%s)", i+1, task.ID, task.Kind)
		fmt.Fprintf(&b, "\n   Description: %s", task.Description)
		inputs := "none"
		if len(task.InputSlots) > 0 {
			inputs = strings.Join(task.InputSlots, ", ")
		}
		fmt.Fprintf(&b, "\n   Input Slots: %s", inputs)
		fmt.Fprintf(&b, "\n   Output Slots: %s", strings.Join(task.OutputSlots, ", "))
		if len(task.DependsOn) > 0 {
			fmt.Fprintf(&b, "\n   Depends On: %s", strings.Join(task.DependsOn, ", "))
		}
	}

	return b.String()
}
