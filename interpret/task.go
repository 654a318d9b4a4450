package interpret

// TaskKind categorizes a task by the class of work it performs. The
// executor dispatches to leaf functions by kind.
type TaskKind string

const (
	// KindExtract pulls structured data (citations, fields) out of input.
	KindExtract TaskKind = "extract"

	// KindTransform reshapes input through a transformation pipeline.
	KindTransform TaskKind = "transform"

	// KindAnalyze inspects input and produces observations.
	KindAnalyze TaskKind = "analyze"

	// KindGenerate produces new content from input.
	KindGenerate TaskKind = "generate"

	// KindValidate checks input against rules.
	KindValidate TaskKind = "validate"

	// KindOrchestrate is the catch-all for clauses matching no pattern.
	KindOrchestrate TaskKind = "orchestrate"
)

// String returns the string representation of the task kind.
func (k TaskKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a recognized value.
func (k TaskKind) IsValid() bool {
	switch k {
	case KindExtract, KindTransform, KindAnalyze, KindGenerate, KindValidate, KindOrchestrate:
		return true
	default:
		return false
	}
}

// Task is a unit of planned work produced by the compiler. Tasks are
// immutable once placed into a plan.
type Task struct {
	// ID is unique within one plan.
	ID string `json:"id"`

	// Kind selects the leaf function the executor dispatches to.
	Kind TaskKind `json:"kind"`

	// Description is the clause this task was compiled from.
	Description string `json:"description"`

	// InputSlots are the store slot IDs this task reads, in order.
	InputSlots []string `json:"input_slots"`

	// OutputSlots are the store slot IDs this task writes, in order.
	// Always non-empty.
	OutputSlots []string `json:"output_slots"`

	// DependsOn lists the task IDs that must complete first.
	DependsOn []string `json:"depends_on"`

	// Params carries pattern capture groups and other compiler output
	// for the leaf function.
	Params map[string]any `json:"params,omitempty"`
}
