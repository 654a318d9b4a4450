package functions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gencompute/sdk/exec"
	"github.com/gencompute/sdk/llm"
)

// ErrFunctionNotFound is returned when a library lookup names an
// unregistered function.
var ErrFunctionNotFound = errors.New("functions: function not found")

// Signature describes one registered function for listings and exports.
type Signature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Library is a named registry of leaf functions. Coordinators register
// custom skills here and wire entries onto an executor by task kind.
type Library struct {
	entries map[string]entry
}

type entry struct {
	description string
	leaf        exec.Leaf
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{entries: make(map[string]entry)}
}

// DefaultLibrary creates a library with the built-in operations
// registered: citation, transform, summarize, analyze, validate (no
// rules), and generate backed by the given provider.
func DefaultLibrary(provider llm.Provider) *Library {
	lib := NewLibrary()
	lib.Register("citation", "extract and verify citations from text", CitationLeaf)

	pipeline := NewPipeline()
	lib.Register("transform", "apply a named string-transform pipeline", pipeline.Leaf)

	lib.Register("summarize", "compress text to a length budget", SummarizeLeaf)
	lib.Register("analyze", "compute shape statistics over content", AnalyzeLeaf)

	// An empty rule set passes everything; citation verification still
	// applies when the input carries citations.
	validator, err := NewValidator(nil)
	if err != nil {
		panic(fmt.Sprintf("functions: built-in validator: %v", err))
	}
	lib.Register("validate", "check content against validation rules", validator.Leaf)

	lib.Register("generate", "produce new content via the completion provider", GenerateLeaf(provider))
	return lib
}

// Register installs a leaf under a name, replacing any previous one.
func (l *Library) Register(name, description string, leaf exec.Leaf) {
	l.entries[name] = entry{description: description, leaf: leaf}
}

// Get looks up a leaf by name.
func (l *Library) Get(name string) (exec.Leaf, bool) {
	e, ok := l.entries[name]
	if !ok {
		return nil, false
	}
	return e.leaf, true
}

// MustGet looks up a leaf by name and panics if it is absent. Intended
// for wiring the built-in library, where absence is a programming error.
func (l *Library) MustGet(name string) exec.Leaf {
	leaf, ok := l.Get(name)
	if !ok {
		panic(fmt.Sprintf("%v: %q", ErrFunctionNotFound, name))
	}
	return leaf
}

// Signatures lists every registered function, sorted by name.
func (l *Library) Signatures() []Signature {
	out := make([]Signature, 0, len(l.entries))
	for name, e := range l.entries {
		out = append(out, Signature{Name: name, Description: e.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names lists registered function names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered functions.
func (l *Library) Len() int {
	return len(l.entries)
}
