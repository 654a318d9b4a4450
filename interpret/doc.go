// Package interpret compiles free-form instructions into executable
// task plans.
//
// Compilation has three stages. Segmentation splits the instruction
// into ordered clauses on a fixed set of connective markers ("then",
// "after that", ...). Classification assigns each clause a task kind
// through an ordered regular-expression table, first match wins, with
// capture groups kept as task parameters; unmatched clauses become
// orchestrate catch-all tasks. Dependency wiring is strictly linear:
// each task consumes exactly the output slots of its predecessor.
//
//	compiler := interpret.NewCompiler()
//	tasks := compiler.Compile("extract citations from the text, then verify the citations")
//	plan, err := interpret.BuildPlan(tasks)
//
// The pattern table is replaceable at runtime, typically from YAML:
//
//	cfg, err := interpret.LoadConfig("patterns.yaml")
//	compiler, err = interpret.NewCompilerFromConfig(cfg)
//
// BuildPlan is a general topological sort with cycle detection, even
// though the compiler today only emits simple chains. That keeps the
// ordering correct if classification is later extended to emit fan-in
// or fan-out dependencies.
//
// Segmentation is heuristic, not grammatical. Irregular phrasing may
// over- or under-split; whatever survives is never dropped silently but
// classified, in the worst case as a single orchestrate task covering
// the whole instruction.
package interpret
