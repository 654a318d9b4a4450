// Package functions provides the leaf operations the task executor
// dispatches to, and a registry to manage them.
//
// The executor itself only wires slots; all actual text processing
// lives here: citation extraction and verification, string transform
// pipelines, summarization heuristics, CEL-based content validation,
// and generation backed by a completion provider.
//
// Every operation is exposed both as a plain function and as an
// exec.Leaf adapter, so it can be registered directly on a runner:
//
//	lib := functions.DefaultLibrary(llm.NewMockProvider())
//	runner := exec.NewRunner()
//	runner.Register(interpret.KindExtract, lib.MustGet("citation"))
package functions
