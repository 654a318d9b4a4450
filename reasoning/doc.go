// Package reasoning provides the confidence-tracked reasoning ledger.
//
// A Chain is an append-only, ordered sequence of reasoning steps. Each
// step carries a confidence score in [0, 1] and may reference a store
// checkpoint ID, correlating the ledger with memory snapshots without
// depending on the store itself.
//
// Low-confidence steps mark candidate rollback points:
//
//	chain := reasoning.NewChain()
//	chain.Append("parse instruction", "split into 3 clauses", 0.9, "")
//	chain.Append("guess output format", "no format stated, assuming JSON", 0.55, "cp1")
//
//	for _, step := range chain.LowConfidence(0.7) {
//	    fmt.Printf("weak step %d: %s\n", step.Index, step.Description)
//	}
//
// TruncateTo rolls the ledger itself back, independent of (but typically
// paired with) a store restore:
//
//	discarded, err := chain.TruncateTo(0) // keep only step 0
//
// A Chain assumes a single writer, like the rest of the core.
package reasoning
