// Package memory provides the versioned in-memory store that plans
// execute against.
//
// The store holds named, typed slots. Content is opaque: the runtime
// never inspects it except when asked to shallow-merge two map-typed
// contents. Versioning happens at the store level only, through
// checkpoints.
//
// # Slots
//
// Each slot has a kind describing the role of its content:
//
//	store := memory.NewStore()
//	store.Allocate("input_doc", memory.KindContext, "raw text...", nil)
//	store.Allocate("counts", memory.KindIntermediate, map[string]any{"words": 42.0}, nil)
//
//	// Shallow-merge into map-typed content
//	store.Update("counts", map[string]any{"lines": 7.0}, true)
//
//	// Rewrite content through a function
//	store.Transform("input_doc", func(v any) any {
//	    return strings.ToUpper(v.(string))
//	})
//
// # Checkpoints
//
// CreateCheckpoint deep-copies every current slot; RestoreCheckpoint
// replaces the whole live slot set with fresh copies of a snapshot:
//
//	store.CreateCheckpoint("cp1", "before risky step")
//	store.Delete("input_doc")
//
//	// Bring input_doc back, drop anything created since cp1.
//	err := store.RestoreCheckpoint("cp1")
//
// Snapshots are fully independent of live state: mutating the store
// after a checkpoint can never be observed through the checkpoint, and
// vice versa. This trades memory for restore simplicity.
//
// # Action log
//
// Every mutation appends one entry to an unbounded, append-only action
// log, available through Log. The log exists for audit and
// visualization; it is not a write-ahead log and is never replayed.
//
// # Concurrency
//
// A Store assumes a single writer and does no internal locking. Use one
// store per active session, or serialize access externally.
package memory
