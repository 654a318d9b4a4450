package memory

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Common errors returned by store operations.
var (
	// ErrSlotNotFound is returned when a mutation targets a slot ID that
	// does not exist in the store.
	ErrSlotNotFound = errors.New("memory: slot not found")

	// ErrCheckpointNotFound is returned when restoring an unknown
	// checkpoint ID.
	ErrCheckpointNotFound = errors.New("memory: checkpoint not found")
)

// Store is a named-slot memory store with checkpoint snapshots and an
// append-only action log. It is the only owner of its slots; a slot has
// no existence outside its store.
//
// A Store assumes a single writer. None of its methods lock, and safe
// concurrent use requires external serialization, typically one store
// per active session.
//
// Example usage:
//
//	store := memory.NewStore()
//	store.Allocate("doc", memory.KindContext, "raw text", nil)
//
//	cp, _ := store.CreateCheckpoint("before-run", "clean state")
//	store.Update("doc", "modified", false)
//
//	// Roll everything back to the snapshot.
//	_ = store.RestoreCheckpoint(cp.ID)
type Store struct {
	slots       map[string]*Slot
	checkpoints map[string]*Checkpoint
	log         []Action
}

// Action is one entry in the store's append-only action log. The log is
// a diagnostic trail for audit and visualization; it is never replayed
// to reconstruct state.
type Action struct {
	// Name identifies the mutation, e.g. "allocate_slot".
	Name string `json:"name"`

	// Details carries mutation-specific fields such as the slot ID.
	Details map[string]any `json:"details,omitempty"`

	// At is the time the action was recorded.
	At time.Time `json:"at"`
}

// Usage is a read-only snapshot of the store's current sizes.
type Usage struct {
	TotalSlots  int          `json:"total_slots"`
	ByKind      map[Kind]int `json:"by_kind"`
	Checkpoints int          `json:"checkpoints"`
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		slots:       make(map[string]*Slot),
		checkpoints: make(map[string]*Checkpoint),
	}
}

// Allocate creates the slot at id, or overwrites it if it already
// exists. There is no versioning at the slot level; rollback happens at
// the store level through checkpoints. Allocate always succeeds and
// returns the stored slot.
func (s *Store) Allocate(id string, kind Kind, content any, metadata map[string]any) *Slot {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	slot := &Slot{
		ID:        id,
		Kind:      kind,
		Content:   content,
		Metadata:  metadata,
		UpdatedAt: time.Now(),
	}
	s.slots[id] = slot
	s.logAction("allocate_slot", map[string]any{"slot_id": id, "kind": kind.String()})
	return slot
}

// Update replaces the content of an existing slot. When merge is true
// and both the existing and the new content are map-typed, the new keys
// are shallow-merged over the existing ones instead; in every other case
// the content is replaced wholesale. The slot's timestamp is refreshed.
//
// Returns ErrSlotNotFound if no slot exists at id.
func (s *Store) Update(id string, content any, merge bool) error {
	slot, ok := s.slots[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSlotNotFound, id)
	}

	newMap, newIsMap := content.(map[string]any)
	oldMap, oldIsMap := slot.Content.(map[string]any)
	if merge && newIsMap && oldIsMap {
		for k, v := range newMap {
			oldMap[k] = v
		}
	} else {
		slot.Content = content
	}

	slot.UpdatedAt = time.Now()
	s.logAction("update_slot", map[string]any{"slot_id": id})
	return nil
}

// Transform replaces a slot's content with f(currentContent). The result
// is applied as a non-merging update.
//
// Returns ErrSlotNotFound if no slot exists at id.
func (s *Store) Transform(id string, f func(any) any) error {
	slot, ok := s.slots[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSlotNotFound, id)
	}

	if err := s.Update(id, f(slot.Content), false); err != nil {
		return err
	}
	s.logAction("transform_slot", map[string]any{"slot_id": id})
	return nil
}

// Delete removes the slot at id. Deleting an absent slot is a no-op,
// not an error: deletion is idempotent, and only performed deletions are
// logged.
func (s *Store) Delete(id string) {
	if _, ok := s.slots[id]; !ok {
		return
	}
	delete(s.slots, id)
	s.logAction("delete_slot", map[string]any{"slot_id": id})
}

// Get looks up a slot by ID. It never fails; the second return value
// reports whether the slot exists.
func (s *Store) Get(id string) (*Slot, bool) {
	slot, ok := s.slots[id]
	return slot, ok
}

// ListByKind returns every current slot of the given kind, sorted by
// slot ID so one call always yields a stable iteration order.
func (s *Store) ListByKind(kind Kind) []*Slot {
	var out []*Slot
	for _, slot := range s.slots {
		if slot.Kind == kind {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Usage reports the store's current sizes, counted per kind.
func (s *Store) Usage() Usage {
	u := Usage{
		TotalSlots:  len(s.slots),
		ByKind:      make(map[Kind]int, len(Kinds())),
		Checkpoints: len(s.checkpoints),
	}
	for _, kind := range Kinds() {
		u.ByKind[kind] = 0
	}
	for _, slot := range s.slots {
		u.ByKind[slot.Kind]++
	}
	return u
}

// Log returns a copy of the action log, oldest entry first.
func (s *Store) Log() []Action {
	out := make([]Action, len(s.log))
	copy(out, s.log)
	return out
}

func (s *Store) logAction(name string, details map[string]any) {
	s.log = append(s.log, Action{
		Name:    name,
		Details: details,
		At:      time.Now(),
	})
}
