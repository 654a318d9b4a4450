package memory

import (
	"fmt"
	"sort"
	"time"
)

// Checkpoint is an immutable, deep-copied snapshot of every slot in a
// store at a point in time. Restoring it replaces the store's entire
// live slot set; it never merges.
type Checkpoint struct {
	// ID addresses the checkpoint within its store.
	ID string `json:"id"`

	// Slots holds deep copies of every slot captured at creation time,
	// sorted by slot ID.
	Slots []*Slot `json:"slots"`

	// Captured records store sizes at creation time.
	Captured CapturedState `json:"captured"`

	// Description is an optional note about why the checkpoint was taken.
	Description string `json:"description,omitempty"`

	// At is the creation time.
	At time.Time `json:"at"`
}

// CapturedState summarizes the store at the moment a checkpoint was taken.
type CapturedState struct {
	SlotCount int       `json:"slot_count"`
	At        time.Time `json:"at"`
}

// CreateCheckpoint deep-copies every current slot into a new checkpoint
// keyed by id. Creating a checkpoint with an existing ID replaces it.
// The snapshot shares no mutable sub-structure with the live store, so
// later mutations can never be observed through it.
func (s *Store) CreateCheckpoint(id, description string) *Checkpoint {
	now := time.Now()
	cp := &Checkpoint{
		ID:          id,
		Slots:       make([]*Slot, 0, len(s.slots)),
		Description: description,
		At:          now,
		Captured: CapturedState{
			SlotCount: len(s.slots),
			At:        now,
		},
	}
	for _, slot := range s.slots {
		cp.Slots = append(cp.Slots, slot.Clone())
	}
	sort.Slice(cp.Slots, func(i, j int) bool { return cp.Slots[i].ID < cp.Slots[j].ID })

	s.checkpoints[id] = cp
	s.logAction("create_checkpoint", map[string]any{"checkpoint_id": id, "slot_count": cp.Captured.SlotCount})
	return cp
}

// RestoreCheckpoint discards the live slot set and replaces it with
// fresh deep copies of the checkpoint's slots. Any slot created after
// the checkpoint and not present in it disappears. This is the store's
// only rollback primitive: a full-state restore, not a selective undo.
//
// Returns ErrCheckpointNotFound if id is unknown, in which case the
// store is left completely unmodified.
func (s *Store) RestoreCheckpoint(id string) error {
	cp, ok := s.checkpoints[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCheckpointNotFound, id)
	}

	restored := make(map[string]*Slot, len(cp.Slots))
	for _, slot := range cp.Slots {
		restored[slot.ID] = slot.Clone()
	}
	s.slots = restored
	s.logAction("restore_checkpoint", map[string]any{"checkpoint_id": id})
	return nil
}

// GetCheckpoint looks up a checkpoint by ID.
func (s *Store) GetCheckpoint(id string) (*Checkpoint, bool) {
	cp, ok := s.checkpoints[id]
	return cp, ok
}

// Checkpoints returns every stored checkpoint, sorted by ID.
func (s *Store) Checkpoints() []*Checkpoint {
	out := make([]*Checkpoint, 0, len(s.checkpoints))
	for _, cp := range s.checkpoints {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
