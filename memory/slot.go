package memory

import (
	"encoding/json"
	"time"
)

// Kind categorizes a slot by the role its content plays in a session.
type Kind string

const (
	// KindContext holds caller-supplied input made available to tasks.
	KindContext Kind = "context"

	// KindIntermediate holds working values produced part-way through a plan.
	KindIntermediate Kind = "intermediate"

	// KindOutput holds task results written back by the executor.
	KindOutput Kind = "output"

	// KindCitation holds extracted citation records.
	KindCitation Kind = "citation"
)

// Kinds returns every recognized slot kind, in a fixed order.
func Kinds() []Kind {
	return []Kind{KindContext, KindIntermediate, KindOutput, KindCitation}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is a recognized value.
func (k Kind) IsValid() bool {
	switch k {
	case KindContext, KindIntermediate, KindOutput, KindCitation:
		return true
	default:
		return false
	}
}

// Slot is a named, typed memory cell owned by a Store. Content is opaque
// to the runtime: it can be a scalar, a map, or a slice, and is only ever
// inspected when a merge of two map-typed contents is requested.
type Slot struct {
	// ID is the unique key of this slot within its store.
	ID string `json:"id"`

	// Kind categorizes the slot's content.
	Kind Kind `json:"kind"`

	// Content is the stored value. Any JSON-serializable value works.
	Content any `json:"content"`

	// Metadata carries additional context about the slot, such as the
	// task that produced it.
	Metadata map[string]any `json:"metadata,omitempty"`

	// UpdatedAt is the time the slot was created or last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// String returns a human-readable representation of the slot.
func (s *Slot) String() string {
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}

// GetMetadata retrieves a metadata value by key, reporting whether it
// was present.
func (s *Slot) GetMetadata(key string) (any, bool) {
	if s.Metadata == nil {
		return nil, false
	}
	val, ok := s.Metadata[key]
	return val, ok
}

// SetMetadata sets a metadata value, initializing the map if needed.
func (s *Slot) SetMetadata(key string, value any) {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	s.Metadata[key] = value
}

// Clone creates a deep copy of the slot. The copy shares no mutable
// sub-structure with the original, so mutating one can never be observed
// through the other. Checkpointing relies on this.
func (s *Slot) Clone() *Slot {
	clone := &Slot{
		ID:        s.ID,
		Kind:      s.Kind,
		Content:   cloneValue(s.Content),
		UpdatedAt: s.UpdatedAt,
	}

	if s.Metadata != nil {
		clone.Metadata = make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			clone.Metadata[k] = cloneValue(v)
		}
	}

	return clone
}

// cloneValue creates a deep copy of a value using a JSON round-trip.
// This works for any JSON-serializable value; anything else is returned
// as-is.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var clone any
	if err := json.Unmarshal(data, &clone); err != nil {
		return v
	}

	return clone
}
