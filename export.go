package sdk

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gencompute/sdk/memory"
)

// SlotExport is the serialized form of a slot in a session export.
type SlotExport struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Content   any            `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CheckpointExport describes a checkpoint without its slot bodies.
// Checkpoint contents stay in memory; the export records only that a
// snapshot exists and what it covered.
type CheckpointExport struct {
	ID          string    `json:"id"`
	Description string    `json:"description,omitempty"`
	SlotCount   int       `json:"slot_count"`
	At          time.Time `json:"at"`
}

// SessionExport is a complete snapshot of a session suitable for
// serialization: every live slot, checkpoint metadata, the full action
// log, and usage counters.
type SessionExport struct {
	SessionID   string             `json:"session_id"`
	Slots       []SlotExport       `json:"slots"`
	Checkpoints []CheckpointExport `json:"checkpoints"`
	Log         []memory.Action    `json:"log"`
	Usage       memory.Usage       `json:"usage"`
	ExportedAt  time.Time          `json:"exported_at"`
}

// ExportSession captures the current session state. Slot contents are
// deep-copied, so mutating the store afterwards does not affect the export.
func (s *System) ExportSession() *SessionExport {
	export := &SessionExport{
		SessionID:  s.sessionID,
		Usage:      s.store.Usage(),
		Log:        s.store.Log(),
		ExportedAt: time.Now().UTC(),
	}

	for _, kind := range memory.Kinds() {
		for _, slot := range s.store.ListByKind(kind) {
			clone := slot.Clone()
			export.Slots = append(export.Slots, SlotExport{
				ID:        clone.ID,
				Kind:      clone.Kind.String(),
				Content:   clone.Content,
				Metadata:  clone.Metadata,
				UpdatedAt: clone.UpdatedAt,
			})
		}
	}

	for _, cp := range s.store.Checkpoints() {
		export.Checkpoints = append(export.Checkpoints, CheckpointExport{
			ID:          cp.ID,
			Description: cp.Description,
			SlotCount:   cp.Captured.SlotCount,
			At:          cp.At,
		})
	}

	return export
}

// WriteSessionFile writes the current session export to path as indented
// JSON, creating or truncating the file.
func (s *System) WriteSessionFile(path string) error {
	data, err := json.MarshalIndent(s.ExportSession(), "", "  ")
	if err != nil {
		return &SDKError{Op: "System.WriteSessionFile", Kind: KindInternal, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &SDKError{
			Op:   "System.WriteSessionFile",
			Kind: KindInternal,
			Err:  fmt.Errorf("write %s: %w", path, err),
		}
	}
	return nil
}
