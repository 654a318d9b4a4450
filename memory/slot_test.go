package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIsValid(t *testing.T) {
	for _, kind := range Kinds() {
		assert.True(t, kind.IsValid(), "kind %s should be valid", kind)
	}
	assert.False(t, Kind("bogus").IsValid())
	assert.Equal(t, "context", KindContext.String())
}

func TestSlotMetadataHelpers(t *testing.T) {
	slot := &Slot{ID: "s", Kind: KindContext}

	_, ok := slot.GetMetadata("k")
	assert.False(t, ok)

	slot.SetMetadata("k", "v")
	got, ok := slot.GetMetadata("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestSlotCloneIsDeep(t *testing.T) {
	slot := &Slot{
		ID:   "s",
		Kind: KindIntermediate,
		Content: map[string]any{
			"nested": map[string]any{"n": 1.0},
			"list":   []any{"a", "b"},
		},
		Metadata: map[string]any{"tags": []any{"x"}},
	}

	clone := slot.Clone()
	require.Equal(t, slot.Content, clone.Content)
	require.Equal(t, slot.Metadata, clone.Metadata)

	clone.Content.(map[string]any)["nested"].(map[string]any)["n"] = 99.0
	clone.Metadata["tags"].([]any)[0] = "mutated"

	assert.Equal(t, 1.0, slot.Content.(map[string]any)["nested"].(map[string]any)["n"])
	assert.Equal(t, "x", slot.Metadata["tags"].([]any)[0])
}

func TestSlotCloneNilContent(t *testing.T) {
	slot := &Slot{ID: "s", Kind: KindContext}
	clone := slot.Clone()
	assert.Nil(t, clone.Content)
	assert.Nil(t, clone.Metadata)
}

func TestSlotString(t *testing.T) {
	slot := &Slot{ID: "s", Kind: KindOutput, Content: "done"}
	out := slot.String()
	assert.Contains(t, out, `"id": "s"`)
	assert.Contains(t, out, `"kind": "output"`)
}
