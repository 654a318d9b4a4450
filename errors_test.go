package sdk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gencompute/sdk/interpret"
	"github.com/gencompute/sdk/memory"
	"github.com/gencompute/sdk/reasoning"
)

func TestSDKErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *SDKError
		want string
	}{
		{
			name: "without underlying error",
			err:  &SDKError{Op: "System.Status", Kind: KindInternal},
			want: "sdk: System.Status: internal",
		},
		{
			name: "with underlying error",
			err: &SDKError{
				Op:   "System.ExecuteInstruction",
				Kind: KindExecution,
				Err:  ErrExecutionFailed,
			},
			want: "sdk: System.ExecuteInstruction (execution): execution failed",
		},
		{
			name: "with context",
			err: &SDKError{
				Op:      "System.BacktrackAndRetry",
				Kind:    KindNotFound,
				Err:     memory.ErrCheckpointNotFound,
				Context: map[string]any{"checkpoint_id": "checkpoint_3"},
			},
			want: "sdk: System.BacktrackAndRetry (not_found): memory: checkpoint not found [context: map[checkpoint_id:checkpoint_3]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSDKErrorUnwrap(t *testing.T) {
	err := &SDKError{
		Op:   "System.ExecuteInstruction",
		Kind: KindExecution,
		Err:  ErrExecutionFailed,
	}

	assert.True(t, errors.Is(err, ErrExecutionFailed))
	assert.Equal(t, ErrExecutionFailed, errors.Unwrap(err))
}

func TestSDKErrorIsKindMatching(t *testing.T) {
	err := &SDKError{Op: "System.ExecuteInstruction", Kind: KindCycle, Err: interpret.ErrCycle}

	// Kind-only target matches regardless of Op.
	assert.True(t, errors.Is(err, &SDKError{Kind: KindCycle}))
	assert.True(t, errors.Is(err, &SDKError{Op: "System.ExecuteInstruction", Kind: KindCycle}))
	assert.False(t, errors.Is(err, &SDKError{Op: "System.Close", Kind: KindCycle}))
	assert.False(t, errors.Is(err, &SDKError{Kind: KindNotFound}))
}

func TestSDKErrorWithContext(t *testing.T) {
	base := &SDKError{Op: "System.Close", Kind: KindInternal, Err: errors.New("redis down")}
	enriched := base.WithContext(map[string]any{"session_id": "session_abc"})

	assert.Equal(t, "session_abc", enriched.Context["session_id"])
	assert.Nil(t, base.Context)
}

func TestWrapErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"slot not found", memory.ErrSlotNotFound, KindNotFound},
		{"checkpoint not found", memory.ErrCheckpointNotFound, KindNotFound},
		{"cycle", interpret.ErrCycle, KindCycle},
		{"unknown kind", interpret.ErrUnknownKind, KindValidation},
		{"index out of range", reasoning.ErrIndexOutOfRange, KindRange},
		{"empty instruction", ErrEmptyInstruction, KindValidation},
		{"everything else", errors.New("leaf blew up"), KindExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapError("TestOp", tt.err)
			var sdkErr *SDKError
			require.True(t, errors.As(wrapped, &sdkErr))
			assert.Equal(t, tt.kind, sdkErr.Kind)
			assert.Equal(t, "TestOp", sdkErr.Op)
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}

	assert.NoError(t, wrapError("TestOp", nil))
}
