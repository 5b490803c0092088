package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordAndRead(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	s := smoothing.Snapshot{
		Position: gamemath.Vec2{X: 3, Z: -1},
		Velocity: gamemath.Vec2{X: 0.25, Z: 0},
		Seq:      7,
	}
	require.NoError(t, rec.WriteSnapshot(0.5, 12, s))
	require.NoError(t, rec.WriteJump(0.75, 12))
	require.NoError(t, rec.Flush())
	assert.Equal(t, 2, rec.Frames())

	tr := NewTraceReader(&buf)

	f, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, FrameSnapshot, f.Kind)
	assert.Equal(t, 0.5, f.Time)
	assert.Equal(t, uint64(12), f.AgentID)
	assert.Equal(t, s, f.Snapshot)

	f, err = tr.Next()
	require.NoError(t, err)
	assert.Equal(t, FrameJump, f.Kind)
	assert.Equal(t, 0.75, f.Time)

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTraceReaderRejectsBadFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame any
		field string
	}{
		{"short", []any{1, 0.5}, "frame"},
		{"unknown kind", []any{9, 0.5, 1}, "kind"},
		{"kind out of range", []any{uint64(257), 1.0, 3, 7, []float32{1, 2, 3, 4}}, "kind"},
		{"jump with payload", []any{2, 0.5, 1, 4}, "frame"},
		{"snapshot missing payload", []any{1, 0.5, 1, 4}, "frame"},
		{"bad time", []any{1, "now", 1, 4, []float32{1, 2, 3, 4}}, "time"},
		{"negative agent", []any{2, 0.5, -1}, "agentID"},
		{"short payload", []any{1, 0.5, 1, 4, []float32{1, 2}}, "payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTraceReader(bytes.NewReader(encodeRaw(t, tt.frame)))
			_, err := tr.Next()
			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestTraceReaderContinuesAfterBadFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeRaw(t, []any{1, 0.5, 1, 4, []float32{1, 2}}))
	buf.Write(encodeRaw(t, []any{2, 0.75, 3}))

	tr := NewTraceReader(&buf)
	_, err := tr.Next()
	require.Error(t, err)

	f, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), f.AgentID)
}
