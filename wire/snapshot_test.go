package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRaw(t *testing.T, v any) []byte {
	t.Helper()
	var out []byte
	require.NoError(t, codec.NewEncoderBytes(&out, mh).Encode(v))
	return out
}

// encodeSnapshot packs the horizontal state of s the way the recorder does.
func encodeSnapshot(t *testing.T, s smoothing.Snapshot) []byte {
	t.Helper()
	return encodeRaw(t, payloadOf(s))
}

// decodeSnapshot unpacks a lone payload and tags it with seq.
func decodeSnapshot(b []byte, seq uint32) (smoothing.Snapshot, error) {
	var raw any
	if err := codec.NewDecoderBytes(b, mh).Decode(&raw); err != nil {
		return smoothing.Snapshot{}, &DecodeError{Reason: "invalid msgpack", Err: err}
	}
	s, err := decodePayload(raw)
	if err != nil {
		return smoothing.Snapshot{}, err
	}
	s.Seq = seq
	return s, nil
}

func TestDecodeSnapshot(t *testing.T) {
	in := smoothing.Snapshot{
		Position: gamemath.Vec2{X: 1.5, Z: -2.25},
		Velocity: gamemath.Vec2{X: 0.5, Z: 4},
	}
	got, err := decodeSnapshot(encodeSnapshot(t, in), 42)
	require.NoError(t, err)
	assert.Equal(t, in.Position, got.Position)
	assert.Equal(t, in.Velocity, got.Velocity)
	assert.Equal(t, uint32(42), got.Seq)
}

func TestDecodeSnapshotAcceptsIntegers(t *testing.T) {
	got, err := decodeSnapshot(encodeRaw(t, []any{1, -2, 0, 3}), 1)
	require.NoError(t, err)
	assert.Equal(t, gamemath.Vec2{X: 1, Z: -2}, got.Position)
	assert.Equal(t, gamemath.Vec2{X: 0, Z: 3}, got.Velocity)
}

func TestDecodeSnapshotErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		field string
	}{
		{"too few fields", encodeRaw(t, []float32{1, 2, 3}), "payload"},
		{"too many fields", encodeRaw(t, []float32{1, 2, 3, 4, 5}), "payload"},
		{"not an array", encodeRaw(t, "hello"), "payload"},
		{"string field", encodeRaw(t, []any{1.0, "x", 3.0, 4.0}), "posZ"},
		{"nan field", encodeRaw(t, []float64{1, 2, math.NaN(), 4}), "velX"},
		{"garbage", []byte{0xc1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeSnapshot(tt.input, 1)
			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestToFloatSmallIntegers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"uint8", uint8(200), 200},
		{"uint16", uint16(60000), 60000},
		{"int8", int8(-100), -100},
		{"int16", int16(-30000), -30000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toFloat("posX", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := toFloat("posX", true)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "posX", de.Field)
}

func TestFromNetAgent(t *testing.T) {
	got, err := FromNetAgent(netcomponents.NetAgentData{PosX: 1, PosZ: 2, VelX: -3, VelZ: 0.5, Seq: 9, JumpSeq: 4})
	require.NoError(t, err)
	assert.Equal(t, smoothing.Snapshot{
		Position: gamemath.Vec2{X: 1, Z: 2},
		Velocity: gamemath.Vec2{X: -3, Z: 0.5},
		Seq:      9,
	}, got)

	_, err = FromNetAgent(netcomponents.NetAgentData{VelZ: float32(math.Inf(1))})
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "velZ", de.Field)
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{Field: "posX", Reason: "expected number, got string"}
	assert.Equal(t, "decode posX: expected number, got string", err.Error())

	inner := errors.New("short buffer")
	wrapped := &DecodeError{Reason: "invalid msgpack", Err: inner}
	assert.ErrorIs(t, wrapped, inner)
	assert.Equal(t, "decode: invalid msgpack: short buffer", wrapped.Error())
}
