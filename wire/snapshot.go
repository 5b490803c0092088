// Package wire converts snapshots between the smoothing core and the outside
// world: necs components on the live path, msgpack payloads and trace files
// for recording and replay.
package wire

import (
	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

// payloadFields is the number of values in a snapshot payload:
// posX, posZ, velX, velZ.
const payloadFields = 4

var payloadNames = [payloadFields]string{"posX", "posZ", "velX", "velZ"}

var mh = &codec.MsgpackHandle{}

// FromNetAgent converts a synced component. Non-finite values are rejected.
func FromNetAgent(d netcomponents.NetAgentData) (smoothing.Snapshot, error) {
	values := [payloadFields]float64{float64(d.PosX), float64(d.PosZ), float64(d.VelX), float64(d.VelZ)}
	for i, v := range values {
		if !gamemath.Finite(v) {
			return smoothing.Snapshot{}, fieldError(payloadNames[i], "not finite: %v", v)
		}
	}
	return smoothing.Snapshot{
		Position: gamemath.Vec2{X: values[0], Z: values[1]},
		Velocity: gamemath.Vec2{X: values[2], Z: values[3]},
		Seq:      d.Seq,
	}, nil
}

func payloadOf(s smoothing.Snapshot) []float32 {
	return []float32{
		float32(s.Position.X), float32(s.Position.Z),
		float32(s.Velocity.X), float32(s.Velocity.Z),
	}
}

func decodePayload(raw any) (smoothing.Snapshot, error) {
	arr, ok := raw.([]any)
	if !ok {
		return smoothing.Snapshot{}, fieldError("payload", "expected array, got %T", raw)
	}
	if len(arr) != payloadFields {
		return smoothing.Snapshot{}, fieldError("payload", "expected %d fields, got %d", payloadFields, len(arr))
	}

	var values [payloadFields]float64
	for i, v := range arr {
		f, err := toFloat(payloadNames[i], v)
		if err != nil {
			return smoothing.Snapshot{}, err
		}
		values[i] = f
	}

	return smoothing.Snapshot{
		Position: gamemath.Vec2{X: values[0], Z: values[1]},
		Velocity: gamemath.Vec2{X: values[2], Z: values[3]},
	}, nil
}

// toFloat accepts any msgpack number. Integers are allowed because encoders
// are free to pack whole floats as ints.
func toFloat(field string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float32:
		f = float64(n)
	case float64:
		f = n
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case int:
		f = float64(n)
	case uint:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint32:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	default:
		return 0, fieldError(field, "expected number, got %T", v)
	}
	if !gamemath.Finite(f) {
		return 0, fieldError(field, "not finite: %v", f)
	}
	return f, nil
}

// toUint accepts non-negative msgpack integers.
func toUint(field string, v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case int64, int, int32, int16, int8:
		i := toInt64(n)
		if i < 0 {
			return 0, fieldError(field, "negative value %d", i)
		}
		return uint64(i), nil
	}
	return 0, fieldError(field, "expected unsigned integer, got %T", v)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int8:
		return int64(n)
	}
	return 0
}
