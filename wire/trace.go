package wire

import (
	"bufio"
	"errors"
	"io"
	"math"

	"github.com/automoto/netsmooth/smoothing"
	"github.com/hashicorp/go-msgpack/v2/codec"
)

// FrameKind tags a trace frame.
type FrameKind uint8

const (
	FrameSnapshot FrameKind = 1
	FrameJump     FrameKind = 2
)

func (k FrameKind) String() string {
	switch k {
	case FrameSnapshot:
		return "snapshot"
	case FrameJump:
		return "jump"
	}
	return "unknown"
}

// Frame is one recorded event. Time is the sender's clock in seconds.
type Frame struct {
	Kind     FrameKind
	Time     float64
	AgentID  uint64
	Snapshot smoothing.Snapshot // FrameSnapshot only
}

// Recorder writes a trace as a stream of msgpack arrays:
//
//	[1, time, agentID, seq, [posX, posZ, velX, velZ]]
//	[2, time, agentID]
//
// It is not safe for concurrent use.
type Recorder struct {
	w   *bufio.Writer
	enc *codec.Encoder
	n   int
}

func NewRecorder(w io.Writer) *Recorder {
	bw := bufio.NewWriter(w)
	return &Recorder{
		w:   bw,
		enc: codec.NewEncoder(bw, mh),
	}
}

func (r *Recorder) WriteSnapshot(t float64, agentID uint64, s smoothing.Snapshot) error {
	r.n++
	return r.enc.Encode([]any{uint8(FrameSnapshot), t, agentID, s.Seq, payloadOf(s)})
}

func (r *Recorder) WriteJump(t float64, agentID uint64) error {
	r.n++
	return r.enc.Encode([]any{uint8(FrameJump), t, agentID})
}

// Frames returns how many frames were written.
func (r *Recorder) Frames() int {
	return r.n
}

// Flush pushes buffered frames to the underlying writer.
func (r *Recorder) Flush() error {
	return r.w.Flush()
}

// TraceReader reads frames written by a Recorder.
type TraceReader struct {
	dec *codec.Decoder
}

func NewTraceReader(r io.Reader) *TraceReader {
	return &TraceReader{dec: codec.NewDecoder(bufio.NewReader(r), mh)}
}

// Next returns the next frame, io.EOF at a clean end of stream, or a
// *DecodeError for a malformed frame. Reading may continue after a
// DecodeError if the stream itself is intact.
func (tr *TraceReader) Next() (Frame, error) {
	var raw any
	if err := tr.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, &DecodeError{Reason: "invalid msgpack", Err: err}
	}
	return decodeFrame(raw)
}

func decodeFrame(raw any) (Frame, error) {
	arr, ok := raw.([]any)
	if !ok {
		return Frame{}, fieldError("frame", "expected array, got %T", raw)
	}
	if len(arr) < 3 {
		return Frame{}, fieldError("frame", "expected at least 3 fields, got %d", len(arr))
	}

	kind, err := toUint("kind", arr[0])
	if err != nil {
		return Frame{}, err
	}
	if kind > math.MaxUint8 {
		return Frame{}, fieldError("kind", "out of range: %d", kind)
	}
	t, err := toFloat("time", arr[1])
	if err != nil {
		return Frame{}, err
	}
	id, err := toUint("agentID", arr[2])
	if err != nil {
		return Frame{}, err
	}
	f := Frame{Kind: FrameKind(kind), Time: t, AgentID: id}

	switch f.Kind {
	case FrameJump:
		if len(arr) != 3 {
			return Frame{}, fieldError("frame", "jump expects 3 fields, got %d", len(arr))
		}
	case FrameSnapshot:
		if len(arr) != 5 {
			return Frame{}, fieldError("frame", "snapshot expects 5 fields, got %d", len(arr))
		}
		seq, err := toUint("seq", arr[3])
		if err != nil {
			return Frame{}, err
		}
		if seq > 1<<32-1 {
			return Frame{}, fieldError("seq", "out of range: %d", seq)
		}
		s, err := decodePayload(arr[4])
		if err != nil {
			return Frame{}, err
		}
		s.Seq = uint32(seq)
		f.Snapshot = s
	default:
		return Frame{}, fieldError("kind", "unknown frame kind %d", kind)
	}
	return f, nil
}
