package smoothing

import (
	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
)

// Snapshot is one reference state received from the network.
type Snapshot struct {
	Position gamemath.Vec2
	Velocity gamemath.Vec2
	Seq      uint32

	// ArrivalTime is stamped locally when the snapshot is applied.
	ArrivalTime float64
}

// seqNewer reports whether a is strictly newer than b, tolerating uint32
// wraparound of the sender's counter.
func seqNewer(a, b uint32) bool {
	return int32(a-b) > 0
}

type applyResult int

const (
	applyDiscarded applyResult = iota
	applyAccepted
	applyTeleported
)

// snapshotStore holds the current reference snapshot and the position error
// measured when it arrived.
type snapshotStore struct {
	current       Snapshot
	hasSnapshot   bool
	positionError gamemath.Vec3
}

// apply replaces the reference with s if it is newer, teleporting rendered
// when the previous reference had gone stale and the gap is large. Rejected
// snapshots leave every field untouched.
func (st *snapshotStore) apply(s Snapshot, now float64, rendered *gamemath.Vec3, t config.ThresholdConfig) applyResult {
	if st.hasSnapshot && !seqNewer(s.Seq, st.current.Seq) {
		return applyDiscarded
	}

	result := applyAccepted
	stale := !st.hasSnapshot || now-st.current.ArrivalTime > t.FrozenAfter
	if stale && rendered.Horizontal().Sub(s.Position).Len() > t.TeleportDistance {
		*rendered = rendered.WithHorizontal(s.Position)
		result = applyTeleported
	}

	s.ArrivalTime = now
	st.current = s
	st.hasSnapshot = true
	st.positionError = gamemath.Vec3{
		X: rendered.X - s.Position.X,
		Z: rendered.Z - s.Position.Z,
	}
	return result
}

// elapsed returns the seconds since the reference arrived.
func (st *snapshotStore) elapsed(now float64) float64 {
	return now - st.current.ArrivalTime
}

// regime classifies the reference. Without any snapshot the agent is frozen.
func (st *snapshotStore) regime(now float64, t config.ThresholdConfig) Regime {
	if !st.hasSnapshot {
		return Frozen
	}
	return Classify(st.elapsed(now), t)
}
