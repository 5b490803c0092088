package core

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/automoto/netsmooth/shared/protocol"
	"github.com/automoto/netsmooth/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("register components: %v", err)
	}
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, lossRate float64, trace io.Writer) (*Server, *int) {
	t.Helper()
	sc := testServerConfig()
	sc.Agents = 3
	sc.LossRate = lossRate
	sc.OutageEvery = 0
	sc.TickRate = 30
	sc.SnapshotRate = 10

	s, err := NewServer(sc, "", trace)
	require.NoError(t, err)

	syncs := 0
	s.sync = func() error {
		syncs++
		return nil
	}
	return s, &syncs
}

func TestNewServerRejectsBadRates(t *testing.T) {
	sc := testServerConfig()
	sc.SnapshotRate = 0
	_, err := NewServer(sc, "", nil)
	assert.Error(t, err)
}

func TestServerSnapshotCadence(t *testing.T) {
	s, syncs := newTestServer(t, 0, nil)
	require.Len(t, s.Agents(), 3)

	for i := 0; i < 30; i++ {
		s.Step(1.0 / 30)
	}

	assert.InDelta(t, 10, *syncs, 1)
	for _, a := range s.Agents() {
		d := netcomponents.NetAgent.Get(s.World().Entry(a.Entity))
		assert.Equal(t, s.seq, d.Seq)
		x, z := a.Position()
		assert.InDelta(t, x, d.PosX, 1e-3)
		assert.InDelta(t, z, d.PosZ, 1e-3)
	}
}

func TestServerLossKeepsSeqMoving(t *testing.T) {
	s, syncs := newTestServer(t, 1, nil)

	for i := 0; i < 30; i++ {
		assert.False(t, s.Step(1.0/30))
	}

	assert.Zero(t, *syncs)
	assert.GreaterOrEqual(t, s.seq, uint32(9))
	sent, dropped := s.LossCounts()
	assert.Zero(t, sent)
	assert.Equal(t, int(s.seq), dropped)
}

func TestServerJumpRequest(t *testing.T) {
	s, _ := newTestServer(t, 0, nil)
	target := s.Agents()[1]

	s.QueueJump(target.ID)
	s.QueueJump(target.ID)
	s.QueueJump(target.ID + 100) // unknown agents are ignored
	s.ProcessCommands()

	assert.Equal(t, uint32(2), target.JumpSeq)
	assert.Zero(t, s.Agents()[0].JumpSeq)
}

func TestServerRecordsSentSnapshots(t *testing.T) {
	var buf bytes.Buffer
	s, syncs := newTestServer(t, 0, &buf)

	s.QueueJump(s.Agents()[0].ID)
	s.ProcessCommands()
	for i := 0; i < 15; i++ {
		s.Step(1.0 / 30)
	}
	require.NoError(t, s.recorder.Flush())

	snapshots, jumps := 0, 0
	r := wire.NewTraceReader(&buf)
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		switch f.Kind {
		case wire.FrameSnapshot:
			snapshots++
		case wire.FrameJump:
			jumps++
			assert.Equal(t, uint64(s.Agents()[0].ID), f.AgentID)
		}
	}

	assert.Equal(t, *syncs*3, snapshots)
	assert.Equal(t, 1, jumps, "a jump is traced once")
}
