package systems

import (
	"bytes"
	"log"
	"os"
	"testing"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/leap-fish/necs/esync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustSmoothing(t *testing.T) {
	base := cfg.SmoothingConfig{RotationMultiplier: 3, CorrectionMultiplier: 3}

	tests := []struct {
		name    string
		start   cfg.SmoothingConfig
		action  settingAction
		want    cfg.SmoothingConfig
		changed bool
	}{
		{"toggle precise stop", base, togglePreciseStop, cfg.SmoothingConfig{PreciseStop: true, RotationMultiplier: 3, CorrectionMultiplier: 3}, true},
		{"correction up", base, correctionUp, cfg.SmoothingConfig{RotationMultiplier: 3, CorrectionMultiplier: 4}, true},
		{"rotation down", base, rotationDown, cfg.SmoothingConfig{RotationMultiplier: 2, CorrectionMultiplier: 3}, true},
		{"correction floor", cfg.SmoothingConfig{RotationMultiplier: 3, CorrectionMultiplier: 1}, correctionDown, cfg.SmoothingConfig{RotationMultiplier: 3, CorrectionMultiplier: 1}, false},
		{"rotation ceiling", cfg.SmoothingConfig{RotationMultiplier: maxMultiplier, CorrectionMultiplier: 3}, rotationUp, cfg.SmoothingConfig{RotationMultiplier: maxMultiplier, CorrectionMultiplier: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := adjustSmoothing(tt.start, tt.action)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestSelectNext(t *testing.T) {
	ids := []esync.NetworkId{2, 5, 9}

	id, ok := selectNext(ids, 0, false)
	assert.True(t, ok)
	assert.Equal(t, esync.NetworkId(2), id)

	id, _ = selectNext(ids, 5, true)
	assert.Equal(t, esync.NetworkId(9), id)

	id, _ = selectNext(ids, 9, true)
	assert.Equal(t, esync.NetworkId(2), id, "wraps around")

	_, ok = selectNext(nil, 5, true)
	assert.False(t, ok)
}

func TestDecodeSmoothing(t *testing.T) {
	s, err := decodeSmoothing([]byte(`{"preciseStop":true,"rotationMultiplier":4,"correctionMultiplier":6}`))
	require.NoError(t, err)
	assert.Equal(t, cfg.SmoothingConfig{PreciseStop: true, RotationMultiplier: 4, CorrectionMultiplier: 6}, *s)

	_, err = decodeSmoothing([]byte(`{"rotationMultiplier":0,"correctionMultiplier":6}`))
	assert.ErrorIs(t, err, cfg.ErrInvalidMultiplier)

	_, err = decodeSmoothing([]byte(`not json`))
	assert.Error(t, err)
}

func TestInitPersistenceLeavesLoggingToCaller(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	t.Cleanup(func() {
		gdataManager = nil
		gdataInitialized = false
	})

	if err := InitPersistence(); err != nil {
		assert.Contains(t, err.Error(), "open settings storage")
	}
	assert.Empty(t, buf.String())
}

func TestWorldToScreen(t *testing.T) {
	ox, oy := worldToScreen(0, 0)
	cx, cy := worldToScreen(float64(cfg.Server.ArenaWidth)/2, float64(cfg.Server.ArenaHeight)/2)

	assert.InDelta(t, float32(cfg.Viewer.Width)/2, cx, 1e-3, "arena is centered")
	assert.InDelta(t, float32(cfg.Viewer.Height)/2, cy, 1e-3)
	assert.GreaterOrEqual(t, ox, float32(0))
	assert.GreaterOrEqual(t, oy, float32(0))

	_, down := worldToScreen(0, 1)
	assert.Greater(t, down, oy, "+Z is screen down")
}

func TestRegimeColor(t *testing.T) {
	assert.Equal(t, cfg.BrightGreen, regimeColor(smoothing.Fresh))
	assert.Equal(t, cfg.Orange, regimeColor(smoothing.ExtrapolatingOnly))
	assert.Equal(t, cfg.Red, regimeColor(smoothing.Frozen))
}
