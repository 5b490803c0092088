package systems

import (
	"log"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

const maxMultiplier = 10

type settingAction int

const (
	togglePreciseStop settingAction = iota
	correctionDown
	correctionUp
	rotationDown
	rotationUp
)

var settingKeys = map[ebiten.Key]settingAction{
	ebiten.KeyP:            togglePreciseStop,
	ebiten.KeyBracketLeft:  correctionDown,
	ebiten.KeyBracketRight: correctionUp,
	ebiten.KeyMinus:        rotationDown,
	ebiten.KeyEqual:        rotationUp,
}

// adjustSmoothing applies one settings action, keeping multipliers in
// [1, maxMultiplier]. It reports whether anything changed.
func adjustSmoothing(s cfg.SmoothingConfig, action settingAction) (cfg.SmoothingConfig, bool) {
	before := s
	switch action {
	case togglePreciseStop:
		s.PreciseStop = !s.PreciseStop
	case correctionDown:
		s.CorrectionMultiplier = max(1, s.CorrectionMultiplier-1)
	case correctionUp:
		s.CorrectionMultiplier = min(maxMultiplier, s.CorrectionMultiplier+1)
	case rotationDown:
		s.RotationMultiplier = max(1, s.RotationMultiplier-1)
	case rotationUp:
		s.RotationMultiplier = min(maxMultiplier, s.RotationMultiplier+1)
	}
	return s, s != before
}

// UpdateSettings handles the tuning hotkeys and persists every change.
func UpdateSettings(e *ecs.ECS) {
	viewer := GetOrCreateViewer(e)

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		viewer.ShowHelp = !viewer.ShowHelp
	}

	changed := false
	for key, action := range settingKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		var ok bool
		viewer.Smoothing, ok = adjustSmoothing(viewer.Smoothing, action)
		changed = changed || ok
	}
	if !changed {
		return
	}

	viewer.Dirty = true
	log.Printf("[viewer] smoothing: preciseStop=%t correction=%d rotation=%d",
		viewer.Smoothing.PreciseStop, viewer.Smoothing.CorrectionMultiplier, viewer.Smoothing.RotationMultiplier)
	_ = SaveSmoothing(viewer.Smoothing)
}
