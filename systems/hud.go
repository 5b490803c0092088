package systems

import (
	"fmt"

	"github.com/automoto/netsmooth/components"
	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/fonts"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudLineHeight = 16
	hudPanelWidth = 270
)

var helpLines = []string{
	"P        toggle precise stop",
	"[ ]      correction multiplier",
	"- =      rotation multiplier",
	"Tab      select agent",
	"Space    jump selected agent",
	"H        hide help",
}

// DrawHUD renders the tuning, the regime counts and details of the selected
// agent in the top-left corner.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	viewer := GetOrCreateViewer(e)
	lines := hudLines(e, viewer)
	if viewer.ShowHelp {
		lines = append(lines, "")
		lines = append(lines, helpLines...)
	} else {
		lines = append(lines, "H for help")
	}

	height := float32(len(lines)*hudLineHeight + hudMargin)
	vector.DrawFilledRect(screen, hudMargin/2, hudMargin/2, hudPanelWidth, height, cfg.Shadow, false)

	face := fonts.Small.Get()
	for i, line := range lines {
		if i == 0 {
			text.Draw(screen, line, fonts.Regular.Get(), hudMargin, hudMargin+hudLineHeight-4, cfg.White)
			continue
		}
		text.Draw(screen, line, face, hudMargin, hudMargin+(i+1)*hudLineHeight-4, cfg.White)
	}

	if len(agentIDs(e)) == 0 {
		drawWaiting(screen, viewer.Status)
	}
}

// drawWaiting centers a banner while no agent has been received yet.
func drawWaiting(screen *ebiten.Image, status string) {
	msg := "waiting for agents"
	face := fonts.Title.Get()
	bounds := text.BoundString(face, msg)
	x := (cfg.Viewer.Width - bounds.Dx()) / 2
	y := cfg.Viewer.Height / 2
	text.Draw(screen, msg, face, x, y, cfg.White)

	small := fonts.Small.Get()
	sb := text.BoundString(small, status)
	text.Draw(screen, status, small, (cfg.Viewer.Width-sb.Dx())/2, y+2*hudLineHeight, cfg.Yellow)
}

func hudLines(e *ecs.ECS, viewer *components.ViewerData) []string {
	s := viewer.Smoothing
	lines := []string{
		viewer.Status,
		fmt.Sprintf("precise stop %t  corr x%d  rot x%d", s.PreciseStop, s.CorrectionMultiplier, s.RotationMultiplier),
	}

	var counts [smoothing.Frozen + 1]int
	var selected *donburi.Entry
	components.SmoothedAgent.Each(e.World, func(entry *donburi.Entry) {
		counts[components.RenderTransform.Get(entry).Regime]++
		if id := esync.GetNetworkId(entry); viewer.HasSelected && id != nil && *id == viewer.Selected {
			selected = entry
		}
	})
	lines = append(lines, fmt.Sprintf("fresh %d  extrapolating %d  frozen %d",
		counts[smoothing.Fresh], counts[smoothing.ExtrapolatingOnly], counts[smoothing.Frozen]))

	if selected == nil {
		return lines
	}
	sa := components.SmoothedAgent.Get(selected)
	st := sa.Agent.State()
	stats := sa.Agent.Stats()
	lines = append(lines,
		fmt.Sprintf("agent %d  %s  %s", viewer.Selected, sa.Agent.Regime(), sa.Agent.Jump().Phase()),
		fmt.Sprintf("error %.2f  seq %d", st.PositionError.Len(), st.Current.Seq),
		fmt.Sprintf("snaps %d  teleports %d  dropped %d", stats.Snaps, stats.Teleports, stats.Discarded),
	)
	return lines
}
