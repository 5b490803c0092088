package systems

import (
	"image/color"
	"math"
	"strconv"

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

// arenaOrigin is the screen position of world (0, 0), chosen so the server's
// default arena is centered in the window.
func arenaOrigin() (float32, float32) {
	ppu := cfg.Viewer.PixelsPerUnit
	x := (float64(cfg.Viewer.Width) - float64(cfg.Server.ArenaWidth)*ppu) / 2
	y := (float64(cfg.Viewer.Height) - float64(cfg.Server.ArenaHeight)*ppu) / 2
	return float32(x), float32(y)
}

// worldToScreen maps a ground-plane point to screen pixels. World +Z is
// screen down.
func worldToScreen(x, z float64) (float32, float32) {
	ox, oy := arenaOrigin()
	ppu := cfg.Viewer.PixelsPerUnit
	return ox + float32(x*ppu), oy + float32(z*ppu)
}

func regimeColor(r smoothing.Regime) color.RGBA {
	switch r {
	case smoothing.Fresh:
		return cfg.BrightGreen
	case smoothing.ExtrapolatingOnly:
		return cfg.Orange
	default:
		return cfg.Red
	}
}

func DrawArena(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.DarkGray)
	ox, oy := arenaOrigin()
	ppu := float32(cfg.Viewer.PixelsPerUnit)
	w := float32(cfg.Server.ArenaWidth) * ppu
	h := float32(cfg.Server.ArenaHeight) * ppu
	vector.StrokeRect(screen, ox, oy, w, h, 2, cfg.LightBlue, false)
}

// DrawAgents renders every agent top-down: a shadow on the ground, the body
// raised by its height, a ring coloured by staleness regime and a facing line.
func DrawAgents(e *ecs.ECS, screen *ebiten.Image) {
	viewer := GetOrCreateViewer(e)
	smallFont := fonts.Small.Get()
	radius := cfg.Viewer.AgentRadius

	components.SmoothedAgent.Each(e.World, func(entry *donburi.Entry) {
		sa := components.SmoothedAgent.Get(entry)
		rt := components.RenderTransform.Get(entry)

		gx, gy := worldToScreen(rt.X, rt.Z)
		lift := float32(rt.Y) * cfg.Viewer.ShadowPerUnit
		bx, by := gx, gy-lift

		vector.DrawFilledCircle(screen, gx, gy, radius, cfg.Shadow, true)

		body := cfg.AgentColors[sa.Color%len(cfg.AgentColors)]
		vector.DrawFilledCircle(screen, bx, by, radius, body, true)
		vector.StrokeCircle(screen, bx, by, radius+1, 2, regimeColor(rt.Regime), true)

		fx := bx + float32(math.Sin(rt.Yaw))*cfg.Viewer.FacingLength
		fy := by + float32(math.Cos(rt.Yaw))*cfg.Viewer.FacingLength
		vector.StrokeLine(screen, bx, by, fx, fy, 2, cfg.White, true)

		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if viewer.HasSelected && *id == viewer.Selected {
			vector.StrokeCircle(screen, bx, by, radius+5, 1, cfg.Yellow, true)
		}
		label := strconv.Itoa(int(*id))
		text.Draw(screen, label, smallFont, int(bx)-len(label)*3, int(by-radius)-4, cfg.White)
	})
}
