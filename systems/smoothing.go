package systems

import (
	"log"

	"github.com/automoto/netsmooth/components"
	cfg "github.com/automoto/netsmooth/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSmoothing ticks every agent by one fixed step and publishes the
// result for the renderers.
func UpdateSmoothing(e *ecs.ECS) {
	dt := 1.0 / float64(cfg.Viewer.TPS)
	viewer := GetOrCreateViewer(e)

	components.SmoothedAgent.Each(e.World, func(entry *donburi.Entry) {
		sa := components.SmoothedAgent.Get(entry)
		if viewer.Dirty {
			if err := sa.Agent.SetConfig(viewer.Smoothing); err != nil {
				log.Printf("[viewer] %v", err)
			}
		}

		t := sa.Agent.Tick(dt)
		rt := components.RenderTransform.Get(entry)
		rt.X = t.Position.X
		rt.Y = t.Position.Y
		rt.Z = t.Position.Z
		rt.Yaw = t.Yaw
		rt.Regime = sa.Agent.Regime()
		rt.Phase = sa.Agent.Jump().Phase()
	})

	viewer.Dirty = false
}
