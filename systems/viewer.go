package systems

import (
	"github.com/automoto/netsmooth/archetypes"
	"github.com/automoto/netsmooth/components"
	cfg "github.com/automoto/netsmooth/config"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateViewer returns the viewer singleton, creating it from the
// global smoothing config on first use.
func GetOrCreateViewer(e *ecs.ECS) *components.ViewerData {
	if entry, ok := components.Viewer.First(e.World); ok {
		return components.Viewer.Get(entry)
	}
	entry := archetypes.Viewer.Spawn(e)
	components.Viewer.SetValue(entry, components.ViewerData{
		Smoothing: cfg.Smoothing,
	})
	return components.Viewer.Get(entry)
}
