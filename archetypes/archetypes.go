package archetypes

import (
	"github.com/automoto/netsmooth/components"
	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Agent = newArchetype(
		tags.Agent,
		esync.NetworkIdComponent,
		components.SmoothedAgent,
		components.RenderTransform,
	)
	Viewer = newArchetype(
		tags.Viewer,
		components.Viewer,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
