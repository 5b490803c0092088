package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/netsmooth/archetypes"
	"github.com/automoto/netsmooth/components"
	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/automoto/netsmooth/wire"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// deserialize decodes one synced component. Tests swap it out.
var deserialize = esync.Mapper.Deserialize

// ApplyEntityState decodes every component state of one synced entity and
// applies the agent states among them. Components that fail to decode or
// apply are skipped and reported together; the rest still apply.
func ApplyEntityState(e *ecs.ECS, id esync.NetworkId, states [][]byte) error {
	var errs []error
	for _, b := range states {
		instance, err := deserialize(b)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to deserialize component: %w", err))
			continue
		}
		data, ok := instance.(netcomponents.NetAgentData)
		if !ok {
			continue
		}
		if err := ApplyAgentState(e, id, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ApplyAgentState feeds one synced agent state into the matching smoothed
// agent, spawning it on first sight. Malformed states are rejected with a
// *wire.DecodeError and leave the world untouched.
func ApplyAgentState(e *ecs.ECS, id esync.NetworkId, d netcomponents.NetAgentData) error {
	snap, err := wire.FromNetAgent(d)
	if err != nil {
		return err
	}

	world := e.World
	var entry *donburi.Entry
	if entity := esync.FindByNetworkId(world, id); world.Valid(entity) {
		entry = world.Entry(entity)
	} else {
		entry, err = spawnAgent(e, id, snap)
		if err != nil {
			return err
		}
	}

	sa := components.SmoothedAgent.Get(entry)
	sa.Agent.PushSnapshot(snap)

	if sa.Seen {
		// Every increment is a press; the agent folds presses within a tick.
		for n := d.JumpSeq - sa.JumpSeq; n > 0 && n < 1<<16; n-- {
			sa.Agent.PushJump()
		}
	}
	sa.JumpSeq = d.JumpSeq
	sa.Seen = true
	return nil
}

func spawnAgent(e *ecs.ECS, id esync.NetworkId, first smoothing.Snapshot) (*donburi.Entry, error) {
	viewer := GetOrCreateViewer(e)
	start := first.Position
	agent, err := smoothing.NewAgent(viewer.Smoothing,
		smoothing.WithStartPosition(gamemath.Vec3{X: start.X, Z: start.Z}),
	)
	if err != nil {
		return nil, err
	}

	entry := archetypes.Agent.Spawn(e)
	esync.NetworkIdComponent.SetValue(entry, id)
	components.SmoothedAgent.SetValue(entry, components.SmoothedAgentData{
		Agent: agent,
		Color: int(id),
	})
	components.RenderTransform.SetValue(entry, components.RenderTransformData{
		X:      start.X,
		Z:      start.Z,
		Regime: smoothing.Frozen,
	})

	log.Printf("[viewer] agent %d appeared at (%.2f, %.2f)", id, start.X, start.Z)
	return entry, nil
}

// RemoveMissingAgents despawns agents whose NetworkId is not in present.
func RemoveMissingAgents(e *ecs.ECS, present map[esync.NetworkId]bool) {
	var gone []*donburi.Entry
	components.SmoothedAgent.Each(e.World, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil || present[*id] {
			return
		}
		gone = append(gone, entry)
	})
	for _, entry := range gone {
		id := esync.GetNetworkId(entry)
		log.Printf("[viewer] agent %d left", *id)
		entry.Remove()
	}
}
