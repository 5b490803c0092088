package systems

import (
	"log"
	"slices"

	"github.com/automoto/netsmooth/components"
	"github.com/automoto/netsmooth/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewNetworkInputSystem returns an ECS system that cycles the selected agent
// with Tab and sends a JumpRequest for it on Space.
func NewNetworkInputSystem(sendFn func(any) error) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		viewer := GetOrCreateViewer(e)
		ids := agentIDs(e)

		if viewer.HasSelected && !slices.Contains(ids, viewer.Selected) {
			viewer.HasSelected = false
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			viewer.Selected, viewer.HasSelected = selectNext(ids, viewer.Selected, viewer.HasSelected)
		}

		if !viewer.HasSelected || !inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			return
		}
		if err := sendFn(messages.JumpRequest{AgentID: uint(viewer.Selected)}); err != nil {
			log.Printf("[viewer] failed to send jump request: %v", err)
		}
	}
}

// agentIDs returns the NetworkIds of all agents in ascending order.
func agentIDs(e *ecs.ECS) []esync.NetworkId {
	var ids []esync.NetworkId
	components.SmoothedAgent.Each(e.World, func(entry *donburi.Entry) {
		if id := esync.GetNetworkId(entry); id != nil {
			ids = append(ids, *id)
		}
	})
	slices.Sort(ids)
	return ids
}

// selectNext returns the id after current, wrapping to the first.
func selectNext(ids []esync.NetworkId, current esync.NetworkId, has bool) (esync.NetworkId, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	if has {
		for _, id := range ids {
			if id > current {
				return id, true
			}
		}
	}
	return ids[0], true
}
