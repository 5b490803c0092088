package scenes

import (
	"fmt"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/network"
	"github.com/automoto/netsmooth/shared/netconfig"
	"github.com/automoto/netsmooth/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const reconnectDelay = 2 * time.Second

// NetworkedScene shows the agents of one server, smoothed locally.
type NetworkedScene struct {
	ecsWorld    *ecs.ECS
	netClient   *network.Client
	address     string
	name        string
	once        sync.Once
	presentIDs  map[esync.NetworkId]bool
	lastAttempt time.Time
}

func NewNetworkedScene(client *network.Client, address, name string) *NetworkedScene {
	return &NetworkedScene{
		netClient:  client,
		address:    address,
		name:       name,
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.netClient.State()
	if (state == network.StateDisconnected || state == network.StateError) &&
		time.Since(ns.lastAttempt) > reconnectDelay {
		if err := ns.netClient.LastError(); err != nil {
			log.Printf("[networked] %v, reconnecting", err)
		}
		ns.netClient.Disconnect()
		ns.connect()
	}

	viewer := systems.GetOrCreateViewer(ns.ecsWorld)
	viewer.Status = fmt.Sprintf("%s %s", ns.address, ns.netClient.State())

	for _, snap := range ns.netClient.DrainSnapshots() {
		ns.applySnapshot(snap)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	if ns.ecsWorld == nil {
		return
	}
	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())
	systems.GetOrCreateViewer(ns.ecsWorld)

	sendFn := func(msg any) error {
		if ns.netClient.State() != network.StateConnected {
			return nil
		}
		return ns.netClient.SendMessage(msg)
	}

	// Settings run first so a change applies in the same tick.
	ns.ecsWorld.AddSystem(systems.UpdateSettings)
	ns.ecsWorld.AddSystem(systems.NewNetworkInputSystem(sendFn))
	ns.ecsWorld.AddSystem(systems.UpdateSmoothing)
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawArena)
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawAgents)
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawHUD)

	ns.connect()
}

func (ns *NetworkedScene) connect() {
	ns.lastAttempt = time.Now()
	ns.netClient.Connect(ns.address, netconfig.ProtocolVersion, ns.name)
}

// applySnapshot pushes every agent of one world snapshot and removes agents
// the server no longer sends. A malformed agent state is logged and skipped;
// the agent keeps extrapolating from what it had.
func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	clear(ns.presentIDs)

	for _, ent := range snapshot {
		ns.presentIDs[ent.Id] = true

		states := make([][]byte, 0, len(ent.State))
		for _, b := range ent.State {
			states = append(states, b)
		}
		if err := systems.ApplyEntityState(ns.ecsWorld, ent.Id, states); err != nil {
			log.Printf("[networked] agent %d: %v", ent.Id, err)
		}
	}

	systems.RemoveMissingAgents(ns.ecsWorld, ns.presentIDs)
}
