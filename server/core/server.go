package core

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/messages"
	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/automoto/netsmooth/wire"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// jumpBacklog bounds queued jump requests between two ticks.
const jumpBacklog = 64

// Server simulates agents and streams their state to viewers as snapshots.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport

	sc              cfg.ServerConfig
	requiredVersion string
	rng             *rand.Rand
	arena           *Arena
	agents          []*SimAgent
	byID            map[esync.NetworkId]*SimAgent
	loss            *LossSimulator
	recorder        *wire.Recorder

	// sync sends the world to every viewer; replaced in tests.
	sync func() error

	jumpCh chan esync.NetworkId

	// Connected viewers and their names
	viewers map[*router.NetworkClient]string
	mu      sync.RWMutex

	clock         float64
	sinceSnapshot float64
	seq           uint32
	inOutage      bool
}

// NewServer creates the world and spawns sc.Agents agents. If trace is not
// nil every snapshot that is actually sent is recorded to it.
func NewServer(sc cfg.ServerConfig, requiredVersion string, trace io.Writer) (*Server, error) {
	if sc.TickRate < 1 || sc.SnapshotRate < 1 {
		return nil, fmt.Errorf("tick rate %d and snapshot rate %d must be positive", sc.TickRate, sc.SnapshotRate)
	}

	world := donburi.NewWorld()
	rng := rand.New(rand.NewSource(int64(sc.Seed)))

	s := &Server{
		world:           world,
		sc:              sc,
		requiredVersion: requiredVersion,
		rng:             rng,
		arena:           NewArena(sc, rng),
		byID:            make(map[esync.NetworkId]*SimAgent),
		loss:            NewLossSimulator(sc.LossRate, sc.OutageEvery, sc.OutageLength, rng),
		sync:            srvsync.DoSync,
		jumpCh:          make(chan esync.NetworkId, jumpBacklog),
		viewers:         make(map[*router.NetworkClient]string),
	}
	if trace != nil {
		s.recorder = wire.NewRecorder(trace)
	}
	s.loop = NewGameLoop(s, sc.TickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	for i := 0; i < sc.Agents; i++ {
		if err := s.spawnAgent(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Server) spawnAgent() error {
	entity := s.world.Create(netcomponents.NetAgent)

	// No interpolation: viewers smooth snapshots themselves
	if err := srvsync.NetworkSync(s.world, &entity, netcomponents.NetAgent); err != nil {
		return fmt.Errorf("network sync agent: %w", err)
	}

	entry := s.world.Entry(entity)
	agent := newSimAgent(s.arena, entity, s.sc, s.rng)
	agent.Retarget(s.sc, s.rng)
	agent.Net(netcomponents.NetAgent.Get(entry))

	id := esync.GetNetworkId(entry)
	if id == nil {
		return fmt.Errorf("agent entity %v has no network id", entity)
	}
	agent.ID = *id
	s.agents = append(s.agents, agent)
	s.byID[*id] = agent

	x, z := agent.Position()
	log.Printf("Agent %d spawned at (%.1f, %.1f)", *id, x, z)
	return nil
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()

	// Start game loop
	go s.loop.Run()

	// Create and start WebSocket transport
	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop and flushes the trace.
func (s *Server) Stop() {
	s.loop.Stop()
	if s.loop.Running() {
		log.Println("Game loop still running after stop; trace may miss its last tick")
	}
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Flush(); err != nil {
		log.Printf("Failed to flush trace: %v", err)
		return
	}
	log.Printf("Trace: %d frames recorded", s.recorder.Frames())
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("Viewer connected: %s", client.Id())
		s.mu.Lock()
		s.viewers[client] = ""
		s.mu.Unlock()
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("Viewer %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("Viewer %s disconnected", client.Id())
		}
		s.mu.Lock()
		delete(s.viewers, client)
		s.mu.Unlock()
	})

	router.On(func(client *router.NetworkClient, hello messages.ViewerHello) {
		s.onViewerHello(client, hello)
	})

	router.On(func(client *router.NetworkClient, req messages.JumpRequest) {
		s.QueueJump(esync.NetworkId(req.AgentID))
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Viewer error: %v", err)
	})
}

func (s *Server) onViewerHello(client *router.NetworkClient, hello messages.ViewerHello) {
	if s.requiredVersion != "" && hello.Version != s.requiredVersion {
		log.Printf("Viewer %s (%s) speaks %q, expected %q", client.Id(), hello.Name, hello.Version, s.requiredVersion)
	}
	s.mu.Lock()
	s.viewers[client] = hello.Name
	s.mu.Unlock()
	log.Printf("Viewer %s is %q", client.Id(), hello.Name)
}

// QueueJump asks an agent to jump on the next tick. Safe for concurrent use;
// requests beyond the backlog are dropped.
func (s *Server) QueueJump(id esync.NetworkId) {
	select {
	case s.jumpCh <- id:
	default:
		log.Printf("Jump request for agent %d dropped, backlog full", id)
	}
}

// ProcessCommands applies queued viewer commands. Called from the game loop.
func (s *Server) ProcessCommands() {
	for {
		select {
		case id := <-s.jumpCh:
			if agent, ok := s.byID[id]; ok {
				agent.Jump()
			}
		default:
			return
		}
	}
}

// Step advances the simulation by dt seconds and sends a snapshot when one
// is due. It reports whether a snapshot went out.
func (s *Server) Step(dt float64) bool {
	s.clock += dt
	s.loss.Advance(dt)

	for _, agent := range s.agents {
		agent.Step(dt, s.sc, s.rng)
		if s.world.Valid(agent.Entity) {
			agent.Net(netcomponents.NetAgent.Get(s.world.Entry(agent.Entity)))
		}
	}

	interval := 1 / float64(s.sc.SnapshotRate)
	s.sinceSnapshot += dt
	if s.sinceSnapshot < interval {
		return false
	}
	s.sinceSnapshot -= interval

	// Seq advances for lost snapshots too, so viewers see the gap.
	s.seq++
	for _, agent := range s.agents {
		if s.world.Valid(agent.Entity) {
			netcomponents.NetAgent.Get(s.world.Entry(agent.Entity)).Seq = s.seq
		}
	}

	if out := s.loss.InOutage(); out != s.inOutage {
		s.inOutage = out
		if out {
			log.Printf("Outage started at %.1fs (seq %d)", s.clock, s.seq)
		} else {
			log.Printf("Outage ended at %.1fs (seq %d)", s.clock, s.seq)
		}
	}
	if s.loss.Drop() {
		return false
	}

	if err := s.sync(); err != nil {
		log.Printf("Sync error: %v", err)
		return false
	}
	s.record()
	return true
}

// record writes the snapshot just sent, plus one jump frame per JumpSeq
// increment since the last recorded snapshot.
func (s *Server) record() {
	if s.recorder == nil {
		return
	}
	for _, agent := range s.agents {
		id := agent.ID
		if !s.world.Valid(agent.Entity) {
			continue
		}
		data := *netcomponents.NetAgent.Get(s.world.Entry(agent.Entity))
		snap, err := wire.FromNetAgent(data)
		if err != nil {
			log.Printf("Trace: agent %d: %v", id, err)
			continue
		}
		if err := s.recorder.WriteSnapshot(s.clock, uint64(id), snap); err != nil {
			log.Printf("Trace write failed: %v", err)
			return
		}
		for ; agent.recordedJumpSeq != data.JumpSeq; agent.recordedJumpSeq++ {
			if err := s.recorder.WriteJump(s.clock, uint64(id)); err != nil {
				log.Printf("Trace write failed: %v", err)
				return
			}
		}
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Agents returns the simulated agents in spawn order.
func (s *Server) Agents() []*SimAgent {
	return s.agents
}

// ViewerCount returns the number of connected viewers
func (s *Server) ViewerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.viewers)
}

// LossCounts returns how many snapshots were sent and dropped so far.
func (s *Server) LossCounts() (sent, dropped int) {
	return s.loss.Counts()
}
