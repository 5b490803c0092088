package smoothing

import (
	"fmt"
	"sync"

	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
)

// Transform is the per-tick output handed to the renderer.
type Transform struct {
	Position gamemath.Vec3
	Yaw      float64
}

// AgentState is everything the agent renders from.
type AgentState struct {
	RenderedPosition         gamemath.Vec3
	RenderedYaw              float64
	Current                  Snapshot
	HasSnapshot              bool
	PositionError            gamemath.Vec3
	PreviousRenderedPosition gamemath.Vec3
}

// Stats counts what the agent did since it was created.
type Stats struct {
	Applied      int
	Discarded    int
	Teleports    int
	Snaps        int
	Suppressed   int
	JumpsStarted int
	JumpsIgnored int
	Ticks        [Frozen + 1]int // indexed by Regime
}

// Option configures an Agent at construction.
type Option func(*Agent)

// WithThresholds overrides config.Thresholds for this agent.
func WithThresholds(t config.ThresholdConfig) Option {
	return func(a *Agent) {
		a.thresholds = t
	}
}

// WithStartPosition places the agent before its first snapshot.
func WithStartPosition(p gamemath.Vec3) Option {
	return func(a *Agent) {
		a.rendered = p
		a.prevRendered = p
	}
}

// inbox stages input from network goroutines until the next tick.
type inbox struct {
	mu        sync.Mutex
	snapshots []Snapshot
	jumps     int
}

// Agent smooths one remotely driven entity.
//
// PushSnapshot and PushJump are safe for concurrent use. Everything else must
// be called from the goroutine that calls Tick.
type Agent struct {
	in inbox

	cfg        config.SmoothingConfig
	thresholds config.ThresholdConfig

	now          float64
	store        snapshotStore
	rendered     gamemath.Vec3
	prevRendered gamemath.Vec3
	yaw          float64
	jump         JumpState
	regime       Regime
	stats        Stats

	// spare is the drained snapshot slice, reused to avoid allocating per tick.
	spare []Snapshot
}

// NewAgent creates an agent resting at the origin. It fails if cfg is invalid.
func NewAgent(cfg config.SmoothingConfig, opts ...Option) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new agent: %w", err)
	}
	a := &Agent{
		cfg:        cfg,
		thresholds: config.Thresholds,
		jump:       NewJumpState(),
		regime:     Frozen,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// PushSnapshot stages a snapshot for the next tick.
func (a *Agent) PushSnapshot(s Snapshot) {
	a.in.mu.Lock()
	a.in.snapshots = append(a.in.snapshots, s)
	a.in.mu.Unlock()
}

// PushJump stages a remote jump command for the next tick.
func (a *Agent) PushJump() {
	a.in.mu.Lock()
	a.in.jumps++
	a.in.mu.Unlock()
}

// drain swaps the staged input out under the lock.
func (a *Agent) drain() ([]Snapshot, int) {
	a.in.mu.Lock()
	snaps := a.in.snapshots
	jumps := a.in.jumps
	a.in.snapshots = a.spare[:0]
	a.in.jumps = 0
	a.in.mu.Unlock()
	return snaps, jumps
}

// Tick advances the agent by dt seconds and returns what to render.
func (a *Agent) Tick(dt float64) Transform {
	snaps, jumps := a.drain()
	for _, s := range snaps {
		a.applySnapshot(s)
	}
	a.spare = snaps[:0]

	// One press is one jump; extra commands in the same tick are redundant.
	if jumps > 0 {
		if a.jump.Trigger() {
			a.stats.JumpsStarted++
		} else {
			a.stats.JumpsIgnored++
		}
		a.stats.JumpsIgnored += jumps - 1
	}

	a.now += dt
	a.prevRendered = a.rendered

	a.regime = a.store.regime(a.now, a.thresholds)
	a.stats.Ticks[a.regime]++

	ref := a.store.current
	if a.regime.Extrapolates() {
		a.rendered = Extrapolate(a.rendered, ref.Velocity, dt)
	}
	if a.regime.Corrects() {
		var outcome BlendOutcome
		a.rendered, outcome = Blend(a.rendered, ref, a.store.positionError, dt, a.cfg, a.thresholds)
		switch outcome {
		case Snapped:
			a.stats.Snaps++
		case Suppressed:
			a.stats.Suppressed++
		}
	}

	a.rendered.Y = a.jump.Step(a.rendered.Y, dt)
	a.yaw = Orient(a.yaw, a.prevRendered, a.rendered, dt, a.cfg.RotationMultiplier)

	return a.Transform()
}

func (a *Agent) applySnapshot(s Snapshot) {
	switch a.store.apply(s, a.now, &a.rendered, a.thresholds) {
	case applyDiscarded:
		a.stats.Discarded++
		return
	case applyTeleported:
		a.stats.Teleports++
	}
	a.stats.Applied++
}

// Transform returns the last rendered position and facing.
func (a *Agent) Transform() Transform {
	return Transform{Position: a.rendered, Yaw: a.yaw}
}

// State returns a copy of the agent's rendering state.
func (a *Agent) State() AgentState {
	return AgentState{
		RenderedPosition:         a.rendered,
		RenderedYaw:              a.yaw,
		Current:                  a.store.current,
		HasSnapshot:              a.store.hasSnapshot,
		PositionError:            a.store.positionError,
		PreviousRenderedPosition: a.prevRendered,
	}
}

func (a *Agent) Jump() JumpState { return a.jump }

// Regime returns the regime selected by the last tick.
func (a *Agent) Regime() Regime { return a.regime }

func (a *Agent) Stats() Stats { return a.stats }

// Now returns the agent's local clock in seconds.
func (a *Agent) Now() float64 { return a.now }

func (a *Agent) Config() config.SmoothingConfig { return a.cfg }

// SetConfig swaps the tuning at runtime. An invalid cfg is rejected and the
// current one kept.
func (a *Agent) SetConfig(cfg config.SmoothingConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	a.cfg = cfg
	return nil
}
