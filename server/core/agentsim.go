package core

import (
	"math"
	"math/rand"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/automoto/netsmooth/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// stopChance is the probability a retarget picks standing still, so viewers
// see agents come to rest.
const stopChance = 0.2

// SimAgent is the server-side motion of one agent. It is not a donburi
// component; only NetAgentData is synced.
type SimAgent struct {
	ID     esync.NetworkId
	Entity donburi.Entity
	Object *resolv.Object
	Size   float64

	Heading float64 // Yaw, 0 faces +Z
	Speed   float64
	ramp    *gween.Tween

	retargetIn float64
	JumpSeq    uint32

	recordedJumpSeq uint32 // JumpSeq as of the last traced snapshot
}

func newSimAgent(arena *Arena, entity donburi.Entity, sc cfg.ServerConfig, rng *rand.Rand) *SimAgent {
	x, z := arena.Width/2, arena.Height/2
	for i := 0; i < 50; i++ {
		cx := sc.AgentSize + rng.Float64()*(arena.Width-2*sc.AgentSize)
		cz := sc.AgentSize + rng.Float64()*(arena.Height-2*sc.AgentSize)
		if arena.Free(cx, cz, sc.AgentSize) {
			x, z = cx, cz
			break
		}
	}

	return &SimAgent{
		Entity:  entity,
		Object:  arena.NewBody(x, z, sc.AgentSize),
		Size:    sc.AgentSize,
		Heading: rng.Float64() * 2 * math.Pi,
	}
}

// Position returns the body center in world units.
func (a *SimAgent) Position() (x, z float64) {
	return worldCoord(a.Object.X + a.Object.W/2), worldCoord(a.Object.Y + a.Object.H/2)
}

// Velocity returns the current ground velocity in units per second.
func (a *SimAgent) Velocity() (vx, vz float64) {
	return math.Sin(a.Heading) * a.Speed, math.Cos(a.Heading) * a.Speed
}

// Retarget picks a new heading and eases toward a new speed.
func (a *SimAgent) Retarget(sc cfg.ServerConfig, rng *rand.Rand) {
	a.Heading = rng.Float64() * 2 * math.Pi
	target := 0.0
	if rng.Float64() >= stopChance {
		target = sc.MinSpeed + rng.Float64()*(sc.MaxSpeed-sc.MinSpeed)
	}
	a.ramp = gween.New(float32(a.Speed), float32(target), sc.SpeedRampTime, ease.InOutQuad)
	a.retargetIn = sc.RetargetPeriod * (0.5 + rng.Float64())
}

// Jump bumps JumpSeq; viewers start a jump on every increment.
func (a *SimAgent) Jump() {
	a.JumpSeq++
}

// Step advances the agent by dt seconds. Hitting a solid stops the move at
// the contact and reflects the heading on that axis.
func (a *SimAgent) Step(dt float64, sc cfg.ServerConfig, rng *rand.Rand) {
	if a.ramp != nil {
		speed, done := a.ramp.Update(float32(dt))
		a.Speed = gamemath.ClampRange(float64(speed), 0, sc.MaxSpeed)
		if done {
			a.ramp = nil
		}
	}

	a.retargetIn -= dt
	if a.retargetIn <= 0 {
		a.Retarget(sc, rng)
	}
	if rng.Float64() < sc.JumpChance*dt {
		a.Jump()
	}

	vx, vz := a.Velocity()
	if dx := vx * dt * arenaScale; dx != 0 {
		moved, hit := a.move(dx, 0)
		a.Object.X += moved
		if hit {
			a.Heading = -a.Heading
		}
	}
	if dz := vz * dt * arenaScale; dz != 0 {
		moved, hit := a.move(0, dz)
		a.Object.Y += moved
		if hit {
			a.Heading = math.Pi - a.Heading
		}
	}
	a.Object.Update()
}

// move returns how far the body can travel along one axis before touching a
// solid, and whether it touched one.
func (a *SimAgent) move(dx, dy float64) (float64, bool) {
	check := a.Object.Check(dx, dy, tags.ResolvSolid)
	if check == nil {
		return dx + dy, false
	}
	allowed := dx + dy
	hit := false
	for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
		if !overlaps(a.Object.X+dx, a.Object.Y+dy, a.Object.W, a.Object.H, o) {
			continue
		}
		contact := check.ContactWithObject(o)
		d := contact.X()
		if dy != 0 {
			d = contact.Y()
		}
		if math.Abs(d) < math.Abs(allowed) {
			allowed = d
		}
		hit = true
	}
	return allowed, hit
}

// Net fills the synced component from the simulation. Seq is left to the
// snapshot sender.
func (a *SimAgent) Net(d *netcomponents.NetAgentData) {
	x, z := a.Position()
	vx, vz := a.Velocity()
	d.PosX, d.PosZ = float32(x), float32(z)
	d.VelX, d.VelZ = float32(vx), float32(vz)
	d.JumpSeq = a.JumpSeq
}
