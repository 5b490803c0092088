package smoothing

import (
	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/shared/gamemath"
)

// Phase is the vertical motion state derived from the JumpState flags.
type Phase int

const (
	Grounded Phase = iota
	Jumping
	Falling
)

func (p Phase) String() string {
	switch p {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	}
	return "unknown"
}

// JumpState is the locally simulated jump/fall sequence. It is driven only by
// Trigger and Step and never looks at snapshots.
type JumpState struct {
	Grounded     bool
	Jumping      bool
	JumpVelocity float64
	FallVelocity float64
}

// NewJumpState returns a machine resting on the ground.
func NewJumpState() JumpState {
	return JumpState{Grounded: true}
}

func (j JumpState) Phase() Phase {
	switch {
	case j.Jumping:
		return Jumping
	case j.Grounded:
		return Grounded
	default:
		return Falling
	}
}

// Trigger starts a jump. It is rejected unless the agent is grounded and not
// already jumping.
func (j *JumpState) Trigger() bool {
	if !j.Grounded || j.Jumping {
		return false
	}
	j.JumpVelocity = config.Jump.LaunchVelocity
	j.Jumping = true
	j.Grounded = false
	j.FallVelocity = 0
	return true
}

// Step advances the machine by dt and returns the new height, never below 0.
func (j *JumpState) Step(height, dt float64) float64 {
	c := config.Jump

	switch j.Phase() {
	case Jumping:
		j.JumpVelocity -= dt * c.Decay
		if j.JumpVelocity >= 0 {
			height += j.JumpVelocity * dt * c.RiseScale
		} else {
			j.Jumping = false
		}

	case Falling:
		j.FallVelocity = gamemath.Lerp(j.FallVelocity, c.TerminalFall, dt*c.FallEase)
		height -= j.FallVelocity * dt
		if height < 0 {
			height = 0
		}
		if height <= c.LandEpsilon {
			height = 0
			j.Grounded = true
		}
	}

	return height
}
