package components

import (
	"github.com/automoto/netsmooth/smoothing"
	"github.com/yohamta/donburi"
)

// SmoothedAgentData binds a networked entity to its local smoothing state.
type SmoothedAgentData struct {
	Agent *smoothing.Agent

	JumpSeq uint32 // Last JumpSeq seen from the server
	Seen    bool   // False until the first snapshot was applied
	Color   int    // Index into config.AgentColors
}

var SmoothedAgent = donburi.NewComponentType[SmoothedAgentData]()

// RenderTransformData is the output of the last smoothing tick.
type RenderTransformData struct {
	X, Y, Z float64
	Yaw     float64
	Regime  smoothing.Regime
	Phase   smoothing.Phase
}

var RenderTransform = donburi.NewComponentType[RenderTransformData]()
