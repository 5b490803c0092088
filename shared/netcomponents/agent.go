package netcomponents

import "github.com/yohamta/donburi"

// NetAgentData is the synced state of one remotely driven agent. Position and
// velocity are on the ground plane; height is never sent.
type NetAgentData struct {
	PosX, PosZ float32
	VelX, VelZ float32
	Seq        uint32 // Incremented for every snapshot the server sends
	JumpSeq    uint32 // Incremented once per jump; receivers trigger on change
}

var NetAgent = donburi.NewComponentType[NetAgentData]()
