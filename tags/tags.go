package tags

import "github.com/yohamta/donburi"

var (
	Agent  = donburi.NewTag().SetName("Agent")
	Viewer = donburi.NewTag().SetName("Viewer")
)

// Resolv tags for the server arena
const (
	ResolvSolid  = "solid"
	ResolvPillar = "pillar"
	ResolvAgent  = "agent"
)
