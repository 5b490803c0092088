package components

import (
	"github.com/automoto/netsmooth/config"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// ViewerData is the singleton state of the viewer: the live tuning and the
// agent the user has selected.
type ViewerData struct {
	Smoothing config.SmoothingConfig
	Dirty     bool // Smoothing changed and must be pushed to agents and saved

	Selected    esync.NetworkId
	HasSelected bool

	ShowHelp bool
	Status   string // Connection line shown in the HUD
}

var Viewer = donburi.NewComponentType[ViewerData]()
