package protocol

import (
	"github.com/automoto/netsmooth/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetAgent uint = 10
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	// No interpolation: the receiver smooths snapshots itself
	if err := esync.RegisterComponent(
		SyncIDNetAgent,
		netcomponents.NetAgentData{},
		netcomponents.NetAgent,
	); err != nil {
		return err
	}

	return nil
}
