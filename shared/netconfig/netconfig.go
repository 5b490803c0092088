// Package netconfig defines lightweight values shared between viewer and
// server. It must have zero dependencies on ebiten or any graphics library so
// the dedicated server binary stays headless.
package netconfig

// ProtocolVersion is exchanged in ViewerHello. The server warns about
// viewers that send a different one.
const ProtocolVersion = "netsmooth/1"

// DefaultPort is the websocket port the server listens on.
const DefaultPort uint = 7373
