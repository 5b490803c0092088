package messages

// JumpRequest is sent by a viewer to make a simulated agent jump. The server
// answers by bumping the agent's JumpSeq; there is no acknowledgment.
type JumpRequest struct {
	AgentID uint // NetworkId of the agent
}

// ViewerHello is sent by a viewer right after connecting.
type ViewerHello struct {
	Version string
	Name    string
}
