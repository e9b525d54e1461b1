// Package protocol defines the wire formats the bridge speaks: OpenTrack pose
// datagrams in, and JSON status messages out over WebSocket.
package protocol

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeStatus carries a StatusPayload; sent on connect and when activation changes
	TypeStatus MessageType = "status"

	// TypeBatch carries a BatchPayload for every non-empty injected batch
	TypeBatch MessageType = "batch"

	// TypePing can be used for application-level heartbeats if needed
	TypePing MessageType = "ping"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// StatusPayload is the payload for TypeStatus
type StatusPayload struct {
	Mode       string `json:"mode"`
	Active     bool   `json:"active"`
	Device     string `json:"device,omitempty"`
	PoseActive bool   `json:"pose_active"`
	Ticks      uint64 `json:"ticks"`
	Events     uint64 `json:"events"`
	LastError  string `json:"last_error,omitempty"`
}

// BatchPayload is the payload for TypeBatch
type BatchPayload struct {
	Tick   uint64      `json:"tick"`
	Events interface{} `json:"events"`
}
