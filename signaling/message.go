package signaling

import "encoding/json"

// Relay events. Negotiation payloads (offer/answer/ice-candidate) are opaque:
// the relay forwards them verbatim and never inspects their contents.
const (
	EventJoinRoom         = "join-room"
	EventUserConnected    = "user-connected"
	EventUserDisconnected = "user-disconnected"
	EventOffer            = "offer"
	EventAnswer           = "answer"
	EventICECandidate     = "ice-candidate"
	EventChatMessage      = "chat-message"
)

// Envelope is the wire format of every relay message, in both directions.
// Outbound envelopes carry the sender's userId so peers can attribute them.
type Envelope struct {
	Event   string          `json:"event"`
	Room    string          `json:"room,omitempty"`
	UserID  string          `json:"userId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
