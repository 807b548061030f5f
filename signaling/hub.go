package signaling

import (
	"encoding/json"

	"go.uber.org/zap"
)

// SessionObserver is notified when a participant joins a room. The lifecycle
// controller implements it to move the session to in_progress; the relay
// itself holds no business state and does not know about session status.
type SessionObserver interface {
	OnRoomJoin(roomID, userID string)
}

// Hub is the in-memory room registry. Rooms are keyed purely by the
// caller-supplied roomId; membership lives only in this process and vanishes
// with it. All room state is owned by the single Run goroutine: operations
// are enqueued as closures, so membership mutations and broadcasts never
// interleave mid-operation.
type Hub struct {
	rooms    map[string]map[*Client]bool
	ops      chan func()
	sessions SessionObserver // optional
	logger   *zap.Logger
}

// NewHub creates a relay hub. Call Run in its own goroutine before use.
func NewHub(sessions SessionObserver, logger *zap.Logger) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]bool),
		ops:      make(chan func(), 256),
		sessions: sessions,
		logger:   logger,
	}
}

// Run processes hub operations until the ops channel is closed. It is the
// only goroutine that touches the room registry.
func (h *Hub) Run() {
	for op := range h.ops {
		op()
	}
}

// Join adds a connection to a room and announces it to the other members.
// A connection belongs to at most one room; repeat joins are dropped.
func (h *Hub) Join(c *Client, roomID, userID string) {
	h.ops <- func() {
		if roomID == "" || c.room != "" {
			return
		}
		members, ok := h.rooms[roomID]
		if !ok {
			members = make(map[*Client]bool)
			h.rooms[roomID] = members
		}
		members[c] = true
		c.room = roomID
		c.userID = userID

		h.sendToRoom(roomID, c, &Envelope{Event: EventUserConnected, Room: roomID, UserID: userID})
		h.logger.Debug("relay: user joined room", zap.String("roomId", roomID), zap.String("userId", userID))

		// Store I/O stays off the relay goroutine.
		if h.sessions != nil {
			go h.sessions.OnRoomJoin(roomID, userID)
		}
	}
}

// Relay forwards a negotiation envelope to the other members of its room,
// tagged with the sender's userId. Payloads pass through untouched; envelopes
// for unknown rooms go nowhere.
func (h *Hub) Relay(c *Client, env *Envelope) {
	h.ops <- func() {
		if env.Room == "" {
			return
		}
		h.sendToRoom(env.Room, c, env)
	}
}

// Disconnect removes a connection from its room. This is the only teardown
// signal; the removal and the presence broadcast happen in one hub operation.
func (h *Hub) Disconnect(c *Client) {
	h.ops <- func() {
		roomID := c.room
		if roomID == "" {
			return
		}
		members, ok := h.rooms[roomID]
		if !ok {
			return
		}
		delete(members, c)
		c.room = ""
		if len(members) == 0 {
			delete(h.rooms, roomID)
			return
		}
		h.sendToRoom(roomID, nil, &Envelope{Event: EventUserDisconnected, Room: roomID, UserID: c.userID})
	}
}

// BroadcastToRoom fans an application event out to a room's members,
// excluding the sender's own connections. It implements the chat channel's
// Broadcaster.
func (h *Hub) BroadcastToRoom(roomID, event, senderUserID string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("relay: failed to marshal broadcast payload", zap.String("event", event), zap.Error(err))
		return
	}
	env := &Envelope{Event: event, Room: roomID, UserID: senderUserID, Payload: raw}
	h.ops <- func() {
		for member := range h.rooms[roomID] {
			if member.userID == senderUserID {
				continue
			}
			h.send(member, env)
		}
	}
}

// sendToRoom delivers an envelope to every member of a room except the given
// connection.
func (h *Hub) sendToRoom(roomID string, except *Client, env *Envelope) {
	for member := range h.rooms[roomID] {
		if member == except {
			continue
		}
		h.send(member, env)
	}
}

// send queues an envelope on a member's outbound channel. A member that
// cannot keep up loses the message; the relay never blocks a room on one
// slow connection.
func (h *Hub) send(c *Client, env *Envelope) {
	raw, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("relay: failed to marshal envelope", zap.Error(err))
		return
	}
	select {
	case c.send <- raw:
	default:
		h.logger.Warn("relay: dropping message for slow connection",
			zap.String("roomId", c.room), zap.String("userId", c.userID))
	}
}
