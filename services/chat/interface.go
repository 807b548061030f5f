package chat

import (
	"telecare/models"
	"telecare/signaling"
)

// EventChatMessage is the relay event new messages are fanned out on.
const EventChatMessage = signaling.EventChatMessage

// Broadcaster fans an event out to the members of a relay room. The signaling
// hub implements it; the chat service never talks to sockets directly.
type Broadcaster interface {
	BroadcastToRoom(roomID, event, senderUserID string, payload any)
}

// ChatService is the durable, ordered, per-session messaging channel layered
// on the signaling relay. The relay has no memory of past messages; the
// persisted history is what a reconnecting client repaints from.
type ChatService interface {
	// Post persists a message with a server-assigned timestamp and
	// broadcasts it to the session's room.
	Post(consultationID, senderID, senderName, text string) (*models.ChatMessage, error)
	// List returns the messages of a session in ascending timestamp order.
	List(consultationID string) ([]models.ChatMessage, error)
	// Delete removes a message. Only the sender, a doctor or an admin may
	// delete.
	Delete(messageID, requesterID, requesterRole string) error
}
