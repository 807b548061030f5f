package chatRepo

import "telecare/models"

// ChatMessageRepository defines methods for chat message data access.
// Messages are append-only; there is no update path.
type ChatMessageRepository interface {
	// Create inserts a new chat message.
	Create(msg *models.ChatMessage) error
	// GetByID retrieves a message by its unique ID. Returns (nil, nil) when
	// no document matches.
	GetByID(id string) (*models.ChatMessage, error)
	// GetByConsultation retrieves the messages of a session in ascending
	// timestamp order.
	GetByConsultation(consultationID string) ([]models.ChatMessage, error)
	// Delete removes a message by its ID.
	Delete(id string) error
}
