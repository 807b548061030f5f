package chat

import (
	"fmt"
	"time"

	chatRepo "telecare/database/repository/chatmessage"
	userRepo "telecare/database/repository/user"
	"telecare/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultChatService is the production ChatService.
type DefaultChatService struct {
	Repo      chatRepo.ChatMessageRepository
	UserRepo  userRepo.UserRepository
	Broadcast Broadcaster // optional
	Logger    *zap.Logger
}

// Post persists a message and fans it out to the session's room.
func (s *DefaultChatService) Post(consultationID, senderID, senderName, text string) (*models.ChatMessage, error) {
	if consultationID == "" {
		return nil, NewValidationError("consultationId is required")
	}
	if senderID == "" {
		return nil, NewValidationError("senderId is required")
	}
	if text == "" {
		return nil, NewValidationError("text is required")
	}

	if senderName == "" {
		senderName = s.lookupSenderName(senderID)
	}

	msg := &models.ChatMessage{
		ID:             uuid.New().String(),
		ConsultationID: consultationID,
		SenderID:       senderID,
		SenderName:     senderName,
		Text:           text,
		Timestamp:      time.Now(),
	}
	if err := s.Repo.Create(msg); err != nil {
		return nil, err
	}

	if s.Broadcast != nil {
		s.Broadcast.BroadcastToRoom(consultationID, EventChatMessage, senderID, msg)
	}
	return msg, nil
}

// List returns the messages of a session in ascending timestamp order.
func (s *DefaultChatService) List(consultationID string) ([]models.ChatMessage, error) {
	if consultationID == "" {
		return nil, NewValidationError("consultationId is required")
	}
	return s.Repo.GetByConsultation(consultationID)
}

// Delete removes a message after checking the requester may do so.
func (s *DefaultChatService) Delete(messageID, requesterID, requesterRole string) error {
	msg, err := s.Repo.GetByID(messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return NewNotFoundError(fmt.Sprintf("no chat message with id %s", messageID))
	}
	if msg.SenderID != requesterID && requesterRole != models.RoleMedecin && requesterRole != models.RoleAdmin {
		return NewUnauthorizedError("only the sender or an authorized party may delete a message")
	}
	if err := s.Repo.Delete(messageID); err != nil {
		return err
	}
	s.Logger.Info("chat message deleted",
		zap.String("messageId", messageID),
		zap.String("requesterId", requesterID))
	return nil
}

func (s *DefaultChatService) lookupSenderName(senderID string) string {
	if s.UserRepo == nil {
		return "Utilisateur"
	}
	u, err := s.UserRepo.GetByID(senderID)
	if err != nil || u == nil {
		return "Utilisateur"
	}
	return u.DisplayName()
}
