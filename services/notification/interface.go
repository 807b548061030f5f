package notification

import (
	"context"

	"telecare/models"

	"go.uber.org/zap"
)

// NotificationService delivers appointment reminders to participants.
// Delivery transports (push, email) live outside this subsystem; the default
// implementation records the reminder and stops there.
type NotificationService interface {
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotificationService logs reminders instead of delivering them.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	s.Logger.Info("reminder due",
		zap.String("rendezVousId", payload.RendezVousID),
		zap.String("patientId", payload.PatientID),
		zap.String("medecinId", payload.MedecinID),
		zap.String("fireDate", payload.FireDate),
		zap.String("title", payload.Title))
	return nil
}
