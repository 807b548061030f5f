package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"telecare/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask builds the asynq task for one reminder, scheduled at its
// fire time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues rendez-vous reminders on the asynq queue.
// It implements the lifecycle controller's ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// ScheduleReminders enqueues one task per future reminder of the rendez-vous.
func (s *AsynqReminderScheduler) ScheduleReminders(rdv *models.RendezVous) error {
	now := time.Now()
	for _, fireAt := range rdv.Reminders {
		if fireAt.Before(now) {
			continue
		}
		payload := models.ReminderPayload{
			RendezVousID: rdv.ID,
			PatientID:    rdv.PatientID,
			MedecinID:    rdv.MedecinID,
			FireDate:     fireAt.Format(time.RFC3339),
			Title:        "Rappel de rendez-vous",
			Body:         fmt.Sprintf("Votre téléconsultation est prévue le %s.", rdv.Date.Format("02/01/2006 15:04")),
		}
		task, opts, err := NewReminderTask(payload, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder: %w", err)
		}
		s.Logger.Debug("reminder scheduled",
			zap.String("rendezVousId", rdv.ID),
			zap.Time("fireAt", fireAt))
	}
	return nil
}
