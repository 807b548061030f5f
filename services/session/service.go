package session

import (
	"fmt"

	consultationRepo "telecare/database/repository/consultation"
	rendezvousRepo "telecare/database/repository/rendezvous"
	"telecare/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultSessionService is the production SessionService.
type DefaultSessionService struct {
	RdvRepo   rendezvousRepo.RendezVousRepository
	ConsRepo  consultationRepo.ConsultationRepository
	Reminders ReminderScheduler // optional
	Logger    *zap.Logger
}

// Complete marks the session finished.
//
// Resolution branches, in order: consultation by id; rendez-vous by id,
// following its consultation link when set; bare rendez-vous. A terminal
// entity is rejected rather than silently overwritten, so a second complete
// on the same session is a visible invalidState failure.
func (s *DefaultSessionService) Complete(id string) (*SessionRef, error) {
	ref, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}

	if ref.IsAppointment() {
		rdv := ref.RendezVous
		if rdv.Terminal() {
			return nil, NewInvalidStateError(fmt.Sprintf("rendez-vous %s is already %s", rdv.ID, rdv.Status))
		}
		if err := s.RdvRepo.UpdateSetDocument(rdv.ID, bson.M{"status": models.RendezVousCompleted}); err != nil {
			return nil, err
		}
		rdv.Status = models.RendezVousCompleted
		s.Logger.Info("rendez-vous completed", zap.String("rendezVousId", rdv.ID))
		return ref, nil
	}

	cons := ref.Consultation
	if cons.Terminal() {
		return nil, NewInvalidStateError(fmt.Sprintf("consultation %s is already %s", cons.ID, cons.Status))
	}
	if err := s.ConsRepo.UpdateSetDocument(cons.ID, bson.M{"status": models.ConsultationCompleted}); err != nil {
		return nil, err
	}
	cons.Status = models.ConsultationCompleted
	s.Logger.Info("consultation completed", zap.String("consultationId", cons.ID))
	return ref, nil
}

// Confirm moves a planned rendez-vous to confirmed.
func (s *DefaultSessionService) Confirm(rdvID string) (*models.RendezVous, error) {
	rdv, err := s.RdvRepo.GetByID(rdvID)
	if err != nil {
		return nil, err
	}
	if rdv == nil {
		return nil, NewNotFoundError(fmt.Sprintf("no rendez-vous with id %s", rdvID))
	}
	if rdv.Status != models.RendezVousPlanned {
		return nil, NewInvalidStateError(fmt.Sprintf("rendez-vous %s cannot be confirmed from status %s", rdvID, rdv.Status))
	}
	if err := s.RdvRepo.UpdateSetDocument(rdvID, bson.M{"status": models.RendezVousConfirmed}); err != nil {
		return nil, err
	}
	rdv.Status = models.RendezVousConfirmed

	if s.Reminders != nil && len(rdv.Reminders) > 0 {
		if err := s.Reminders.ScheduleReminders(rdv); err != nil {
			s.Logger.Error("failed to schedule reminders", zap.String("rendezVousId", rdvID), zap.Error(err))
		}
	}
	return rdv, nil
}

// Cancel moves a planned or confirmed rendez-vous to cancelled.
func (s *DefaultSessionService) Cancel(rdvID string) (*models.RendezVous, error) {
	rdv, err := s.RdvRepo.GetByID(rdvID)
	if err != nil {
		return nil, err
	}
	if rdv == nil {
		return nil, NewNotFoundError(fmt.Sprintf("no rendez-vous with id %s", rdvID))
	}
	if rdv.Terminal() {
		return nil, NewInvalidStateError(fmt.Sprintf("rendez-vous %s is already %s", rdvID, rdv.Status))
	}
	if err := s.RdvRepo.UpdateSetDocument(rdvID, bson.M{"status": models.RendezVousCancelled}); err != nil {
		return nil, err
	}
	rdv.Status = models.RendezVousCancelled
	return rdv, nil
}

// OnRoomJoin transitions the session when a participant joins its relay room.
// A planned consultation moves to in_progress; a rendez-vous without a
// consultation record gets one materialized first. The relay itself holds no
// business state and never sees these errors.
//
// No ownership check is performed here: any caller knowing the roomId reaches
// this point. If join authorization is added it belongs at this seam.
func (s *DefaultSessionService) OnRoomJoin(roomID, userID string) {
	ref, err := s.Resolve(roomID)
	if err != nil {
		if !IsNotFound(err) {
			s.Logger.Error("room join: resolve failed", zap.String("roomId", roomID), zap.Error(err))
		}
		return
	}

	if ref.IsAppointment() {
		rdv := ref.RendezVous
		if rdv.Terminal() {
			return
		}
		cons := &models.Consultation{
			ID:        uuid.New().String(),
			Date:      rdv.Date,
			Status:    models.ConsultationInProgress,
			MedecinID: rdv.MedecinID,
			PatientID: rdv.PatientID,
			Type:      rdv.Type,
			Price:     rdv.Price,
		}
		if err := s.ConsRepo.Create(cons); err != nil {
			s.Logger.Error("room join: failed to materialize consultation", zap.String("roomId", roomID), zap.Error(err))
			return
		}
		if err := s.RdvRepo.UpdateSetDocument(rdv.ID, bson.M{"consultation_id": cons.ID}); err != nil {
			s.Logger.Error("room join: failed to link consultation", zap.String("rendezVousId", rdv.ID), zap.Error(err))
		}
		s.Logger.Info("consultation materialized on room join",
			zap.String("rendezVousId", rdv.ID),
			zap.String("consultationId", cons.ID),
			zap.String("userId", userID))
		return
	}

	cons := ref.Consultation
	if cons.Status != models.ConsultationPlanned {
		return
	}
	if err := s.ConsRepo.UpdateSetDocument(cons.ID, bson.M{"status": models.ConsultationInProgress}); err != nil {
		s.Logger.Error("room join: failed to start consultation", zap.String("consultationId", cons.ID), zap.Error(err))
		return
	}
	s.Logger.Info("consultation started", zap.String("consultationId", cons.ID), zap.String("userId", userID))
}
