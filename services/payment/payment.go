package payment

import (
	"context"
	"fmt"
	"time"

	consultationRepo "telecare/database/repository/consultation"
	paiementRepo "telecare/database/repository/paiement"
	rendezvousRepo "telecare/database/repository/rendezvous"
	userRepo "telecare/database/repository/user"
	"telecare/models"
	"telecare/services/session"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// PlaceholderPayerEmail is used when neither the request nor the patient
// record carries an email address.
const PlaceholderPayerEmail = "patient@telecare.local"

// DefaultPaymentService is the production PaymentService.
type DefaultPaymentService struct {
	Sessions     session.SessionService
	RdvRepo      rendezvousRepo.RendezVousRepository
	ConsRepo     consultationRepo.ConsultationRepository
	PaiementRepo paiementRepo.PaiementRepository
	UserRepo     userRepo.UserRepository
	Checkout     CheckoutProvider
	DefaultPrice float64
	Logger       *zap.Logger
}

// Initiate creates an external checkout session for a completed, unpaid session.
func (s *DefaultPaymentService) Initiate(ctx context.Context, sessionID, payerEmail string) (*CheckoutIntent, error) {
	ref, err := s.Sessions.Resolve(sessionID)
	if err != nil {
		return nil, err
	}

	status, paid := entityPaymentState(ref)
	if !isCompleted(status) {
		return nil, session.NewInvalidStateError(fmt.Sprintf("session %s is %s, only completed sessions are payable", sessionID, status))
	}
	if paid {
		return nil, NewAlreadyPaidError(fmt.Sprintf("session %s is already paid", sessionID))
	}

	amount := entityPrice(ref)
	if amount <= 0 {
		amount = s.DefaultPrice
	}

	email := s.resolvePayerEmail(payerEmail, ref)

	cs, err := s.Checkout.CreateCheckoutSession(ctx, CheckoutParams{
		Amount:     amount,
		PayerEmail: email,
		SessionID:  sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if ref.Consultation != nil {
		p := &models.Paiement{
			ID:             uuid.New().String(),
			Amount:         amount,
			Status:         models.PaiementPending,
			Date:           time.Now(),
			ConsultationID: ref.Consultation.ID,
			Method:         "card",
		}
		if err := s.PaiementRepo.Create(p); err != nil {
			return nil, fmt.Errorf("failed to record pending payment: %w", err)
		}
		if err := s.ConsRepo.UpdateSetDocument(ref.Consultation.ID, bson.M{"paiement_id": p.ID}); err != nil {
			s.Logger.Error("failed to link payment to consultation",
				zap.String("consultationId", ref.Consultation.ID), zap.Error(err))
		}
	}

	s.Logger.Info("checkout session created",
		zap.String("sessionId", sessionID),
		zap.String("externalSessionId", cs.ID),
		zap.Float64("amount", amount))

	return &CheckoutIntent{RedirectURL: cs.URL, ExternalSessionID: cs.ID}, nil
}

// Confirm verifies the external session and applies the result to both
// entities of the session duality. The consultation is the source of truth;
// the rendez-vous shadow fields are a write-through cache. Every status check
// re-reads the store, which is what makes a repeated confirm safe.
func (s *DefaultPaymentService) Confirm(ctx context.Context, sessionID, externalSessionID string) (*session.SessionRef, error) {
	ref, err := s.Sessions.Resolve(sessionID)
	if err != nil {
		return nil, err
	}

	if _, paid := entityPaymentState(ref); paid {
		// Webhook and redirect can race; the second confirm is a no-op.
		return ref, nil
	}

	cs, err := s.Checkout.GetCheckoutSession(ctx, externalSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", externalSessionID, err)
	}
	if !cs.Paid {
		return nil, NewPaymentNotCompletedError(fmt.Sprintf("checkout session %s is not paid", externalSessionID))
	}

	now := time.Now()
	update := bson.M{
		"is_paid":            true,
		"payment_date":       now,
		"payment_session_id": externalSessionID,
	}

	if ref.Consultation != nil {
		if err := s.ConsRepo.UpdateSetDocument(ref.Consultation.ID, update); err != nil {
			return nil, err
		}
		ref.Consultation.IsPaid = true
		ref.Consultation.PaymentDate = &now
		ref.Consultation.PaymentSession = externalSessionID

		rdv := ref.RendezVous
		if rdv == nil {
			// Resolved by consultation id; the linking rendez-vous, if
			// any, still needs its shadow fields kept consistent.
			rdv, err = s.RdvRepo.GetByConsultation(ref.Consultation.ID)
			if err != nil {
				return nil, err
			}
		}
		if rdv != nil {
			if err := s.RdvRepo.UpdateSetDocument(rdv.ID, copyUpdate(update)); err != nil {
				return nil, err
			}
			rdv.IsPaid = true
			rdv.PaymentDate = &now
			rdv.PaymentSession = externalSessionID
		}

		s.settlePaiement(ref.Consultation.ID, externalSessionID, now)
	} else {
		if err := s.RdvRepo.UpdateSetDocument(ref.RendezVous.ID, update); err != nil {
			return nil, err
		}
		ref.RendezVous.IsPaid = true
		ref.RendezVous.PaymentDate = &now
		ref.RendezVous.PaymentSession = externalSessionID
	}

	s.Logger.Info("payment confirmed",
		zap.String("sessionId", sessionID),
		zap.String("externalSessionId", externalSessionID))
	return ref, nil
}

// Refund reverses a paid payment record.
func (s *DefaultPaymentService) Refund(paiementID string, amount float64, reason string) (*models.Paiement, error) {
	p, err := s.PaiementRepo.GetByID(paiementID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, session.NewNotFoundError(fmt.Sprintf("no payment with id %s", paiementID))
	}
	if p.Status != models.PaiementPaid {
		return nil, session.NewInvalidStateError(fmt.Sprintf("payment %s is %s, only paid payments are refundable", paiementID, p.Status))
	}
	if amount <= 0 || amount > p.Amount {
		amount = p.Amount
	}

	p.Status = models.PaiementRefunded
	p.Refund = &models.Refund{Amount: amount, Date: time.Now(), Reason: reason}
	if err := s.PaiementRepo.Update(p); err != nil {
		return nil, err
	}

	clear := bson.M{"is_paid": false}
	if err := s.ConsRepo.UpdateSetDocument(p.ConsultationID, copyUpdate(clear)); err != nil {
		s.Logger.Error("refund: failed to clear consultation paid flag",
			zap.String("consultationId", p.ConsultationID), zap.Error(err))
	}
	rdv, err := s.RdvRepo.GetByConsultation(p.ConsultationID)
	if err != nil {
		s.Logger.Error("refund: failed to load rendez-vous for consultation",
			zap.String("consultationId", p.ConsultationID), zap.Error(err))
	} else if rdv != nil {
		if err := s.RdvRepo.UpdateSetDocument(rdv.ID, copyUpdate(clear)); err != nil {
			s.Logger.Error("refund: failed to clear rendez-vous paid flag",
				zap.String("rendezVousId", rdv.ID), zap.Error(err))
		}
	}

	s.Logger.Info("payment refunded",
		zap.String("paiementId", paiementID),
		zap.Float64("amount", amount),
		zap.String("reason", reason))
	return p, nil
}

// settlePaiement marks the pending payment record of a consultation paid.
// Best effort: the entity flags are authoritative.
func (s *DefaultPaymentService) settlePaiement(consultationID, transactionID string, when time.Time) {
	paiements, err := s.PaiementRepo.GetByConsultation(consultationID)
	if err != nil {
		s.Logger.Error("failed to load payments for consultation",
			zap.String("consultationId", consultationID), zap.Error(err))
		return
	}
	for i := range paiements {
		p := &paiements[i]
		if p.Status != models.PaiementPending {
			continue
		}
		p.Status = models.PaiementPaid
		p.TransactionID = transactionID
		p.Date = when
		if err := s.PaiementRepo.Update(p); err != nil {
			s.Logger.Error("failed to settle payment record",
				zap.String("paiementId", p.ID), zap.Error(err))
		}
	}
}

func (s *DefaultPaymentService) resolvePayerEmail(requested string, ref *session.SessionRef) string {
	if requested != "" {
		return requested
	}
	patientID := ""
	if ref.Consultation != nil {
		patientID = ref.Consultation.PatientID
	} else if ref.RendezVous != nil {
		patientID = ref.RendezVous.PatientID
	}
	if patientID != "" {
		if u, err := s.UserRepo.GetByID(patientID); err == nil && u != nil && u.Email != "" {
			return u.Email
		}
	}
	return PlaceholderPayerEmail
}

func entityPaymentState(ref *session.SessionRef) (status string, paid bool) {
	if ref.Consultation != nil {
		return ref.Consultation.Status, ref.Consultation.IsPaid
	}
	return ref.RendezVous.Status, ref.RendezVous.IsPaid
}

func entityPrice(ref *session.SessionRef) float64 {
	if ref.Consultation != nil {
		return ref.Consultation.Price
	}
	return ref.RendezVous.Price
}

func isCompleted(status string) bool {
	return status == models.ConsultationCompleted || status == models.RendezVousCompleted
}

// copyUpdate clones an update document so repository calls never share one.
func copyUpdate(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
