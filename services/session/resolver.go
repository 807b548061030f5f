package session

import (
	"fmt"

	"telecare/models"
)

// SessionRef is the resolved target of a session identifier. A session may be
// entered via either identifier space (consultation id or rendez-vous id) and
// callers must not need to know which one they hold. When Consultation is nil
// the ref is a bare appointment; when both are set the consultation was
// reached through the rendez-vous that links it and is the source of truth.
type SessionRef struct {
	Consultation *models.Consultation
	RendezVous   *models.RendezVous
}

// IsAppointment reports whether the ref resolved to a rendez-vous with no
// consultation record yet.
func (s *SessionRef) IsAppointment() bool {
	return s.Consultation == nil
}

// Entity returns the JSON-serializable entity the caller should see: the
// consultation when one exists, the rendez-vous otherwise.
func (s *SessionRef) Entity() any {
	if s.Consultation != nil {
		return s.Consultation
	}
	return s.RendezVous
}

// Resolve maps a session identifier to its entity. Lookup order: consultation
// by id, then rendez-vous by id, following the rendez-vous link to its
// consultation when one exists.
func (s *DefaultSessionService) Resolve(id string) (*SessionRef, error) {
	cons, err := s.ConsRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cons != nil {
		return &SessionRef{Consultation: cons}, nil
	}

	rdv, err := s.RdvRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rdv == nil {
		return nil, NewNotFoundError(fmt.Sprintf("no consultation or rendez-vous with id %s", id))
	}

	if rdv.ConsultationID != "" {
		linked, err := s.ConsRepo.GetByID(rdv.ConsultationID)
		if err != nil {
			return nil, err
		}
		if linked != nil {
			return &SessionRef{Consultation: linked, RendezVous: rdv}, nil
		}
		// Dangling link; fall back to the appointment itself.
	}
	return &SessionRef{RendezVous: rdv}, nil
}
