package consultationRepo

import (
	"time"

	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ConsultationRepository defines methods for consultation data access.
type ConsultationRepository interface {
	// GetByID retrieves a consultation by its unique ID. Returns (nil, nil)
	// when no document matches so callers can fall through to the
	// rendez-vous identifier space.
	GetByID(id string) (*models.Consultation, error)
	// GetAll retrieves all consultations.
	GetAll() ([]models.Consultation, error)
	// GetByMedecin retrieves the consultations of a doctor.
	GetByMedecin(medecinID string) ([]models.Consultation, error)
	// GetByPatient retrieves the consultations of a patient.
	GetByPatient(patientID string) ([]models.Consultation, error)
	// Create inserts a new consultation record.
	Create(cons *models.Consultation) error
	// Update modifies an existing consultation record.
	Update(cons *models.Consultation) error
	// UpdateSetDocument applies a partial $set update to a consultation.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// PushDocument appends a document URL to a consultation.
	PushDocument(id, url string) error
	// GetDailyStatsByMedecin aggregates a doctor's consultations per day:
	// count, completed, cancelled, total duration and revenue. A zero from/to
	// leaves that bound open.
	GetDailyStatsByMedecin(medecinID string, from, to time.Time) ([]models.ConsultationDailyStat, error)
	// Delete removes a consultation record by its ID.
	Delete(id string) error
}
