package rendezvousRepo

import (
	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RendezVousRepository defines methods for rendez-vous data access.
type RendezVousRepository interface {
	// GetByID retrieves a rendez-vous by its unique ID. Returns (nil, nil)
	// when no document matches so callers can fall through to other
	// identifier spaces.
	GetByID(id string) (*models.RendezVous, error)
	// GetAll retrieves all rendez-vous.
	GetAll() ([]models.RendezVous, error)
	// GetByMedecin retrieves the rendez-vous of a doctor.
	GetByMedecin(medecinID string) ([]models.RendezVous, error)
	// GetByPatient retrieves the rendez-vous of a patient.
	GetByPatient(patientID string) ([]models.RendezVous, error)
	// GetByConsultation retrieves the rendez-vous linked to a consultation,
	// or (nil, nil) when none is.
	GetByConsultation(consultationID string) (*models.RendezVous, error)
	// Create inserts a new rendez-vous record.
	Create(rdv *models.RendezVous) error
	// Update modifies an existing rendez-vous record.
	Update(rdv *models.RendezVous) error
	// UpdateSetDocument applies a partial $set update to a rendez-vous.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a rendez-vous record by its ID.
	Delete(id string) error
}
