package paiementRepo

import "telecare/models"

// PaiementRepository defines methods for payment record data access.
type PaiementRepository interface {
	// GetByID retrieves a payment by its unique ID. Returns (nil, nil) when
	// no document matches.
	GetByID(id string) (*models.Paiement, error)
	// GetAll retrieves all payments.
	GetAll() ([]models.Paiement, error)
	// GetByConsultation retrieves the payments of a consultation.
	GetByConsultation(consultationID string) ([]models.Paiement, error)
	// Create inserts a new payment record.
	Create(p *models.Paiement) error
	// Update modifies an existing payment record.
	Update(p *models.Paiement) error
	// Delete removes a payment record by its ID.
	Delete(id string) error
}
