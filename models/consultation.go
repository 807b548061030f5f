package models

import "time"

// Consultation statuses.
const (
	ConsultationPlanned    = "planned"
	ConsultationInProgress = "in_progress"
	ConsultationCompleted  = "completed"
	ConsultationCancelled  = "cancelled"
)

// Consultation is the rich session record for a teleconsultation. It may be
// created directly or materialized from a RendezVous when the session is first
// entered. For payment it is authoritative over the linked RendezVous.
type Consultation struct {
	ID             string     `bson:"id" json:"id"`
	Date           time.Time  `bson:"date" json:"date"`
	Status         string     `bson:"status" json:"status"`
	MedecinID      string     `bson:"medecin_id" json:"medecinId"`
	PatientID      string     `bson:"patient_id" json:"patientId"`
	Type           string     `bson:"type" json:"type"`
	Duration       int        `bson:"duration" json:"duration"` // minutes
	Price          float64    `bson:"price" json:"price"`
	MedicalNotes   string     `bson:"medical_notes,omitempty" json:"medicalNotes,omitempty"`
	Documents      []string   `bson:"documents,omitempty" json:"documents,omitempty"` // document URLs
	VideoLink      string     `bson:"video_link,omitempty" json:"videoLink,omitempty"`
	PaiementID     string     `bson:"paiement_id,omitempty" json:"paiementId,omitempty"`
	IsPaid         bool       `bson:"is_paid" json:"isPaid"`
	PaymentDate    *time.Time `bson:"payment_date,omitempty" json:"paymentDate,omitempty"`
	PaymentSession string     `bson:"payment_session_id,omitempty" json:"paymentSessionId,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Terminal reports whether the consultation accepts no further transitions.
func (c *Consultation) Terminal() bool {
	return c.Status == ConsultationCancelled || c.Status == ConsultationCompleted
}
