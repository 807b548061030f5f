package models

import "time"

// RendezVous statuses. A rendez-vous is terminal once cancelled or completed.
const (
	RendezVousPlanned   = "planned"
	RendezVousConfirmed = "confirmed"
	RendezVousCancelled = "cancelled"
	RendezVousCompleted = "completed"
)

// RendezVous represents a booked appointment slot. It may mature into a full
// Consultation record once the session is entered; until then it carries its
// own payment shadow fields so either identifier space can answer payment
// status. When a linked Consultation exists, the Consultation is the source of
// truth and these fields are a write-through cache.
type RendezVous struct {
	ID             string      `bson:"id" json:"id"`
	Date           time.Time   `bson:"date" json:"date"`
	Status         string      `bson:"status" json:"status"`
	Type           string      `bson:"type" json:"type"` // e.g. "teleconsultation", "suivi"
	MedecinID      string      `bson:"medecin_id" json:"medecinId"`
	PatientID      string      `bson:"patient_id" json:"patientId"`
	Notes          string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Reminders      []time.Time `bson:"reminders,omitempty" json:"reminders,omitempty"`
	ConsultationID string      `bson:"consultation_id,omitempty" json:"consultationId,omitempty"`
	Price          float64     `bson:"price" json:"price"`
	IsPaid         bool        `bson:"is_paid" json:"isPaid"`
	PaymentDate    *time.Time  `bson:"payment_date,omitempty" json:"paymentDate,omitempty"`
	PaymentSession string      `bson:"payment_session_id,omitempty" json:"paymentSessionId,omitempty"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}

// Terminal reports whether the rendez-vous accepts no further transitions.
func (r *RendezVous) Terminal() bool {
	return r.Status == RendezVousCancelled || r.Status == RendezVousCompleted
}
