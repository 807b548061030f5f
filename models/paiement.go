package models

import "time"

// Paiement statuses.
const (
	PaiementPending   = "pending"
	PaiementPaid      = "paid"
	PaiementCancelled = "cancelled"
	PaiementRefunded  = "refunded"
)

// Refund records an audited reversal of a paid Paiement. Flipping IsPaid back
// to false on the owning entities is only ever allowed through a refund.
type Refund struct {
	Amount float64   `bson:"amount" json:"amount"`
	Date   time.Time `bson:"date" json:"date"`
	Reason string    `bson:"reason" json:"reason"`
}

// Paiement is the payment record attached to a consultation.
type Paiement struct {
	ID             string    `bson:"id" json:"id"`
	Amount         float64   `bson:"amount" json:"amount"`
	Status         string    `bson:"status" json:"status"`
	Date           time.Time `bson:"date" json:"date"`
	ConsultationID string    `bson:"consultation_id" json:"consultationId"`
	Method         string    `bson:"method" json:"method"` // e.g. "card"
	TransactionID  string    `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Refund         *Refund   `bson:"refund,omitempty" json:"refund,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
