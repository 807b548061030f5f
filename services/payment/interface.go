package payment

import (
	"context"

	"telecare/models"
	"telecare/services/session"
)

// CheckoutIntent is what the initiating client needs to proceed with an
// external checkout: where to send the payer and which external session to
// confirm afterwards.
type CheckoutIntent struct {
	RedirectURL       string `json:"redirectUrl"`
	ExternalSessionID string `json:"externalSessionId"`
}

// CheckoutSession mirrors the external processor's view of a checkout.
type CheckoutSession struct {
	ID   string
	URL  string
	Paid bool
}

// CheckoutParams describes the checkout session to create.
type CheckoutParams struct {
	Amount     float64
	PayerEmail string
	// SessionID is carried to the processor as the client reference so a
	// checkout can be traced back to its teleconsultation session.
	SessionID string
}

// CheckoutProvider is the external payment processor boundary.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// PaymentService bridges session completion to the external processor and
// reconciles the result across both entities of the session duality.
type PaymentService interface {
	// Initiate creates an external checkout session for a completed, unpaid
	// session.
	Initiate(ctx context.Context, sessionID, payerEmail string) (*CheckoutIntent, error)
	// Confirm verifies the external session is paid and marks the session
	// paid on the consultation and its linked rendez-vous. Confirming an
	// already-paid session is a no-op success so webhook/redirect races are
	// harmless.
	Confirm(ctx context.Context, sessionID, externalSessionID string) (*session.SessionRef, error)
	// Refund reverses a paid payment record and clears the paid flags on
	// the owning entities. This is the only path that ever flips isPaid
	// back to false.
	Refund(paiementID string, amount float64, reason string) (*models.Paiement, error)
}
