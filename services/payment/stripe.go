package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeCheckoutProvider implements CheckoutProvider on Stripe Checkout
// Sessions. The global stripe.Key is set from config at startup.
type StripeCheckoutProvider struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// NewStripeCheckoutProvider creates a Stripe-backed CheckoutProvider.
func NewStripeCheckoutProvider(currency, successURL, cancelURL string) *StripeCheckoutProvider {
	return &StripeCheckoutProvider{
		Currency:   currency,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

// CreateCheckoutSession opens a one-off card checkout for the given amount.
func (p *StripeCheckoutProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(params.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Téléconsultation"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		ClientReferenceID: stripe.String(params.SessionID),
	}
	if params.PayerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.PayerEmail)
	}
	sessionParams.Context = ctx

	cs, err := checkoutsession.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}
	return &CheckoutSession{
		ID:   cs.ID,
		URL:  cs.URL,
		Paid: cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}

// GetCheckoutSession retrieves a checkout session by its external id.
func (p *StripeCheckoutProvider) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := checkoutsession.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to retrieve checkout session %s: %w", id, err)
	}
	return &CheckoutSession{
		ID:   cs.ID,
		URL:  cs.URL,
		Paid: cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}
