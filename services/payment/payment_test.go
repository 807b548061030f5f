package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"telecare/models"
	"telecare/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// In-memory repositories. Set updates only touch the fields the reconciler
// writes.

type memRdvRepo struct {
	items map[string]*models.RendezVous
}

func (r *memRdvRepo) GetByID(id string) (*models.RendezVous, error) {
	rdv, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *rdv
	return &cp, nil
}

func (r *memRdvRepo) GetAll() ([]models.RendezVous, error)             { return nil, nil }
func (r *memRdvRepo) GetByMedecin(string) ([]models.RendezVous, error) { return nil, nil }
func (r *memRdvRepo) GetByPatient(string) ([]models.RendezVous, error) { return nil, nil }

func (r *memRdvRepo) GetByConsultation(consultationID string) (*models.RendezVous, error) {
	for _, rdv := range r.items {
		if rdv.ConsultationID == consultationID {
			cp := *rdv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRdvRepo) Create(rdv *models.RendezVous) error {
	cp := *rdv
	r.items[rdv.ID] = &cp
	return nil
}

func (r *memRdvRepo) Update(rdv *models.RendezVous) error { return r.Create(rdv) }

func (r *memRdvRepo) UpdateSetDocument(id string, doc bson.M) error {
	rdv, ok := r.items[id]
	if !ok {
		return nil
	}
	for k, v := range doc {
		switch k {
		case "status":
			rdv.Status = v.(string)
		case "consultation_id":
			rdv.ConsultationID = v.(string)
		case "is_paid":
			rdv.IsPaid = v.(bool)
		case "payment_date":
			t := v.(time.Time)
			rdv.PaymentDate = &t
		case "payment_session_id":
			rdv.PaymentSession = v.(string)
		}
	}
	return nil
}

func (r *memRdvRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memConsRepo struct {
	items map[string]*models.Consultation
}

func (r *memConsRepo) GetByID(id string) (*models.Consultation, error) {
	cons, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *cons
	return &cp, nil
}

func (r *memConsRepo) GetAll() ([]models.Consultation, error)             { return nil, nil }
func (r *memConsRepo) GetByMedecin(string) ([]models.Consultation, error) { return nil, nil }
func (r *memConsRepo) GetByPatient(string) ([]models.Consultation, error) { return nil, nil }

func (r *memConsRepo) Create(cons *models.Consultation) error {
	cp := *cons
	r.items[cons.ID] = &cp
	return nil
}

func (r *memConsRepo) Update(cons *models.Consultation) error { return r.Create(cons) }

func (r *memConsRepo) UpdateSetDocument(id string, doc bson.M) error {
	cons, ok := r.items[id]
	if !ok {
		return nil
	}
	for k, v := range doc {
		switch k {
		case "status":
			cons.Status = v.(string)
		case "paiement_id":
			cons.PaiementID = v.(string)
		case "is_paid":
			cons.IsPaid = v.(bool)
		case "payment_date":
			t := v.(time.Time)
			cons.PaymentDate = &t
		case "payment_session_id":
			cons.PaymentSession = v.(string)
		}
	}
	return nil
}

func (r *memConsRepo) GetDailyStatsByMedecin(string, time.Time, time.Time) ([]models.ConsultationDailyStat, error) {
	return nil, nil
}

func (r *memConsRepo) PushDocument(id, url string) error {
	if cons, ok := r.items[id]; ok {
		cons.Documents = append(cons.Documents, url)
	}
	return nil
}

func (r *memConsRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memPaiementRepo struct {
	items map[string]*models.Paiement
}

func (r *memPaiementRepo) GetByID(id string) (*models.Paiement, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaiementRepo) GetAll() ([]models.Paiement, error) { return nil, nil }

func (r *memPaiementRepo) GetByConsultation(consultationID string) ([]models.Paiement, error) {
	var out []models.Paiement
	for _, p := range r.items {
		if p.ConsultationID == consultationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPaiementRepo) Create(p *models.Paiement) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memPaiementRepo) Update(p *models.Paiement) error { return r.Create(p) }

func (r *memPaiementRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memUserRepo struct {
	items map[string]*models.User
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (r *memUserRepo) GetAll() ([]models.User, error)          { return nil, nil }
func (r *memUserRepo) Create(u *models.User) error             { return nil }
func (r *memUserRepo) Update(u *models.User) error             { return nil }
func (r *memUserRepo) Delete(string) error                     { return nil }

// fakeCheckout stands in for Stripe. Created sessions share one id; the paid
// flag drives confirm outcomes.
type fakeCheckout struct {
	created []CheckoutParams
	paid    bool
	gets    int
}

func (f *fakeCheckout) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	f.created = append(f.created, params)
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.test/cs_test_1"}, nil
}

func (f *fakeCheckout) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	f.gets++
	return &CheckoutSession{ID: id, Paid: f.paid}, nil
}

type fixture struct {
	svc      *DefaultPaymentService
	rdvRepo  *memRdvRepo
	consRepo *memConsRepo
	payRepo  *memPaiementRepo
	checkout *fakeCheckout
}

func newFixture(rdvs []*models.RendezVous, conss []*models.Consultation, paiements []*models.Paiement) *fixture {
	rdvRepo := &memRdvRepo{items: make(map[string]*models.RendezVous)}
	for _, rdv := range rdvs {
		rdvRepo.items[rdv.ID] = rdv
	}
	consRepo := &memConsRepo{items: make(map[string]*models.Consultation)}
	for _, cons := range conss {
		consRepo.items[cons.ID] = cons
	}
	payRepo := &memPaiementRepo{items: make(map[string]*models.Paiement)}
	for _, p := range paiements {
		payRepo.items[p.ID] = p
	}
	userRepo := &memUserRepo{items: map[string]*models.User{
		"pat-1": {ID: "pat-1", Email: "alice@example.com", Role: models.RolePatient},
	}}

	sessions := &session.DefaultSessionService{
		RdvRepo:  rdvRepo,
		ConsRepo: consRepo,
		Logger:   zap.NewNop(),
	}
	checkout := &fakeCheckout{paid: true}
	svc := &DefaultPaymentService{
		Sessions:     sessions,
		RdvRepo:      rdvRepo,
		ConsRepo:     consRepo,
		PaiementRepo: payRepo,
		UserRepo:     userRepo,
		Checkout:     checkout,
		DefaultPrice: 50,
		Logger:       zap.NewNop(),
	}
	return &fixture{svc: svc, rdvRepo: rdvRepo, consRepo: consRepo, payRepo: payRepo, checkout: checkout}
}

func TestInitiateRejectsNonCompletedSession(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationInProgress, PatientID: "pat-1"},
	}, nil)

	_, err := f.svc.Initiate(context.Background(), "cons-1", "")
	assert.True(t, session.IsInvalidState(err))
}

func TestInitiateRejectsAlreadyPaid(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1", IsPaid: true},
	}, nil)

	_, err := f.svc.Initiate(context.Background(), "cons-1", "")
	assert.True(t, IsAlreadyPaid(err))
}

func TestInitiateCreatesCheckoutAndPendingPaiement(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1", Price: 75},
	}, nil)

	intent, err := f.svc.Initiate(context.Background(), "cons-1", "")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/cs_test_1", intent.RedirectURL)
	assert.Equal(t, "cs_test_1", intent.ExternalSessionID)

	require.Len(t, f.checkout.created, 1)
	assert.Equal(t, 75.0, f.checkout.created[0].Amount)
	assert.Equal(t, "alice@example.com", f.checkout.created[0].PayerEmail)
	assert.Equal(t, "cons-1", f.checkout.created[0].SessionID)

	paiements, _ := f.payRepo.GetByConsultation("cons-1")
	require.Len(t, paiements, 1)
	assert.Equal(t, models.PaiementPending, paiements[0].Status)
	assert.Equal(t, 75.0, paiements[0].Amount)
}

func TestInitiateFallsBackToDefaultPrice(t *testing.T) {
	f := newFixture([]*models.RendezVous{
		{ID: "rdv-1", Status: models.RendezVousCompleted, PatientID: "pat-1"},
	}, nil, nil)

	_, err := f.svc.Initiate(context.Background(), "rdv-1", "")
	require.NoError(t, err)
	require.Len(t, f.checkout.created, 1)
	assert.Equal(t, 50.0, f.checkout.created[0].Amount)
}

func TestInitiateUsesRequestedPayerEmail(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1", Price: 75},
	}, nil)

	_, err := f.svc.Initiate(context.Background(), "cons-1", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", f.checkout.created[0].PayerEmail)
}

func TestConfirmMarksBothEntities(t *testing.T) {
	f := newFixture([]*models.RendezVous{
		{ID: "rdv-1", Status: models.RendezVousCompleted, ConsultationID: "cons-1"},
	}, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1", Price: 75},
	}, []*models.Paiement{
		{ID: "pay-1", Status: models.PaiementPending, ConsultationID: "cons-1", Amount: 75},
	})

	// Confirm via the rendez-vous identifier space.
	ref, err := f.svc.Confirm(context.Background(), "rdv-1", "cs_test_1")
	require.NoError(t, err)
	assert.True(t, ref.Consultation.IsPaid)

	assert.True(t, f.consRepo.items["cons-1"].IsPaid)
	assert.Equal(t, "cs_test_1", f.consRepo.items["cons-1"].PaymentSession)
	assert.True(t, f.rdvRepo.items["rdv-1"].IsPaid)
	assert.Equal(t, "cs_test_1", f.rdvRepo.items["rdv-1"].PaymentSession)

	assert.Equal(t, models.PaiementPaid, f.payRepo.items["pay-1"].Status)
	assert.Equal(t, "cs_test_1", f.payRepo.items["pay-1"].TransactionID)
}

func TestConfirmByConsultationIDStillUpdatesLinkedRendezVous(t *testing.T) {
	f := newFixture([]*models.RendezVous{
		{ID: "rdv-1", Status: models.RendezVousCompleted, ConsultationID: "cons-1"},
	}, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1"},
	}, nil)

	_, err := f.svc.Confirm(context.Background(), "cons-1", "cs_test_1")
	require.NoError(t, err)
	assert.True(t, f.rdvRepo.items["rdv-1"].IsPaid)
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1"},
	}, nil)

	_, err := f.svc.Confirm(context.Background(), "cons-1", "cs_test_1")
	require.NoError(t, err)
	_, err = f.svc.Confirm(context.Background(), "cons-1", "cs_test_1")
	require.NoError(t, err)

	// The second confirm short-circuits before touching the processor.
	assert.Equal(t, 1, f.checkout.gets)
}

func TestConfirmRejectsUnpaidCheckout(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, PatientID: "pat-1"},
	}, nil)
	f.checkout.paid = false

	_, err := f.svc.Confirm(context.Background(), "cons-1", "cs_test_1")
	assert.True(t, IsPaymentNotCompleted(err))
	assert.False(t, f.consRepo.items["cons-1"].IsPaid)
}

func TestRefundClearsPaidFlags(t *testing.T) {
	now := time.Now()
	f := newFixture([]*models.RendezVous{
		{ID: "rdv-1", Status: models.RendezVousCompleted, ConsultationID: "cons-1", IsPaid: true, PaymentDate: &now},
	}, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, IsPaid: true, PaymentDate: &now},
	}, []*models.Paiement{
		{ID: "pay-1", Status: models.PaiementPaid, ConsultationID: "cons-1", Amount: 75},
	})

	p, err := f.svc.Refund("pay-1", 75, "patient request")
	require.NoError(t, err)
	assert.Equal(t, models.PaiementRefunded, p.Status)
	require.NotNil(t, p.Refund)
	assert.Equal(t, 75.0, p.Refund.Amount)
	assert.Equal(t, "patient request", p.Refund.Reason)

	assert.False(t, f.consRepo.items["cons-1"].IsPaid)
	assert.False(t, f.rdvRepo.items["rdv-1"].IsPaid)
}

// failingRdvRepo breaks the consultation -> rendez-vous lookup.
type failingRdvRepo struct {
	*memRdvRepo
}

func (r *failingRdvRepo) GetByConsultation(string) (*models.RendezVous, error) {
	return nil, errors.New("connection reset")
}

func TestRefundLogsRendezVousLookupFailure(t *testing.T) {
	f := newFixture(nil, []*models.Consultation{
		{ID: "cons-1", Status: models.ConsultationCompleted, IsPaid: true},
	}, []*models.Paiement{
		{ID: "pay-1", Status: models.PaiementPaid, ConsultationID: "cons-1", Amount: 75},
	})
	core, logs := observer.New(zap.ErrorLevel)
	f.svc.Logger = zap.New(core)
	f.svc.RdvRepo = &failingRdvRepo{f.rdvRepo}

	// The refund itself is unaffected, but the half-cleared state is visible.
	p, err := f.svc.Refund("pay-1", 75, "patient request")
	require.NoError(t, err)
	assert.Equal(t, models.PaiementRefunded, p.Status)
	assert.False(t, f.consRepo.items["cons-1"].IsPaid)

	entries := logs.FilterMessage("refund: failed to load rendez-vous for consultation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cons-1", entries[0].ContextMap()["consultationId"])
}

func TestRefundCapsAmountAtOriginal(t *testing.T) {
	f := newFixture(nil, nil, []*models.Paiement{
		{ID: "pay-1", Status: models.PaiementPaid, ConsultationID: "cons-1", Amount: 75},
	})

	p, err := f.svc.Refund("pay-1", 200, "")
	require.NoError(t, err)
	assert.Equal(t, 75.0, p.Refund.Amount)
}

func TestRefundRejectsNonPaidPaiement(t *testing.T) {
	f := newFixture(nil, nil, []*models.Paiement{
		{ID: "pay-1", Status: models.PaiementPending, ConsultationID: "cons-1", Amount: 75},
	})

	_, err := f.svc.Refund("pay-1", 75, "")
	assert.True(t, session.IsInvalidState(err))
}

func TestRefundUnknownPaiementIsNotFound(t *testing.T) {
	f := newFixture(nil, nil, nil)

	_, err := f.svc.Refund("missing", 10, "")
	assert.True(t, session.IsNotFound(err))
}
