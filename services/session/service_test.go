package session

import (
	"testing"
	"time"

	"telecare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// fakeRdvRepo is an in-memory RendezVousRepository.
type fakeRdvRepo struct {
	items map[string]*models.RendezVous
}

func newFakeRdvRepo(items ...*models.RendezVous) *fakeRdvRepo {
	r := &fakeRdvRepo{items: make(map[string]*models.RendezVous)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeRdvRepo) GetByID(id string) (*models.RendezVous, error) {
	rdv, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *rdv
	return &cp, nil
}

func (r *fakeRdvRepo) GetAll() ([]models.RendezVous, error) {
	var out []models.RendezVous
	for _, rdv := range r.items {
		out = append(out, *rdv)
	}
	return out, nil
}

func (r *fakeRdvRepo) GetByMedecin(medecinID string) ([]models.RendezVous, error) {
	var out []models.RendezVous
	for _, rdv := range r.items {
		if rdv.MedecinID == medecinID {
			out = append(out, *rdv)
		}
	}
	return out, nil
}

func (r *fakeRdvRepo) GetByPatient(patientID string) ([]models.RendezVous, error) {
	var out []models.RendezVous
	for _, rdv := range r.items {
		if rdv.PatientID == patientID {
			out = append(out, *rdv)
		}
	}
	return out, nil
}

func (r *fakeRdvRepo) GetByConsultation(consultationID string) (*models.RendezVous, error) {
	for _, rdv := range r.items {
		if rdv.ConsultationID == consultationID {
			cp := *rdv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRdvRepo) Create(rdv *models.RendezVous) error {
	cp := *rdv
	r.items[rdv.ID] = &cp
	return nil
}

func (r *fakeRdvRepo) Update(rdv *models.RendezVous) error {
	cp := *rdv
	r.items[rdv.ID] = &cp
	return nil
}

func (r *fakeRdvRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	rdv, ok := r.items[id]
	if !ok {
		return nil
	}
	applyRdvSet(rdv, updateDoc)
	return nil
}

func (r *fakeRdvRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func applyRdvSet(rdv *models.RendezVous, doc bson.M) {
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
}

// fakeConsRepo is an in-memory ConsultationRepository.
type fakeConsRepo struct {
	items map[string]*models.Consultation
}

func newFakeConsRepo(items ...*models.Consultation) *fakeConsRepo {
	r := &fakeConsRepo{items: make(map[string]*models.Consultation)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeConsRepo) GetByID(id string) (*models.Consultation, error) {
	cons, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *cons
	return &cp, nil
}

func (r *fakeConsRepo) GetAll() ([]models.Consultation, error) {
	var out []models.Consultation
	for _, cons := range r.items {
		out = append(out, *cons)
	}
	return out, nil
}

func (r *fakeConsRepo) GetByMedecin(medecinID string) ([]models.Consultation, error) {
	var out []models.Consultation
	for _, cons := range r.items {
		if cons.MedecinID == medecinID {
			out = append(out, *cons)
		}
	}
	return out, nil
}

func (r *fakeConsRepo) GetByPatient(patientID string) ([]models.Consultation, error) {
	var out []models.Consultation
	for _, cons := range r.items {
		if cons.PatientID == patientID {
			out = append(out, *cons)
		}
	}
	return out, nil
}

func (r *fakeConsRepo) Create(cons *models.Consultation) error {
	cp := *cons
	r.items[cons.ID] = &cp
	return nil
}

func (r *fakeConsRepo) Update(cons *models.Consultation) error {
	cp := *cons
	r.items[cons.ID] = &cp
	return nil
}

func (r *fakeConsRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	cons, ok := r.items[id]
	if !ok {
		return nil
	}
	for k, v := range updateDoc {
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

func (r *fakeConsRepo) GetDailyStatsByMedecin(string, time.Time, time.Time) ([]models.ConsultationDailyStat, error) {
	return nil, nil
}

func (r *fakeConsRepo) PushDocument(id, url string) error {
	cons, ok := r.items[id]
	if !ok {
		return nil
	}
	cons.Documents = append(cons.Documents, url)
	return nil
}

func (r *fakeConsRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// recordingScheduler records the rendez-vous it was asked to schedule.
type recordingScheduler struct {
	scheduled []string
}

func (s *recordingScheduler) ScheduleReminders(rdv *models.RendezVous) error {
	s.scheduled = append(s.scheduled, rdv.ID)
	return nil
}

func newService(rdvRepo *fakeRdvRepo, consRepo *fakeConsRepo) *DefaultSessionService {
	return &DefaultSessionService{
		RdvRepo:  rdvRepo,
		ConsRepo: consRepo,
		Logger:   zap.NewNop(),
	}
}

func TestResolvePrefersConsultation(t *testing.T) {
	cons := &models.Consultation{ID: "shared-id", Status: models.ConsultationPlanned}
	rdv := &models.RendezVous{ID: "shared-id", Status: models.RendezVousPlanned}
	svc := newService(newFakeRdvRepo(rdv), newFakeConsRepo(cons))

	ref, err := svc.Resolve("shared-id")
	require.NoError(t, err)
	require.NotNil(t, ref.Consultation)
	assert.Nil(t, ref.RendezVous)
}

func TestResolveFollowsRendezVousLink(t *testing.T) {
	cons := &models.Consultation{ID: "cons-1", Status: models.ConsultationInProgress}
	rdv := &models.RendezVous{ID: "rdv-1", Status: models.RendezVousConfirmed, ConsultationID: "cons-1"}
	svc := newService(newFakeRdvRepo(rdv), newFakeConsRepo(cons))

	ref, err := svc.Resolve("rdv-1")
	require.NoError(t, err)
	require.NotNil(t, ref.Consultation)
	require.NotNil(t, ref.RendezVous)
	assert.Equal(t, "cons-1", ref.Consultation.ID)
}

func TestResolveDanglingLinkFallsBackToRendezVous(t *testing.T) {
	rdv := &models.RendezVous{ID: "rdv-1", Status: models.RendezVousConfirmed, ConsultationID: "gone"}
	svc := newService(newFakeRdvRepo(rdv), newFakeConsRepo())

	ref, err := svc.Resolve("rdv-1")
	require.NoError(t, err)
	assert.True(t, ref.IsAppointment())
}

func TestResolveUnknownID(t *testing.T) {
	svc := newService(newFakeRdvRepo(), newFakeConsRepo())

	_, err := svc.Resolve("nope")
	assert.True(t, IsNotFound(err))
}

func TestCompleteBareRendezVous(t *testing.T) {
	rdvRepo := newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousConfirmed})
	svc := newService(rdvRepo, newFakeConsRepo())

	ref, err := svc.Complete("rdv-1")
	require.NoError(t, err)
	assert.Equal(t, models.RendezVousCompleted, ref.RendezVous.Status)
	assert.Equal(t, models.RendezVousCompleted, rdvRepo.items["rdv-1"].Status)
}

func TestCompleteFollowsConsultationLink(t *testing.T) {
	rdvRepo := newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousConfirmed, ConsultationID: "cons-1"})
	consRepo := newFakeConsRepo(&models.Consultation{ID: "cons-1", Status: models.ConsultationInProgress})
	svc := newService(rdvRepo, consRepo)

	_, err := svc.Complete("rdv-1")
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationCompleted, consRepo.items["cons-1"].Status)
	// The rendez-vous status stays; the consultation carries the outcome.
	assert.Equal(t, models.RendezVousConfirmed, rdvRepo.items["rdv-1"].Status)
}

func TestCompleteTwiceIsInvalidState(t *testing.T) {
	svc := newService(newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousConfirmed}), newFakeConsRepo())

	_, err := svc.Complete("rdv-1")
	require.NoError(t, err)
	_, err = svc.Complete("rdv-1")
	assert.True(t, IsInvalidState(err))
}

func TestCompleteUnknownIDIsNotFound(t *testing.T) {
	svc := newService(newFakeRdvRepo(), newFakeConsRepo())

	_, err := svc.Complete("missing")
	assert.True(t, IsNotFound(err))
}

func TestConfirmSchedulesReminders(t *testing.T) {
	sched := &recordingScheduler{}
	rdvRepo := newFakeRdvRepo(&models.RendezVous{
		ID:        "rdv-1",
		Status:    models.RendezVousPlanned,
		Reminders: []time.Time{time.Now().Add(24 * time.Hour)},
	})
	svc := newService(rdvRepo, newFakeConsRepo())
	svc.Reminders = sched

	rdv, err := svc.Confirm("rdv-1")
	require.NoError(t, err)
	assert.Equal(t, models.RendezVousConfirmed, rdv.Status)
	assert.Equal(t, []string{"rdv-1"}, sched.scheduled)
}

func TestConfirmRejectsNonPlanned(t *testing.T) {
	svc := newService(newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousCancelled}), newFakeConsRepo())

	_, err := svc.Confirm("rdv-1")
	assert.True(t, IsInvalidState(err))
}

func TestCancelConfirmedRendezVous(t *testing.T) {
	rdvRepo := newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousConfirmed})
	svc := newService(rdvRepo, newFakeConsRepo())

	rdv, err := svc.Cancel("rdv-1")
	require.NoError(t, err)
	assert.Equal(t, models.RendezVousCancelled, rdv.Status)
}

func TestCancelCompletedIsInvalidState(t *testing.T) {
	svc := newService(newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousCompleted}), newFakeConsRepo())

	_, err := svc.Cancel("rdv-1")
	assert.True(t, IsInvalidState(err))
}

func TestOnRoomJoinMaterializesConsultation(t *testing.T) {
	rdvRepo := newFakeRdvRepo(&models.RendezVous{
		ID:        "rdv-1",
		Status:    models.RendezVousConfirmed,
		MedecinID: "med-1",
		PatientID: "pat-1",
		Price:     60,
	})
	consRepo := newFakeConsRepo()
	svc := newService(rdvRepo, consRepo)

	svc.OnRoomJoin("rdv-1", "pat-1")

	linked := rdvRepo.items["rdv-1"].ConsultationID
	require.NotEmpty(t, linked)
	cons := consRepo.items[linked]
	require.NotNil(t, cons)
	assert.Equal(t, models.ConsultationInProgress, cons.Status)
	assert.Equal(t, "med-1", cons.MedecinID)
	assert.Equal(t, "pat-1", cons.PatientID)
	assert.Equal(t, 60.0, cons.Price)
}

func TestOnRoomJoinStartsPlannedConsultation(t *testing.T) {
	consRepo := newFakeConsRepo(&models.Consultation{ID: "cons-1", Status: models.ConsultationPlanned})
	svc := newService(newFakeRdvRepo(), consRepo)

	svc.OnRoomJoin("cons-1", "pat-1")

	assert.Equal(t, models.ConsultationInProgress, consRepo.items["cons-1"].Status)
}

func TestOnRoomJoinLeavesRunningConsultationAlone(t *testing.T) {
	consRepo := newFakeConsRepo(&models.Consultation{ID: "cons-1", Status: models.ConsultationInProgress})
	svc := newService(newFakeRdvRepo(), consRepo)

	svc.OnRoomJoin("cons-1", "pat-2")

	assert.Equal(t, models.ConsultationInProgress, consRepo.items["cons-1"].Status)
}

func TestOnRoomJoinIgnoresUnknownRoom(t *testing.T) {
	rdvRepo := newFakeRdvRepo()
	svc := newService(rdvRepo, newFakeConsRepo())

	// Arbitrary room ids must not create state.
	svc.OnRoomJoin("random-room", "someone")
	assert.Empty(t, rdvRepo.items)
}

func TestOnRoomJoinIgnoresTerminalRendezVous(t *testing.T) {
	rdvRepo := newFakeRdvRepo(&models.RendezVous{ID: "rdv-1", Status: models.RendezVousCancelled})
	consRepo := newFakeConsRepo()
	svc := newService(rdvRepo, consRepo)

	svc.OnRoomJoin("rdv-1", "pat-1")
	assert.Empty(t, consRepo.items)
}
