package appointment

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/logger"
	"github.com/lawlink/lawlink-api/pkg/messaging"
	"github.com/lawlink/lawlink-api/pkg/metrics"
)

// Shared across the package's tests; prometheus collectors register once
// per process.
var testMetrics = metrics.NewMetrics("appointment_test")

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	bookErr      error
	updateErr    error
	lastBooked   *model.Appointment
	lastBookedNs []*model.Notification
	lastUpdate   *repository.AppointmentUpdate
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *apt
	return &cp, nil
}

func (f *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range f.appointments {
		if filters.ClientID != uuid.Nil && apt.ClientID != filters.ClientID {
			continue
		}
		if filters.LawyerProfileID != uuid.Nil && apt.LawyerProfileID != filters.LawyerProfileID {
			continue
		}
		if filters.Status != "" && apt.Status != filters.Status {
			continue
		}
		out = append(out, apt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Book(ctx context.Context, apt *model.Appointment, notifs []*model.Notification) error {
	if f.bookErr != nil {
		return f.bookErr
	}
	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusPending
	f.appointments[apt.ID] = apt
	f.lastBooked = apt
	f.lastBookedNs = notifs
	return nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, apt *model.Appointment, upd *repository.AppointmentUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.appointments[apt.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *apt
	f.appointments[apt.ID] = &cp
	f.lastUpdate = upd
	return nil
}

type fakeLawyerRepo struct {
	profiles map[uuid.UUID]*model.LawyerProfile
}

func newFakeLawyerRepo() *fakeLawyerRepo {
	return &fakeLawyerRepo{profiles: make(map[uuid.UUID]*model.LawyerProfile)}
}

func (f *fakeLawyerRepo) CreateProfile(ctx context.Context, p *model.LawyerProfile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeLawyerRepo) GetProfile(ctx context.Context, id uuid.UUID) (*model.LawyerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeLawyerRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.LawyerProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLawyerRepo) UpdateProfile(ctx context.Context, p *model.LawyerProfile) error { return nil }
func (f *fakeLawyerRepo) DeleteProfile(ctx context.Context, id uuid.UUID) error           { return nil }
func (f *fakeLawyerRepo) CountActiveAppointments(ctx context.Context, profileID uuid.UUID) (int, error) {
	return 0, nil
}
func (f *fakeLawyerRepo) Search(ctx context.Context, filters *model.LawyerSearchFilters) ([]*model.LawyerSearchResult, int, error) {
	return nil, 0, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (f *fakeServiceRepo) Create(ctx context.Context, svc *model.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, svc *model.Service) error { return nil }
func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeServiceRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, activeOnly bool) ([]*model.Service, error) {
	return nil, nil
}

type fakeNotificationService struct {
	dispatched []*model.Notification
}

func (f *fakeNotificationService) List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, int, error) {
	return nil, 0, nil
}
func (f *fakeNotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}
func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}
func (f *fakeNotificationService) Dispatch(ctx context.Context, notifs []*model.Notification) {
	f.dispatched = append(f.dispatched, notifs...)
}

type publishedEvent struct {
	channel string
	event   messaging.Event
}

type fakeBroker struct {
	published []publishedEvent
	err       error
}

func (f *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{channel: channel, event: message.(messaging.Event)})
	return nil
}

func (f *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (f *fakeBroker) Close() error { return nil }

func (f *fakeBroker) eventTypes() []string {
	var types []string
	for _, p := range f.published {
		types = append(types, p.event.Type)
	}
	return types
}

type fixture struct {
	svc       *Service
	repo      *fakeAppointmentRepo
	lawyers   *fakeLawyerRepo
	services  *fakeServiceRepo
	notifs    *fakeNotificationService
	broker    *fakeBroker
	clientID  uuid.UUID
	lawyerUID uuid.UUID
	profileID uuid.UUID
	serviceID uuid.UUID
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:      newFakeAppointmentRepo(),
		lawyers:   newFakeLawyerRepo(),
		services:  newFakeServiceRepo(),
		notifs:    &fakeNotificationService{},
		broker:    &fakeBroker{},
		clientID:  uuid.New(),
		lawyerUID: uuid.New(),
		profileID: uuid.New(),
		serviceID: uuid.New(),
		now:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
	}

	f.lawyers.profiles[f.profileID] = &model.LawyerProfile{
		Base:   model.Base{ID: f.profileID},
		UserID: f.lawyerUID,
	}
	f.services.services[f.serviceID] = &model.Service{
		Base:            model.Base{ID: f.serviceID},
		LawyerProfileID: f.profileID,
		Active:          true,
	}

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	f.svc = NewService(f.repo, f.lawyers, f.services, f.notifs, f.broker, log, testMetrics)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) clientClaims() *model.TokenClaims {
	return &model.TokenClaims{UserID: f.clientID, Role: model.RoleClient}
}

func (f *fixture) lawyerClaims() *model.TokenClaims {
	return &model.TokenClaims{UserID: f.lawyerUID, Role: model.RoleLawyer}
}

func (f *fixture) seedAppointment(status model.AppointmentStatus) *model.Appointment {
	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		ClientID:        f.clientID,
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: f.now.AddDate(0, 0, 7),
		AppointmentTime: "10:00",
		Status:          status,
	}
	f.repo.appointments[apt.ID] = apt
	return apt
}

func strPtr(s string) *string { return &s }

func TestBook(t *testing.T) {
	f := newFixture(t)

	req := &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
		MeetingType:     "video",
	}

	apt, err := f.svc.Book(context.Background(), f.clientClaims(), req)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, f.clientID, apt.ClientID)
	assert.Equal(t, f.profileID, apt.LawyerProfileID)

	// One notification per party, dispatched after the write.
	require.Len(t, f.repo.lastBookedNs, 2)
	assert.Len(t, f.notifs.dispatched, 2)
	recipients := []uuid.UUID{f.repo.lastBookedNs[0].UserID, f.repo.lastBookedNs[1].UserID}
	assert.Contains(t, recipients, f.clientID)
	assert.Contains(t, recipients, f.lawyerUID)
}

func TestBookPublishesAppointmentEvent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	require.NoError(t, err)

	require.Len(t, f.broker.published, 1)
	assert.Equal(t, messaging.ChannelAppointments, f.broker.published[0].channel)
	assert.Equal(t, []string{"appointment.booked"}, f.broker.eventTypes())
}

func TestBookSurvivesBrokerFailure(t *testing.T) {
	f := newFixture(t)
	f.broker.err = errors.New("redis: connection refused")

	apt, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
}

func TestLifecycleEventsPublished(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)

	_, err := f.svc.Update(context.Background(), apt.ID, f.lawyerClaims(), &model.UpdateAppointmentRequest{
		Status: strPtr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"appointment.confirmed"}, f.broker.eventTypes())

	_, err = f.svc.Cancel(context.Background(), apt.ID, f.clientClaims())
	require.NoError(t, err)
	assert.Equal(t, []string{"appointment.confirmed", "appointment.cancelled"}, f.broker.eventTypes())
}

func TestBookRejectsLawyers(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.lawyerClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestBookRejectsPastDatetime(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-09",
		AppointmentTime: "14:00",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestBookRejectsForeignService(t *testing.T) {
	f := newFixture(t)

	otherProfile := uuid.New()
	f.lawyers.profiles[otherProfile] = &model.LawyerProfile{
		Base:   model.Base{ID: otherProfile},
		UserID: uuid.New(),
	}

	_, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: otherProfile,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestBookRejectsInactiveService(t *testing.T) {
	f := newFixture(t)
	f.services.services[f.serviceID].Active = false

	_, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestBookScheduleConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.bookErr = repository.ErrScheduleConflict

	_, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Empty(t, f.notifs.dispatched)
}

func TestBookSlotUnavailable(t *testing.T) {
	f := newFixture(t)
	f.repo.bookErr = repository.ErrSlotUnavailable

	slotID := uuid.New()
	_, err := f.svc.Book(context.Background(), f.clientClaims(), &model.CreateAppointmentRequest{
		LawyerProfileID: f.profileID,
		ServiceID:       f.serviceID,
		SlotID:          &slotID,
		AppointmentDate: "2026-03-17",
		AppointmentTime: "14:00",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name     string
		from     model.AppointmentStatus
		to       model.AppointmentStatus
		actor    Party
		wantCode apperrors.Code
	}{
		{"lawyer confirms pending", model.AppointmentStatusPending, model.AppointmentStatusConfirmed, PartyLawyer, ""},
		{"client cannot confirm", model.AppointmentStatusPending, model.AppointmentStatusConfirmed, PartyClient, apperrors.CodeForbidden},
		{"lawyer completes confirmed", model.AppointmentStatusConfirmed, model.AppointmentStatusCompleted, PartyLawyer, ""},
		{"client cannot complete", model.AppointmentStatusConfirmed, model.AppointmentStatusCompleted, PartyClient, apperrors.CodeForbidden},
		{"cannot complete pending", model.AppointmentStatusPending, model.AppointmentStatusCompleted, PartyLawyer, apperrors.CodeValidation},
		{"client cancels pending", model.AppointmentStatusPending, model.AppointmentStatusCancelled, PartyClient, ""},
		{"lawyer cancels pending", model.AppointmentStatusPending, model.AppointmentStatusCancelled, PartyLawyer, ""},
		{"client cancels confirmed", model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled, PartyClient, ""},
		{"completed is terminal", model.AppointmentStatusCompleted, model.AppointmentStatusCancelled, PartyLawyer, apperrors.CodeValidation},
		{"cancelled is terminal", model.AppointmentStatusCancelled, model.AppointmentStatusConfirmed, PartyLawyer, apperrors.CodeValidation},
		{"no reopening", model.AppointmentStatusConfirmed, model.AppointmentStatusPending, PartyLawyer, apperrors.CodeValidation},
		{"same status is a no-op", model.AppointmentStatusConfirmed, model.AppointmentStatusConfirmed, PartyClient, ""},
		{"same terminal status is a no-op", model.AppointmentStatusCompleted, model.AppointmentStatusCompleted, PartyClient, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTransition(tt.from, tt.to, tt.actor)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
			}
		})
	}
}

func TestUpdateConfirmSetsConfirmedAt(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)

	updated, err := f.svc.Update(context.Background(), apt.ID, f.lawyerClaims(), &model.UpdateAppointmentRequest{
		Status: strPtr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
	require.NotNil(t, updated.ConfirmedAt)
	assert.True(t, updated.ConfirmedAt.Equal(f.now))
	assert.Len(t, f.notifs.dispatched, 2)
}

func TestUpdateSameStatusIsSilent(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusConfirmed)

	updated, err := f.svc.Update(context.Background(), apt.ID, f.clientClaims(), &model.UpdateAppointmentRequest{
		Status: strPtr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
	assert.Empty(t, f.notifs.dispatched)
	assert.Empty(t, f.repo.lastUpdate.Notifications)
	assert.Empty(t, f.broker.published)
}

func TestUpdateNotesOnlyProducesNoNotifications(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusConfirmed)

	updated, err := f.svc.Update(context.Background(), apt.ID, f.lawyerClaims(), &model.UpdateAppointmentRequest{
		LawyerNotes: strPtr("bring the contract draft"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bring the contract draft", updated.LawyerNotes)
	assert.Empty(t, f.notifs.dispatched)
}

func TestUpdateRescheduleOnlyWhilePending(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusConfirmed)

	_, err := f.svc.Update(context.Background(), apt.ID, f.clientClaims(), &model.UpdateAppointmentRequest{
		AppointmentDate: strPtr("2026-04-01"),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestUpdateRescheduleRequiresFutureTime(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)

	_, err := f.svc.Update(context.Background(), apt.ID, f.clientClaims(), &model.UpdateAppointmentRequest{
		AppointmentDate: strPtr("2026-03-09"),
		AppointmentTime: strPtr("08:00"),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestUpdateRescheduleSetsConflictKey(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)

	updated, err := f.svc.Update(context.Background(), apt.ID, f.clientClaims(), &model.UpdateAppointmentRequest{
		AppointmentDate: strPtr("2026-04-01"),
		AppointmentTime: strPtr("11:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11:30", updated.AppointmentTime)

	require.NotNil(t, f.repo.lastUpdate.ConflictKey)
	assert.Equal(t, f.profileID, f.repo.lastUpdate.ConflictKey.LawyerProfileID)
	assert.Equal(t, "11:30", f.repo.lastUpdate.ConflictKey.Time)
	// Reschedule notifies both parties even without a status change.
	assert.Len(t, f.repo.lastUpdate.Notifications, 2)
	assert.Equal(t, []string{"appointment.rescheduled"}, f.broker.eventTypes())
}

func TestUpdateRescheduleConflict(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)
	f.repo.updateErr = repository.ErrScheduleConflict

	_, err := f.svc.Update(context.Background(), apt.ID, f.clientClaims(), &model.UpdateAppointmentRequest{
		AppointmentDate: strPtr("2026-04-01"),
		AppointmentTime: strPtr("11:30"),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Empty(t, f.notifs.dispatched)
}

func TestUpdateByStranger(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)

	stranger := &model.TokenClaims{UserID: uuid.New(), Role: model.RoleClient}
	_, err := f.svc.Update(context.Background(), apt.ID, stranger, &model.UpdateAppointmentRequest{
		Status: strPtr("cancelled"),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusConfirmed)
	slotID := uuid.New()
	apt.SlotID = &slotID

	cancelled, err := f.svc.Cancel(context.Background(), apt.ID, f.clientClaims())
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	require.NotNil(t, f.repo.lastUpdate.FreeSlotID)
	assert.Equal(t, slotID, *f.repo.lastUpdate.FreeSlotID)
	assert.Len(t, f.notifs.dispatched, 2)
}

func TestCancelCompletedRejected(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusCompleted)

	_, err := f.svc.Cancel(context.Background(), apt.ID, f.lawyerClaims())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestCancelAlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusCancelled)

	_, err := f.svc.Cancel(context.Background(), apt.ID, f.clientClaims())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestGetByStranger(t *testing.T) {
	f := newFixture(t)
	apt := f.seedAppointment(model.AppointmentStatusPending)

	stranger := &model.TokenClaims{UserID: uuid.New(), Role: model.RoleClient}
	_, err := f.svc.Get(context.Background(), apt.ID, stranger)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestGetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), uuid.New(), f.clientClaims())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListScopesToCaller(t *testing.T) {
	f := newFixture(t)
	f.seedAppointment(model.AppointmentStatusPending)
	f.seedAppointment(model.AppointmentStatusConfirmed)

	// Another client's appointment must not leak into the listing.
	other := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		ClientID:        uuid.New(),
		LawyerProfileID: uuid.New(),
		Status:          model.AppointmentStatusPending,
	}
	f.repo.appointments[other.ID] = other

	list, err := f.svc.List(context.Background(), f.clientClaims(), "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.svc.List(context.Background(), f.clientClaims(), "confirmed")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListLawyerWithoutProfile(t *testing.T) {
	f := newFixture(t)

	claims := &model.TokenClaims{UserID: uuid.New(), Role: model.RoleLawyer}
	list, err := f.svc.List(context.Background(), claims, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListInvalidStatusFilter(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), f.clientClaims(), "archived")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}
