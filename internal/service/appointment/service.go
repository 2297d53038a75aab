package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
	"github.com/lawlink/lawlink-api/internal/service/notification"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/logger"
	"github.com/lawlink/lawlink-api/pkg/messaging"
	"github.com/lawlink/lawlink-api/pkg/metrics"
)

// Party is the caller's relationship to an appointment.
type Party int

const (
	PartyNone Party = iota
	PartyClient
	PartyLawyer
)

type Service struct {
	repo        repository.AppointmentRepository
	lawyerRepo  repository.LawyerRepository
	serviceRepo repository.ServiceRepository
	notifSvc    notification.Service
	broker      messaging.Broker
	logger      *logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewService(repo repository.AppointmentRepository, lawyerRepo repository.LawyerRepository,
	serviceRepo repository.ServiceRepository, notifSvc notification.Service,
	broker messaging.Broker, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		lawyerRepo:  lawyerRepo,
		serviceRepo: serviceRepo,
		notifSvc:    notifSvc,
		broker:      broker,
		logger:      log,
		metrics:     m,
		now:         time.Now,
	}
}

// publishEvent emits a realtime appointment event. Best effort: the row is
// already committed, so failures are logged and dropped.
func (s *Service) publishEvent(ctx context.Context, eventType string, apt *model.Appointment) {
	event := messaging.Event{
		Type:       eventType,
		OccurredAt: s.now().Unix(),
		Payload:    apt,
	}
	if err := s.broker.Publish(ctx, messaging.ChannelAppointments, event); err != nil {
		s.logger.Error(err, "failed to publish appointment event",
			"appointment_id", apt.ID.String(), "event_type", eventType)
	}
}

// resolveParty checks whether the caller is the appointment's client or the
// owner of its lawyer profile.
func (s *Service) resolveParty(ctx context.Context, apt *model.Appointment, claims *model.TokenClaims) (Party, error) {
	if claims.UserID == apt.ClientID {
		return PartyClient, nil
	}
	profile, err := s.lawyerRepo.GetProfile(ctx, apt.LawyerProfileID)
	if err != nil {
		return PartyNone, fmt.Errorf("failed to resolve lawyer profile: %w", err)
	}
	if profile.UserID == claims.UserID {
		return PartyLawyer, nil
	}
	return PartyNone, nil
}

// checkTransition enforces the status transition table. An illegal transition
// is a validation error; a legal transition by the wrong party is a
// permission error.
func checkTransition(from, to model.AppointmentStatus, actor Party) error {
	if from == to {
		return nil
	}

	switch from {
	case model.AppointmentStatusCompleted:
		return apperrors.Validation("completed appointments cannot be modified", nil)
	case model.AppointmentStatusCancelled:
		return apperrors.Validation(fmt.Sprintf("cancelled appointments cannot be moved to %s", to), nil)
	}

	switch to {
	case model.AppointmentStatusConfirmed:
		if from != model.AppointmentStatusPending {
			return apperrors.Validation(fmt.Sprintf("cannot move a %s appointment to confirmed", from), nil)
		}
		if actor != PartyLawyer {
			return apperrors.Forbidden("only the lawyer can confirm an appointment", nil)
		}
	case model.AppointmentStatusCompleted:
		if from != model.AppointmentStatusConfirmed {
			return apperrors.Validation(fmt.Sprintf("cannot complete a %s appointment", from), nil)
		}
		if actor != PartyLawyer {
			return apperrors.Forbidden("only the lawyer can complete an appointment", nil)
		}
	case model.AppointmentStatusCancelled:
		// Either party may cancel a pending or confirmed appointment.
	case model.AppointmentStatusPending:
		return apperrors.Validation(fmt.Sprintf("cannot move a %s appointment back to pending", from), nil)
	}
	return nil
}

// Get returns the appointment after verifying the caller is a party to it.
func (s *Service) Get(ctx context.Context, id uuid.UUID, claims *model.TokenClaims) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	party, err := s.resolveParty(ctx, apt, claims)
	if err != nil {
		return nil, err
	}
	if party == PartyNone {
		return nil, apperrors.Forbidden("not a party to this appointment", nil)
	}
	return apt, nil
}

// List returns the caller's own appointments, as client or as lawyer.
func (s *Service) List(ctx context.Context, claims *model.TokenClaims, status string) ([]*model.Appointment, error) {
	filters := &model.AppointmentFilters{}

	if status != "" {
		parsed, err := model.ParseAppointmentStatus(status)
		if err != nil {
			return nil, apperrors.Validation("invalid status filter", err)
		}
		filters.Status = parsed
	}

	switch claims.Role {
	case model.RoleLawyer:
		profile, err := s.lawyerRepo.GetProfileByUserID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []*model.Appointment{}, nil
			}
			return nil, fmt.Errorf("failed to resolve lawyer profile: %w", err)
		}
		filters.LawyerProfileID = profile.ID
	default:
		filters.ClientID = claims.UserID
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Book creates a pending appointment for the calling client.
func (s *Service) Book(ctx context.Context, claims *model.TokenClaims, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if claims.Role != model.RoleClient {
		return nil, apperrors.Forbidden("only clients can book appointments", nil)
	}

	profile, err := s.lawyerRepo.GetProfile(ctx, req.LawyerProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lawyer profile", err)
		}
		return nil, fmt.Errorf("failed to get lawyer profile: %w", err)
	}

	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if svc.LawyerProfileID != profile.ID {
		return nil, apperrors.Validation("service does not belong to this lawyer", nil)
	}
	if !svc.Active {
		return nil, apperrors.Validation("service is not active", nil)
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, apperrors.Validation("invalid appointment date", err)
	}
	startsAt, err := model.CombineDateTime(date, req.AppointmentTime, time.Local)
	if err != nil {
		return nil, apperrors.Validation("invalid appointment time", err)
	}
	if !startsAt.After(s.now()) {
		return nil, apperrors.Validation("appointment must be in the future", nil)
	}

	apt := &model.Appointment{
		ClientID:        claims.UserID,
		LawyerProfileID: profile.ID,
		ServiceID:       svc.ID,
		SlotID:          req.SlotID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		ClientNotes:     req.ClientNotes,
		MeetingType:     req.MeetingType,
	}

	notifs := bookingNotifications(apt, claims.UserID, profile.UserID)

	if err := s.repo.Book(ctx, apt, notifs); err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleConflict):
			s.metrics.ScheduleConflicts.Inc()
			return nil, apperrors.Conflict("the lawyer already has an appointment at this time", err)
		case errors.Is(err, repository.ErrSlotUnavailable):
			s.metrics.ScheduleConflicts.Inc()
			return nil, apperrors.Conflict("the availability slot is already booked", err)
		default:
			return nil, fmt.Errorf("failed to book appointment: %w", err)
		}
	}

	s.metrics.AppointmentsBooked.Inc()
	s.metrics.NotificationsCreated.Add(float64(len(notifs)))
	s.notifSvc.Dispatch(ctx, notifs)
	s.publishEvent(ctx, "appointment.booked", apt)

	return apt, nil
}

// Update applies a lifecycle change: status transition, note/meeting-detail
// update, or reschedule. All validations run before the write; the write and
// its side effects commit atomically.
func (s *Service) Update(ctx context.Context, id uuid.UUID, claims *model.TokenClaims, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	party, err := s.resolveParty(ctx, apt, claims)
	if err != nil {
		return nil, err
	}
	if party == PartyNone {
		return nil, apperrors.Forbidden("not a party to this appointment", nil)
	}

	prevStatus := apt.Status
	statusChanged := false
	if req.Status != nil {
		newStatus, err := model.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, apperrors.Validation("invalid status", err)
		}
		if err := checkTransition(apt.Status, newStatus, party); err != nil {
			return nil, err
		}
		if newStatus != apt.Status {
			statusChanged = true
			apt.Status = newStatus
			if newStatus == model.AppointmentStatusConfirmed {
				now := s.now()
				apt.ConfirmedAt = &now
			}
		}
	}

	scheduleChanged := false
	newDate := apt.AppointmentDate
	newTime := apt.AppointmentTime
	if req.AppointmentDate != nil {
		d, err := time.Parse("2006-01-02", *req.AppointmentDate)
		if err != nil {
			return nil, apperrors.Validation("invalid appointment date", err)
		}
		newDate = d
	}
	if req.AppointmentTime != nil {
		newTime = *req.AppointmentTime
	}
	if !newDate.Equal(apt.AppointmentDate) || newTime != apt.AppointmentTime {
		if prevStatus != model.AppointmentStatusPending {
			return nil, apperrors.Validation("only pending appointments can be rescheduled", nil)
		}
		startsAt, err := model.CombineDateTime(newDate, newTime, time.Local)
		if err != nil {
			return nil, apperrors.Validation("invalid appointment time", err)
		}
		if !startsAt.After(s.now()) {
			return nil, apperrors.Validation("appointment must be rescheduled to a future time", nil)
		}
		scheduleChanged = true
		apt.AppointmentDate = newDate
		apt.AppointmentTime = newTime
	}

	if req.LawyerNotes != nil {
		apt.LawyerNotes = *req.LawyerNotes
	}
	if req.ClientNotes != nil {
		apt.ClientNotes = *req.ClientNotes
	}
	if req.MeetingLink != nil {
		apt.MeetingLink = *req.MeetingLink
	}
	if req.MeetingType != nil {
		apt.MeetingType = *req.MeetingType
	}

	upd := &repository.AppointmentUpdate{}

	if scheduleChanged {
		upd.ConflictKey = &repository.ScheduleKey{
			LawyerProfileID: apt.LawyerProfileID,
			Date:            apt.AppointmentDate,
			Time:            apt.AppointmentTime,
		}
	}

	if statusChanged && apt.Status == model.AppointmentStatusCancelled && apt.SlotID != nil {
		upd.FreeSlotID = apt.SlotID
	}

	// Notifications go out only when something a party cares about changed;
	// re-requesting the current status stays silent.
	if statusChanged || scheduleChanged {
		lawyerUserID, err := s.lawyerUserID(ctx, apt)
		if err != nil {
			return nil, err
		}
		upd.Notifications = changeNotifications(apt, statusChanged, apt.ClientID, lawyerUserID)
	}

	if err := s.repo.Update(ctx, apt, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleConflict):
			s.metrics.ScheduleConflicts.Inc()
			return nil, apperrors.Conflict("the lawyer already has an appointment at this time", err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("appointment", err)
		default:
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
	}

	if statusChanged {
		s.metrics.AppointmentTransitions.WithLabelValues(string(prevStatus), string(apt.Status)).Inc()
	}
	if len(upd.Notifications) > 0 {
		s.metrics.NotificationsCreated.Add(float64(len(upd.Notifications)))
		s.notifSvc.Dispatch(ctx, upd.Notifications)
	}
	if statusChanged {
		s.publishEvent(ctx, "appointment."+string(apt.Status), apt)
	}
	if scheduleChanged {
		s.publishEvent(ctx, "appointment.rescheduled", apt)
	}

	return apt, nil
}

// Cancel is the dedicated cancellation endpoint. Cancellation is a status
// value, not a row removal.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, claims *model.TokenClaims) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	party, err := s.resolveParty(ctx, apt, claims)
	if err != nil {
		return nil, err
	}
	if party == PartyNone {
		return nil, apperrors.Forbidden("not a party to this appointment", nil)
	}

	if apt.Status == model.AppointmentStatusCompleted {
		return nil, apperrors.Validation("completed appointments cannot be cancelled", nil)
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.Validation("appointment is already cancelled", nil)
	}

	prevStatus := apt.Status
	apt.Status = model.AppointmentStatusCancelled

	lawyerUserID, err := s.lawyerUserID(ctx, apt)
	if err != nil {
		return nil, err
	}

	upd := &repository.AppointmentUpdate{
		Notifications: changeNotifications(apt, true, apt.ClientID, lawyerUserID),
	}
	if apt.SlotID != nil {
		upd.FreeSlotID = apt.SlotID
	}

	if err := s.repo.Update(ctx, apt, upd); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.metrics.AppointmentTransitions.WithLabelValues(string(prevStatus), string(apt.Status)).Inc()
	s.metrics.NotificationsCreated.Add(float64(len(upd.Notifications)))
	s.notifSvc.Dispatch(ctx, upd.Notifications)
	s.publishEvent(ctx, "appointment.cancelled", apt)

	return apt, nil
}

func (s *Service) lawyerUserID(ctx context.Context, apt *model.Appointment) (uuid.UUID, error) {
	profile, err := s.lawyerRepo.GetProfile(ctx, apt.LawyerProfileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve lawyer profile: %w", err)
	}
	return profile.UserID, nil
}
