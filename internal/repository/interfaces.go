package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
)

// Sentinel errors translated into the API error taxonomy by the services.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrScheduleConflict = errors.New("schedule conflict")
	ErrSlotUnavailable  = errors.New("availability slot already booked")
)

// ScheduleKey identifies a lawyer's slot on the calendar for conflict checks.
type ScheduleKey struct {
	LawyerProfileID uuid.UUID
	Date            time.Time
	Time            string
}

// AppointmentUpdate describes the side effects applied atomically with an
// appointment row update. The conflict key, when set, is re-checked inside
// the same transaction so two racing reschedules cannot both succeed.
type AppointmentUpdate struct {
	FreeSlotID    *uuid.UUID
	Notifications []*model.Notification
	ConflictKey   *ScheduleKey
}

type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	LawyerRepository interface {
		CreateProfile(ctx context.Context, profile *model.LawyerProfile) error
		GetProfile(ctx context.Context, id uuid.UUID) (*model.LawyerProfile, error)
		GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.LawyerProfile, error)
		UpdateProfile(ctx context.Context, profile *model.LawyerProfile) error
		DeleteProfile(ctx context.Context, id uuid.UUID) error
		CountActiveAppointments(ctx context.Context, profileID uuid.UUID) (int, error)
		Search(ctx context.Context, filters *model.LawyerSearchFilters) ([]*model.LawyerSearchResult, int, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, svc *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, svc *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByProfile(ctx context.Context, profileID uuid.UUID, activeOnly bool) ([]*model.Service, error)
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, slot *model.AvailabilitySlot) error
		Get(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByProfile(ctx context.Context, profileID uuid.UUID, futureOnly bool) ([]*model.AvailabilitySlot, error)
	}

	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// Book creates a pending appointment, marks the optional slot booked
		// and inserts the notifications, all in one transaction.
		Book(ctx context.Context, apt *model.Appointment, notifs []*model.Notification) error
		// Update applies the row update and the side effects in AppointmentUpdate
		// in one transaction.
		Update(ctx context.Context, apt *model.Appointment, upd *AppointmentUpdate) error
	}

	ReviewRepository interface {
		// Create inserts the review, refreshes the profile's stored rating
		// aggregates and inserts the notification, all in one transaction.
		Create(ctx context.Context, review *model.Review, notif *model.Notification) error
		List(ctx context.Context, filters *model.ReviewFilters) ([]*model.Review, int, error)
		HasCompletedAppointment(ctx context.Context, clientID, profileID uuid.UUID) (bool, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notif *model.Notification) error
		ListForUser(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, int, error)
		MarkRead(ctx context.Context, id, userID uuid.UUID) error
		MarkAllRead(ctx context.Context, userID uuid.UUID) error
	}
)
