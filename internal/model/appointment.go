package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the closed set of appointment lifecycle states.
// Completed and cancelled are terminal.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus validates a raw status against the closed enum.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending:
		return AppointmentStatusPending, nil
	case AppointmentStatusConfirmed:
		return AppointmentStatusConfirmed, nil
	case AppointmentStatusCompleted:
		return AppointmentStatusCompleted, nil
	case AppointmentStatusCancelled:
		return AppointmentStatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment is the central mutable entity. Rows are never hard-deleted;
// cancellation is a status value.
type Appointment struct {
	Base
	ClientID        uuid.UUID  `db:"client_id" json:"client_id"`
	LawyerProfileID uuid.UUID  `db:"lawyer_profile_id" json:"lawyer_profile_id"`
	ServiceID       uuid.UUID  `db:"service_id" json:"service_id"`
	SlotID          *uuid.UUID `db:"slot_id" json:"slot_id,omitempty"`

	AppointmentDate time.Time `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string    `db:"appointment_time" json:"appointment_time"`

	Status      AppointmentStatus `db:"status" json:"status"`
	LawyerNotes string            `db:"lawyer_notes" json:"lawyer_notes,omitempty"`
	ClientNotes string            `db:"client_notes" json:"client_notes,omitempty"`
	MeetingLink string            `db:"meeting_link" json:"meeting_link,omitempty"`
	MeetingType string            `db:"meeting_type" json:"meeting_type,omitempty"`

	// ConfirmedAt feeds the measured response-time metric in the directory.
	ConfirmedAt *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
}

// StartsAt combines the date and HH:MM time into a single instant in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return CombineDateTime(a.AppointmentDate, a.AppointmentTime, loc)
}

// CombineDateTime merges a calendar date with an HH:MM wall-clock time.
func CombineDateTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

type CreateAppointmentRequest struct {
	LawyerProfileID uuid.UUID  `json:"lawyer_profile_id" binding:"required"`
	ServiceID       uuid.UUID  `json:"service_id" binding:"required"`
	SlotID          *uuid.UUID `json:"slot_id"`
	AppointmentDate string     `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string     `json:"appointment_time" binding:"required,datetime=15:04"`
	ClientNotes     string     `json:"client_notes" binding:"max=2000"`
	MeetingType     string     `json:"meeting_type" binding:"omitempty,oneof=video phone in_person"`
}

// UpdateAppointmentRequest carries the partial update applied by the
// lifecycle endpoint. Nil fields are left untouched.
type UpdateAppointmentRequest struct {
	Status          *string `json:"status"`
	LawyerNotes     *string `json:"lawyer_notes" binding:"omitempty,max=2000"`
	ClientNotes     *string `json:"client_notes" binding:"omitempty,max=2000"`
	MeetingLink     *string `json:"meeting_link" binding:"omitempty,url"`
	MeetingType     *string `json:"meeting_type" binding:"omitempty,oneof=video phone in_person"`
	AppointmentDate *string `json:"appointment_date" binding:"omitempty,datetime=2006-01-02"`
	AppointmentTime *string `json:"appointment_time" binding:"omitempty,datetime=15:04"`
}

type AppointmentFilters struct {
	ClientID        uuid.UUID
	LawyerProfileID uuid.UUID
	Status          AppointmentStatus
}
