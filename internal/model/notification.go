package model

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeAppointment NotificationType = "appointment"
	NotificationTypePayment     NotificationType = "payment"
	NotificationTypeMessage     NotificationType = "message"
	NotificationTypeSystem      NotificationType = "system"
)

// Notification rows are immutable once created except for the read flag.
type Notification struct {
	Base
	UserID  uuid.UUID        `db:"user_id" json:"user_id"`
	Title   string           `db:"title" json:"title"`
	Message string           `db:"message" json:"message"`
	Type    NotificationType `db:"type" json:"type"`
	Read    bool             `db:"read" json:"read"`
}

type NotificationFilters struct {
	UserID     uuid.UUID
	UnreadOnly bool `form:"unread_only"`
	Pagination
}
