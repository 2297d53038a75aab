package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a bookable time window on a lawyer profile. Booked is
// flipped by appointment creation and cleared by cancellation.
type AvailabilitySlot struct {
	Base
	LawyerProfileID uuid.UUID `db:"lawyer_profile_id" json:"lawyer_profile_id"`
	SlotDate        time.Time `db:"slot_date" json:"slot_date"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	Booked          bool      `db:"booked" json:"booked"`
}

// CreateAvailabilitySlotRequest carries a new slot. The end-after-start
// check lives in the service; gtfield on strings compares length, not value.
type CreateAvailabilitySlotRequest struct {
	SlotDate  string `json:"slot_date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
}
