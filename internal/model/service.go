package model

import (
	"github.com/google/uuid"
)

// Service is a bookable offering on a lawyer profile.
type Service struct {
	Base
	LawyerProfileID uuid.UUID `db:"lawyer_profile_id" json:"lawyer_profile_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description,omitempty"`
	Price           float64   `db:"price" json:"price"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Category        string    `db:"category" json:"category,omitempty"`
	Active          bool      `db:"active" json:"active"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=160"`
	Description     string  `json:"description" binding:"max=2000"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gte=15,lte=480"`
	Category        string  `json:"category" binding:"max=80"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=160"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
	Price           *float64 `json:"price" binding:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gte=15,lte=480"`
	Category        *string  `json:"category" binding:"omitempty,max=80"`
	Active          *bool    `json:"active"`
}
