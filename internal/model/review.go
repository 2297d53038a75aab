package model

import (
	"github.com/google/uuid"
)

// Review is unique per (client, lawyer profile) pair.
type Review struct {
	Base
	ClientID        uuid.UUID `db:"client_id" json:"client_id"`
	LawyerProfileID uuid.UUID `db:"lawyer_profile_id" json:"lawyer_profile_id"`
	Rating          int       `db:"rating" json:"rating"`
	Comment         string    `db:"comment" json:"comment,omitempty"`
	Visible         bool      `db:"visible" json:"visible"`
}

type CreateReviewRequest struct {
	LawyerProfileID uuid.UUID `json:"lawyer_profile_id" binding:"required"`
	Rating          int       `json:"rating" binding:"required,gte=1,lte=5"`
	Comment         string    `json:"comment" binding:"max=2000"`
}

type ReviewFilters struct {
	LawyerProfileID uuid.UUID `form:"lawyer_profile_id"`
	ClientID        uuid.UUID `form:"client_id"`
	MinRating       int       `form:"min_rating"`
	Visible         *bool     `form:"is_visible"`
	SortBy          string    `form:"sort_by"`
	Order           string    `form:"order"`
	Pagination
}
