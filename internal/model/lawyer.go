package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LawyerProfile is the 1:1 extension of a user with role lawyer.
// AvgRating and ReviewCount are stored aggregates maintained transactionally
// by review writes, so directory queries can filter and sort on them in SQL.
type LawyerProfile struct {
	Base
	UserID          uuid.UUID      `db:"user_id" json:"user_id"`
	Specialization  string         `db:"specialization" json:"specialization"`
	LicenseNumber   string         `db:"license_number" json:"license_number"`
	FirmName        string         `db:"firm_name" json:"firm_name,omitempty"`
	Location        string         `db:"location" json:"location,omitempty"`
	HourlyRate      float64        `db:"hourly_rate" json:"hourly_rate"`
	YearsExperience int            `db:"years_experience" json:"years_experience"`
	Verified        bool           `db:"verified" json:"verified"`
	Bio             string         `db:"bio" json:"bio,omitempty"`
	Education       pq.StringArray `db:"education" json:"education"`
	Certifications  pq.StringArray `db:"certifications" json:"certifications"`
	Languages       pq.StringArray `db:"languages" json:"languages"`
	AvgRating       float64        `db:"avg_rating" json:"avg_rating"`
	ReviewCount     int            `db:"review_count" json:"review_count"`
}

type CreateLawyerProfileRequest struct {
	Specialization  string   `json:"specialization" binding:"required,max=120"`
	LicenseNumber   string   `json:"license_number" binding:"required,max=60"`
	FirmName        string   `json:"firm_name" binding:"max=160"`
	Location        string   `json:"location" binding:"max=160"`
	HourlyRate      float64  `json:"hourly_rate" binding:"required,gt=0"`
	YearsExperience int      `json:"years_experience" binding:"gte=0,lte=80"`
	Bio             string   `json:"bio" binding:"max=4000"`
	Education       []string `json:"education"`
	Certifications  []string `json:"certifications"`
	Languages       []string `json:"languages"`
}

type UpdateLawyerProfileRequest struct {
	Specialization  *string   `json:"specialization" binding:"omitempty,max=120"`
	FirmName        *string   `json:"firm_name" binding:"omitempty,max=160"`
	Location        *string   `json:"location" binding:"omitempty,max=160"`
	HourlyRate      *float64  `json:"hourly_rate" binding:"omitempty,gt=0"`
	YearsExperience *int      `json:"years_experience" binding:"omitempty,gte=0,lte=80"`
	Bio             *string   `json:"bio" binding:"omitempty,max=4000"`
	Education       *[]string `json:"education"`
	Certifications  *[]string `json:"certifications"`
	Languages       *[]string `json:"languages"`
}

// Directory sort keys.
const (
	SortRating     = "rating"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortExperience = "experience"
	SortReviews    = "reviews"
)

type LawyerSearchFilters struct {
	Query          string  `form:"q"`
	Specialization string  `form:"specialization"`
	Location       string  `form:"location"`
	MinRate        float64 `form:"min_rate"`
	MaxRate        float64 `form:"max_rate"`
	MinExperience  int     `form:"min_experience"`
	Language       string  `form:"language"`
	VerifiedOnly   bool    `form:"verified_only"`
	MinRating      float64 `form:"min_rating"`
	SortBy         string  `form:"sort_by"`
	Pagination
}

// LawyerSearchResult is a directory row: the profile joined with the owning
// user's public fields plus derived metrics.
type LawyerSearchResult struct {
	LawyerProfile
	Name     string `db:"name" json:"name"`
	PhotoURL string `db:"photo_url" json:"photo_url,omitempty"`

	CompletedAppointments int      `db:"completed_appointments" json:"completed_appointments"`
	MinServicePrice       *float64 `db:"min_service_price" json:"min_service_price,omitempty"`
	AvailableSlots        int      `db:"available_slots" json:"available_slots"`
	// AvgResponseMinutes is the mean created-to-confirmed latency over recent
	// confirmed appointments. Nil when the lawyer has no confirmations yet.
	AvgResponseMinutes *float64 `db:"avg_response_minutes" json:"avg_response_minutes,omitempty"`
}

type LawyerSearchPage struct {
	Results []*LawyerSearchResult `json:"results"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
	HasMore bool                  `json:"has_more"`
}
