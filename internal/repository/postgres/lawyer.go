package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

type lawyerRepository struct {
	*BaseRepository
}

func NewLawyerRepository(base *BaseRepository) repository.LawyerRepository {
	return &lawyerRepository{BaseRepository: base}
}

const profileColumns = `
	id, user_id, specialization, license_number, firm_name, location,
	hourly_rate, years_experience, verified, bio,
	education, certifications, languages,
	avg_rating, review_count, created_at, updated_at
`

func (r *lawyerRepository) CreateProfile(ctx context.Context, profile *model.LawyerProfile) error {
	defer r.track("insert", "lawyer_profiles")()

	query := `
		INSERT INTO lawyer_profiles (
			id, user_id, specialization, license_number, firm_name, location,
			hourly_rate, years_experience, verified, bio,
			education, certifications, languages, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Specialization,
		profile.LicenseNumber,
		profile.FirmName,
		profile.Location,
		profile.HourlyRate,
		profile.YearsExperience,
		profile.Verified,
		profile.Bio,
		profile.Education,
		profile.Certifications,
		profile.Languages,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lawyer profile: %w", translateErr(err))
	}
	return nil
}

func (r *lawyerRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.LawyerProfile, error) {
	defer r.track("select", "lawyer_profiles")()

	query := `SELECT ` + profileColumns + ` FROM lawyer_profiles WHERE id = $1`
	var profile model.LawyerProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, fmt.Errorf("failed to get lawyer profile: %w", translateErr(err))
	}
	return &profile, nil
}

func (r *lawyerRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.LawyerProfile, error) {
	defer r.track("select", "lawyer_profiles")()

	query := `SELECT ` + profileColumns + ` FROM lawyer_profiles WHERE user_id = $1`
	var profile model.LawyerProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get lawyer profile by user: %w", translateErr(err))
	}
	return &profile, nil
}

func (r *lawyerRepository) UpdateProfile(ctx context.Context, profile *model.LawyerProfile) error {
	defer r.track("update", "lawyer_profiles")()

	query := `
		UPDATE lawyer_profiles
		SET specialization = $1, firm_name = $2, location = $3, hourly_rate = $4,
			years_experience = $5, bio = $6,
			education = $7, certifications = $8, languages = $9, updated_at = $10
		WHERE id = $11
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.Specialization,
		profile.FirmName,
		profile.Location,
		profile.HourlyRate,
		profile.YearsExperience,
		profile.Bio,
		profile.Education,
		profile.Certifications,
		profile.Languages,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lawyer profile: %w", translateErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *lawyerRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	defer r.track("delete", "lawyer_profiles")()

	result, err := r.db.ExecContext(ctx, `DELETE FROM lawyer_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lawyer profile: %w", translateErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *lawyerRepository) CountActiveAppointments(ctx context.Context, profileID uuid.UUID) (int, error) {
	defer r.track("select", "appointments")()

	query := `
		SELECT count(*) FROM appointments
		WHERE lawyer_profile_id = $1 AND status IN ('pending', 'confirmed')
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID); err != nil {
		return 0, fmt.Errorf("failed to count active appointments: %w", err)
	}
	return count, nil
}

// Search runs the directory query. Filters and the min_rating bound are all
// applied in SQL against the stored aggregates; derived metrics are computed
// per returned row via correlated subqueries.
func (r *lawyerRepository) Search(ctx context.Context, filters *model.LawyerSearchFilters) ([]*model.LawyerSearchResult, int, error) {
	defer r.track("select", "lawyer_profiles")()

	var conds []string
	var args []interface{}

	addCond := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(args)), 1))
	}

	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + q + "%"
		args = append(args, pattern)
		idx := len(args)
		conds = append(conds, fmt.Sprintf(
			"(u.name ILIKE $%d OR p.specialization ILIKE $%d OR p.firm_name ILIKE $%d OR p.bio ILIKE $%d)",
			idx, idx, idx, idx))
	}
	if filters.Specialization != "" {
		addCond("p.specialization ILIKE ?", filters.Specialization)
	}
	if filters.Location != "" {
		addCond("p.location ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.MinRate > 0 {
		addCond("p.hourly_rate >= ?", filters.MinRate)
	}
	if filters.MaxRate > 0 {
		addCond("p.hourly_rate <= ?", filters.MaxRate)
	}
	if filters.MinExperience > 0 {
		addCond("p.years_experience >= ?", filters.MinExperience)
	}
	if filters.Language != "" {
		addCond("? = ANY(p.languages)", filters.Language)
	}
	if filters.VerifiedOnly {
		conds = append(conds, "p.verified = TRUE")
	}
	if filters.MinRating > 0 {
		addCond("p.avg_rating >= ?", filters.MinRating)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT count(*)
		FROM lawyer_profiles p
		JOIN users u ON u.id = p.user_id
	` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count lawyers: %w", err)
	}

	query := `
		SELECT
			p.id, p.user_id, p.specialization, p.license_number, p.firm_name, p.location,
			p.hourly_rate, p.years_experience, p.verified, p.bio,
			p.education, p.certifications, p.languages,
			p.avg_rating, p.review_count, p.created_at, p.updated_at,
			u.name, u.photo_url,
			(SELECT count(*) FROM appointments a
				WHERE a.lawyer_profile_id = p.id AND a.status = 'completed') AS completed_appointments,
			(SELECT min(s.price) FROM services s
				WHERE s.lawyer_profile_id = p.id AND s.active) AS min_service_price,
			(SELECT count(*) FROM availability_slots sl
				WHERE sl.lawyer_profile_id = p.id AND NOT sl.booked
				AND sl.slot_date >= CURRENT_DATE) AS available_slots,
			(SELECT avg(extract(epoch FROM a.confirmed_at - a.created_at) / 60) FROM appointments a
				WHERE a.lawyer_profile_id = p.id AND a.confirmed_at IS NOT NULL
				AND a.created_at > now() - interval '90 days') AS avg_response_minutes
		FROM lawyer_profiles p
		JOIN users u ON u.id = p.user_id
	` + where + searchOrderBy(filters.SortBy)

	args = append(args, filters.Limit, filters.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var results []*model.LawyerSearchResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search lawyers: %w", err)
	}
	return results, total, nil
}

func searchOrderBy(sortBy string) string {
	switch sortBy {
	case model.SortRating:
		return " ORDER BY p.avg_rating DESC, p.review_count DESC"
	case model.SortPriceAsc:
		return " ORDER BY p.hourly_rate ASC"
	case model.SortPriceDesc:
		return " ORDER BY p.hourly_rate DESC"
	case model.SortExperience:
		return " ORDER BY p.years_experience DESC"
	case model.SortReviews:
		return " ORDER BY p.review_count DESC"
	default:
		return " ORDER BY p.verified DESC, p.avg_rating DESC, p.review_count DESC"
	}
}
