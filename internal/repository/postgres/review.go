package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

type reviewRepository struct {
	*BaseRepository
}

func NewReviewRepository(base *BaseRepository) repository.ReviewRepository {
	return &reviewRepository{BaseRepository: base}
}

// Create inserts the review, refreshes the profile's stored rating aggregates
// from the review table and writes the lawyer's notification, all in one
// transaction. The aggregates are what directory queries filter and sort on.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review, notif *model.Notification) error {
	defer r.track("insert", "reviews")()

	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reviews (id, client_id, lawyer_profile_id, rating, comment, visible, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			review.ID, review.ClientID, review.LawyerProfileID,
			review.Rating, review.Comment, review.Visible,
			review.CreatedAt, review.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", translateErr(err))
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE lawyer_profiles p
			SET avg_rating = sub.avg_rating,
				review_count = sub.review_count,
				updated_at = $1
			FROM (
				SELECT round(avg(rating)::numeric, 1) AS avg_rating, count(*) AS review_count
				FROM reviews
				WHERE lawyer_profile_id = $2 AND visible
			) sub
			WHERE p.id = $2
		`, time.Now(), review.LawyerProfileID); err != nil {
			return fmt.Errorf("failed to refresh rating aggregates: %w", err)
		}

		if notif != nil {
			return insertNotifications(ctx, tx, []*model.Notification{notif})
		}
		return nil
	})
}

func (r *reviewRepository) List(ctx context.Context, filters *model.ReviewFilters) ([]*model.Review, int, error) {
	defer r.track("select", "reviews")()

	where := " WHERE 1=1"
	var args []interface{}

	if filters.LawyerProfileID != uuid.Nil {
		args = append(args, filters.LawyerProfileID)
		where += fmt.Sprintf(" AND lawyer_profile_id = $%d", len(args))
	}
	if filters.ClientID != uuid.Nil {
		args = append(args, filters.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filters.MinRating > 0 {
		args = append(args, filters.MinRating)
		where += fmt.Sprintf(" AND rating >= $%d", len(args))
	}
	if filters.Visible != nil {
		args = append(args, *filters.Visible)
		where += fmt.Sprintf(" AND visible = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT count(*) FROM reviews"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	orderCol := "created_at"
	if filters.SortBy == "rating" {
		orderCol = "rating"
	}
	dir := "DESC"
	if filters.Order == "asc" {
		dir = "ASC"
	}

	query := `
		SELECT id, client_id, lawyer_profile_id, rating, comment, visible, created_at, updated_at
		FROM reviews
	` + where + fmt.Sprintf(" ORDER BY %s %s", orderCol, dir)

	args = append(args, filters.Limit, filters.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) HasCompletedAppointment(ctx context.Context, clientID, profileID uuid.UUID) (bool, error) {
	defer r.track("select", "appointments")()

	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE client_id = $1 AND lawyer_profile_id = $2 AND status = 'completed'
		)
	`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, clientID, profileID); err != nil {
		return false, fmt.Errorf("failed to check completed appointments: %w", err)
	}
	return ok, nil
}
