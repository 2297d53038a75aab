package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

type availabilityRepository struct {
	*BaseRepository
}

func NewAvailabilityRepository(base *BaseRepository) repository.AvailabilityRepository {
	return &availabilityRepository{BaseRepository: base}
}

func (r *availabilityRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	defer r.track("insert", "availability_slots")()

	query := `
		INSERT INTO availability_slots (
			id, lawyer_profile_id, slot_date, start_time, end_time, booked, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.LawyerProfileID,
		slot.SlotDate,
		slot.StartTime,
		slot.EndTime,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability slot: %w", translateErr(err))
	}
	return nil
}

func (r *availabilityRepository) Get(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error) {
	defer r.track("select", "availability_slots")()

	query := `
		SELECT id, lawyer_profile_id, slot_date, start_time, end_time, booked, created_at, updated_at
		FROM availability_slots
		WHERE id = $1
	`
	var slot model.AvailabilitySlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, fmt.Errorf("failed to get availability slot: %w", translateErr(err))
	}
	return &slot, nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.track("delete", "availability_slots")()

	// Booked slots stay; the appointment cancel path is what frees them.
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM availability_slots WHERE id = $1 AND NOT booked
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability slot: %w", err)
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

func (r *availabilityRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, futureOnly bool) ([]*model.AvailabilitySlot, error) {
	defer r.track("select", "availability_slots")()

	query := `
		SELECT id, lawyer_profile_id, slot_date, start_time, end_time, booked, created_at, updated_at
		FROM availability_slots
		WHERE lawyer_profile_id = $1
	`
	if futureOnly {
		query += " AND slot_date >= CURRENT_DATE"
	}
	query += " ORDER BY slot_date ASC, start_time ASC"

	var slots []*model.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	return slots, nil
}
