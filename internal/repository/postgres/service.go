package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

type serviceRepository struct {
	*BaseRepository
}

func NewServiceRepository(base *BaseRepository) repository.ServiceRepository {
	return &serviceRepository{BaseRepository: base}
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	defer r.track("insert", "services")()

	query := `
		INSERT INTO services (
			id, lawyer_profile_id, name, description, price,
			duration_minutes, category, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		svc.ID,
		svc.LawyerProfileID,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.DurationMinutes,
		svc.Category,
		svc.Active,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", translateErr(err))
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	defer r.track("select", "services")()

	query := `
		SELECT id, lawyer_profile_id, name, description, price,
			   duration_minutes, category, active, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var svc model.Service
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", translateErr(err))
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	defer r.track("update", "services")()

	query := `
		UPDATE services
		SET name = $1, description = $2, price = $3, duration_minutes = $4,
			category = $5, active = $6, updated_at = $7
		WHERE id = $8
	`
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.DurationMinutes,
		svc.Category,
		svc.Active,
		svc.UpdatedAt,
		svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
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

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.track("delete", "services")()

	// Appointments keep their service reference, so deactivate instead of
	// removing the row.
	result, err := r.db.ExecContext(ctx, `
		UPDATE services SET active = FALSE, updated_at = $1 WHERE id = $2
	`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
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

func (r *serviceRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, activeOnly bool) ([]*model.Service, error) {
	defer r.track("select", "services")()

	query := `
		SELECT id, lawyer_profile_id, name, description, price,
			   duration_minutes, category, active, created_at, updated_at
		FROM services
		WHERE lawyer_profile_id = $1
	`
	if activeOnly {
		query += " AND active"
	}
	query += " ORDER BY created_at ASC"

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
