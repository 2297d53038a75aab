package lawyer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
)

// InvalidateDirectoryCache drops cached directory pages. Called by writers
// outside this package (review creation) that change what the directory
// shows.
func (s *Service) InvalidateDirectoryCache() {
	s.cache.Flush()
}

// CreateService adds a bookable offering to the caller's profile.
func (s *Service) CreateService(ctx context.Context, claims *model.TokenClaims, req *model.CreateServiceRequest) (*model.Service, error) {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return nil, err
	}

	svc := &model.Service{
		LawyerProfileID: profile.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		Active:          true,
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.cache.Flush()
	return svc, nil
}

// UpdateService applies a partial update to one of the caller's services.
func (s *Service) UpdateService(ctx context.Context, claims *model.TokenClaims, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return nil, err
	}

	svc, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if svc.LawyerProfileID != profile.ID {
		return nil, apperrors.Forbidden("service belongs to another lawyer", nil)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.cache.Flush()
	return svc, nil
}

// DeleteService deactivates one of the caller's services.
func (s *Service) DeleteService(ctx context.Context, claims *model.TokenClaims, id uuid.UUID) error {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return err
	}

	svc, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("service", err)
		}
		return fmt.Errorf("failed to get service: %w", err)
	}
	if svc.LawyerProfileID != profile.ID {
		return apperrors.Forbidden("service belongs to another lawyer", nil)
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.cache.Flush()
	return nil
}

// ListServices returns a profile's services; callers other than the owner
// only see active ones.
func (s *Service) ListServices(ctx context.Context, profileID uuid.UUID, claims *model.TokenClaims) ([]*model.Service, error) {
	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lawyer profile", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	activeOnly := claims == nil || profile.UserID != claims.UserID
	services, err := s.serviceRepo.ListByProfile(ctx, profileID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// AddAvailability publishes a bookable slot on the caller's calendar.
func (s *Service) AddAvailability(ctx context.Context, claims *model.TokenClaims, req *model.CreateAvailabilitySlotRequest) (*model.AvailabilitySlot, error) {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return nil, apperrors.Validation("invalid slot date", err)
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("invalid start time", err)
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, apperrors.Validation("invalid end time", err)
	}
	if !end.After(start) {
		return nil, apperrors.Validation("end time must be after start time", nil)
	}

	slot := &model.AvailabilitySlot{
		LawyerProfileID: profile.ID,
		SlotDate:        date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
	}

	if err := s.availabilityRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create availability slot: %w", err)
	}

	s.cache.Flush()
	return slot, nil
}

// RemoveAvailability deletes an unbooked slot from the caller's calendar.
func (s *Service) RemoveAvailability(ctx context.Context, claims *model.TokenClaims, id uuid.UUID) error {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return err
	}

	slot, err := s.availabilityRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("availability slot", err)
		}
		return fmt.Errorf("failed to get availability slot: %w", err)
	}
	if slot.LawyerProfileID != profile.ID {
		return apperrors.Forbidden("slot belongs to another lawyer", nil)
	}
	if slot.Booked {
		return apperrors.Conflict("slot is booked; cancel the appointment instead", nil)
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Conflict("slot is booked; cancel the appointment instead", err)
		}
		return fmt.Errorf("failed to delete availability slot: %w", err)
	}

	s.cache.Flush()
	return nil
}

// ListAvailability returns a profile's future slots.
func (s *Service) ListAvailability(ctx context.Context, profileID uuid.UUID) ([]*model.AvailabilitySlot, error) {
	slots, err := s.availabilityRepo.ListByProfile(ctx, profileID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	return slots, nil
}
