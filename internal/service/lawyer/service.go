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
	"github.com/lawlink/lawlink-api/pkg/metrics"
)

type Service struct {
	repo             repository.LawyerRepository
	serviceRepo      repository.ServiceRepository
	availabilityRepo repository.AvailabilityRepository
	cache            *searchCache
	metrics          *metrics.Metrics
}

func NewService(repo repository.LawyerRepository, serviceRepo repository.ServiceRepository,
	availabilityRepo repository.AvailabilityRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:             repo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		cache:            newSearchCache(30 * time.Second),
		metrics:          m,
	}
}

// CreateProfile registers the calling lawyer's public profile.
func (s *Service) CreateProfile(ctx context.Context, claims *model.TokenClaims, req *model.CreateLawyerProfileRequest) (*model.LawyerProfile, error) {
	if claims.Role != model.RoleLawyer {
		return nil, apperrors.Forbidden("only lawyers can create a profile", nil)
	}

	if _, err := s.repo.GetProfileByUserID(ctx, claims.UserID); err == nil {
		return nil, apperrors.Conflict("profile already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	profile := &model.LawyerProfile{
		UserID:          claims.UserID,
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
		FirmName:        req.FirmName,
		Location:        req.Location,
		HourlyRate:      req.HourlyRate,
		YearsExperience: req.YearsExperience,
		Bio:             req.Bio,
		Education:       req.Education,
		Certifications:  req.Certifications,
		Languages:       req.Languages,
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("license number already registered", err)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.cache.Flush()
	return profile, nil
}

// GetProfile returns a profile by id or, when userID is set, by its owner.
func (s *Service) GetProfile(ctx context.Context, id, userID uuid.UUID) (*model.LawyerProfile, error) {
	var profile *model.LawyerProfile
	var err error

	switch {
	case userID != uuid.Nil:
		profile, err = s.repo.GetProfileByUserID(ctx, userID)
	default:
		profile, err = s.repo.GetProfile(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lawyer profile", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
// License number and verification flag are not updatable here.
func (s *Service) UpdateProfile(ctx context.Context, claims *model.TokenClaims, req *model.UpdateLawyerProfileRequest) (*model.LawyerProfile, error) {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return nil, err
	}

	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.FirmName != nil {
		profile.FirmName = *req.FirmName
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Education != nil {
		profile.Education = *req.Education
	}
	if req.Certifications != nil {
		profile.Certifications = *req.Certifications
	}
	if req.Languages != nil {
		profile.Languages = *req.Languages
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.cache.Flush()
	return profile, nil
}

// DeleteProfile removes the caller's profile. Profiles with live
// appointments cannot be deleted.
func (s *Service) DeleteProfile(ctx context.Context, claims *model.TokenClaims) error {
	profile, err := s.ownProfile(ctx, claims)
	if err != nil {
		return err
	}

	active, err := s.repo.CountActiveAppointments(ctx, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to count active appointments: %w", err)
	}
	if active > 0 {
		return apperrors.Conflict("profile has pending or confirmed appointments", nil)
	}

	if err := s.repo.DeleteProfile(ctx, profile.ID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s.cache.Flush()
	return nil
}

// Search runs the directory query, serving repeated queries from a short
// TTL cache.
func (s *Service) Search(ctx context.Context, filters *model.LawyerSearchFilters) (*model.LawyerSearchPage, error) {
	filters.Normalize()

	key := s.cache.Key(filters)
	if page, ok := s.cache.Get(key); ok {
		s.metrics.DirectoryCacheHits.Inc()
		return page, nil
	}
	s.metrics.DirectoryCacheMisses.Inc()

	start := time.Now()
	results, total, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search lawyers: %w", err)
	}
	s.metrics.DirectorySearchDuration.Observe(time.Since(start).Seconds())

	if results == nil {
		results = []*model.LawyerSearchResult{}
	}
	page := &model.LawyerSearchPage{
		Results: results,
		Total:   total,
		Page:    filters.Page,
		Limit:   filters.Limit,
		HasMore: filters.Offset()+filters.Limit < total,
	}

	s.cache.Set(key, page)
	return page, nil
}

func (s *Service) ownProfile(ctx context.Context, claims *model.TokenClaims) (*model.LawyerProfile, error) {
	if claims.Role != model.RoleLawyer {
		return nil, apperrors.Forbidden("lawyer account required", nil)
	}
	profile, err := s.repo.GetProfileByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lawyer profile", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
