package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
	"github.com/lawlink/lawlink-api/internal/service/notification"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
)

// DirectoryCache is the slice of the lawyer service this package needs:
// review writes change directory ordering, so cached pages must go.
type DirectoryCache interface {
	InvalidateDirectoryCache()
}

type Service struct {
	repo       repository.ReviewRepository
	lawyerRepo repository.LawyerRepository
	notifSvc   notification.Service
	directory  DirectoryCache
}

func NewService(repo repository.ReviewRepository, lawyerRepo repository.LawyerRepository,
	notifSvc notification.Service, directory DirectoryCache) *Service {
	return &Service{
		repo:       repo,
		lawyerRepo: lawyerRepo,
		notifSvc:   notifSvc,
		directory:  directory,
	}
}

// Create records a client's review of a lawyer they have completed an
// appointment with. The insert, the profile's stored rating aggregates and
// the lawyer's notification commit in one transaction.
func (s *Service) Create(ctx context.Context, claims *model.TokenClaims, req *model.CreateReviewRequest) (*model.Review, error) {
	if claims.Role != model.RoleClient {
		return nil, apperrors.Forbidden("only clients can leave reviews", nil)
	}

	profile, err := s.lawyerRepo.GetProfile(ctx, req.LawyerProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("lawyer profile", err)
		}
		return nil, fmt.Errorf("failed to get lawyer profile: %w", err)
	}

	completed, err := s.repo.HasCompletedAppointment(ctx, claims.UserID, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check completed appointments: %w", err)
	}
	if !completed {
		return nil, apperrors.Validation("you can only review lawyers after a completed appointment", nil)
	}

	review := &model.Review{
		ClientID:        claims.UserID,
		LawyerProfileID: profile.ID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		Visible:         true,
	}

	notif := &model.Notification{
		UserID:  profile.UserID,
		Title:   "New review",
		Message: fmt.Sprintf("A client left you a %d-star review.", req.Rating),
		Type:    model.NotificationTypeSystem,
	}

	if err := s.repo.Create(ctx, review, notif); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("you have already reviewed this lawyer", err)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.directory.InvalidateDirectoryCache()
	s.notifSvc.Dispatch(ctx, []*model.Notification{notif})

	return review, nil
}

// List returns a filtered, paginated review listing.
func (s *Service) List(ctx context.Context, filters *model.ReviewFilters) ([]*model.Review, int, error) {
	filters.Normalize()

	reviews, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	return reviews, total, nil
}
