package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/email"
	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/logger"
	"github.com/lawlink/lawlink-api/pkg/messaging"
)

// Service serves notification reads and fans freshly committed notification
// rows out to realtime and email channels.
type Service interface {
	List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	// Dispatch publishes already-persisted notifications to the realtime
	// broker and email. Returns before delivery completes. Best effort:
	// failures are logged, never surfaced, because the rows are committed.
	Dispatch(ctx context.Context, notifs []*model.Notification)
}

type service struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc email.Service
	broker   messaging.Broker
	logger   *logger.Logger
}

func NewService(repo repository.NotificationRepository, userRepo repository.UserRepository,
	emailSvc email.Service, broker messaging.Broker, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		broker:   broker,
		logger:   log,
	}
}

func (s *service) List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, int, error) {
	filters.Normalize()
	notifs, total, err := s.repo.ListForUser(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifs, total, nil
}

func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("notification", err)
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *service) Dispatch(ctx context.Context, notifs []*model.Notification) {
	if len(notifs) == 0 {
		return
	}
	// Delivery runs off the request path; SMTP round trips must not hold
	// the response. The detached context survives the request ending.
	go s.deliver(context.WithoutCancel(ctx), notifs)
}

func (s *service) deliver(ctx context.Context, notifs []*model.Notification) {
	for _, n := range notifs {
		event := messaging.Event{
			Type:       string(n.Type),
			OccurredAt: time.Now().Unix(),
			Payload:    n,
		}
		if err := s.broker.Publish(ctx, messaging.ChannelNotifications, event); err != nil {
			s.logger.Error(err, "failed to publish notification event",
				"notification_id", n.ID.String())
		}

		user, err := s.userRepo.Get(ctx, n.UserID)
		if err != nil {
			s.logger.Error(err, "failed to resolve notification recipient",
				"user_id", n.UserID.String())
			continue
		}
		if err := s.emailSvc.SendNotification(ctx, user.Email, user.Name, n.Title, n.Message); err != nil {
			s.logger.Error(err, "failed to send notification email",
				"user_id", n.UserID.String())
		}
	}
}
