package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

type notificationRepository struct {
	*BaseRepository
}

func NewNotificationRepository(base *BaseRepository) repository.NotificationRepository {
	return &notificationRepository{BaseRepository: base}
}

func (r *notificationRepository) Create(ctx context.Context, notif *model.Notification) error {
	defer r.track("insert", "notifications")()

	notif.ID = uuid.New()
	notif.CreatedAt = time.Now()
	notif.UpdatedAt = notif.CreatedAt

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
	`, notif.ID, notif.UserID, notif.Title, notif.Message, notif.Type, notif.CreatedAt, notif.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, int, error) {
	defer r.track("select", "notifications")()

	where := " WHERE user_id = $1"
	args := []interface{}{filters.UserID}

	if filters.UnreadOnly {
		where += " AND NOT read"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT count(*) FROM notifications"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, title, message, type, read, created_at, updated_at
		FROM notifications
	` + where + " ORDER BY created_at DESC"

	args = append(args, filters.Limit, filters.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	defer r.track("update", "notifications")()

	result, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE, updated_at = $1
		WHERE id = $2 AND user_id = $3
	`, time.Now(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
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

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	defer r.track("update", "notifications")()

	if _, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE, updated_at = $1
		WHERE user_id = $2 AND NOT read
	`, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
