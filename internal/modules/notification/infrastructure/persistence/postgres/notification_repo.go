package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
)

type PgNotificationRepository struct {
	db *sqlx.DB
}

func NewPgNotificationRepository(db *sqlx.DB) *PgNotificationRepository {
	return &PgNotificationRepository{db: db}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, priority, action_url, related_entity_id, related_entity_type, created_at)
		VALUES (:id, :user_id, :type, :title, :message, :is_read, :priority, :action_url, :related_entity_id, :related_entity_type, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, n)
	return err
}

// GetByUserID returns the user's notifications newest first, with the id as a
// stable tie-break for rows created in the same instant.
func (r *PgNotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *PgNotificationRepository) GetByID(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	query := `SELECT * FROM notifications WHERE id = $1`

	var n domain.Notification
	err := r.db.GetContext(ctx, &n, query, notificationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAsRead flips a notification to read and stamps read_at. The guard on
// is_read makes repeat calls no-ops, so read_at never moves after the first
// transition.
func (r *PgNotificationRepository) MarkAsRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND is_read = FALSE
	`
	if _, err := r.db.ExecContext(ctx, query, notificationID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, notificationID)
}

func (r *PgNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PgNotificationRepository) Delete(ctx context.Context, notificationID uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, notificationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *PgNotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
