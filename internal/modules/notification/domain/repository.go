package domain

import (
	"context"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	GetByID(ctx context.Context, notificationID uuid.UUID) (*Notification, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) (*Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, notificationID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Preference, error)
	Get(ctx context.Context, userID uuid.UUID, t NotificationType) (*Preference, error)
	Upsert(ctx context.Context, pref *Preference) error
}
