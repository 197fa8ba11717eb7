package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
	"github.com/mgoudin/learnhub/internal/modules/notification/infrastructure/websocket"
)

// CountCache caches per-user unread counts. Implementations may drop entries
// at any time; the repository count is always authoritative.
type CountCache interface {
	Get(ctx context.Context, userID uuid.UUID) (int, bool)
	Set(ctx context.Context, userID uuid.UUID, count int)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// CreateParams carries the fields of a new notification.
type CreateParams struct {
	UserID            uuid.UUID
	Type              domain.NotificationType
	Title             string
	Message           string
	Priority          domain.Priority
	ActionURL         string
	RelatedEntityID   *uuid.UUID
	RelatedEntityType string
}

type NotificationService struct {
	repo  domain.NotificationRepository
	prefs domain.PreferenceRepository
	cache CountCache
	hub   *websocket.Hub
}

func NewNotificationService(repo domain.NotificationRepository, prefs domain.PreferenceRepository, cache CountCache, hub *websocket.Hub) *NotificationService {
	return &NotificationService{repo: repo, prefs: prefs, cache: cache, hub: hub}
}

// Create stores a notification and pushes it to any open socket of the owner.
func (s *NotificationService) Create(ctx context.Context, params CreateParams) (*domain.Notification, error) {
	if !params.Type.Valid() {
		return nil, domain.ErrInvalidType
	}
	notification := &domain.Notification{
		ID:                uuid.New(),
		UserID:            params.UserID,
		Type:              params.Type,
		Title:             params.Title,
		Message:           params.Message,
		IsRead:            false,
		Priority:          params.Priority,
		ActionURL:         params.ActionURL,
		RelatedEntityID:   params.RelatedEntityID,
		RelatedEntityType: params.RelatedEntityType,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	s.invalidateCount(ctx, params.UserID)

	if s.hub != nil {
		if msgBytes, err := json.Marshal(notification); err == nil {
			s.hub.SendToUser(params.UserID, msgBytes)
		}
	}
	return notification, nil
}

// Dispatch creates the notification only when the owner's preference for the
// type allows in-app delivery. A user with no stored preference gets the
// default (enabled). Returns the notification, or nil when suppressed.
func (s *NotificationService) Dispatch(ctx context.Context, params CreateParams) (*domain.Notification, error) {
	pref, err := s.prefs.Get(ctx, params.UserID, params.Type)
	if err != nil {
		return nil, err
	}
	if pref != nil && (!pref.IsEnabled || pref.DeliveryMethod == domain.DeliveryEmail) {
		return nil, nil
	}
	return s.Create(ctx, params)
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, unreadOnly)
}

// UnreadCount is cache-aside: serve from the cache when present, otherwise
// recount from the repository and prime the cache.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if s.cache != nil {
		if count, ok := s.cache.Get(ctx, userID); ok {
			return count, nil
		}
	}
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, userID, count)
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	notification, err := s.repo.MarkAsRead(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, notification.UserID)
	return notification, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateCount(ctx, userID)
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, notificationID uuid.UUID) error {
	notification, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, notificationID); err != nil {
		return err
	}
	s.invalidateCount(ctx, notification.UserID)
	return nil
}

func (s *NotificationService) GetUserPreferences(ctx context.Context, userID uuid.UUID) ([]domain.Preference, error) {
	return s.prefs.GetByUserID(ctx, userID)
}

func (s *NotificationService) UpdatePreference(ctx context.Context, userID uuid.UUID, t domain.NotificationType, isEnabled bool, method domain.DeliveryMethod) (*domain.Preference, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidType
	}
	if method == "" {
		method = domain.DeliveryInApp
	}
	pref, err := s.prefs.Get(ctx, userID, t)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		p := domain.DefaultPreference(userID, t)
		pref = &p
	}
	pref.IsEnabled = isEnabled
	pref.DeliveryMethod = method
	if err := s.prefs.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

func (s *NotificationService) invalidateCount(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
