// Package notification is the client half of the notification subsystem: a
// typed HTTP facade, an in-memory store with optimistic mutations, a polling
// controller, and pure filtering/pagination over the local list. Both the
// admin console and the student portal consume this one package instead of
// each keeping its own copy of the logic.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
)

// APIError is a non-2xx response from the notification backend. Message is
// the server's `{message}` body when one was sent, else the status line.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notification api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// TokenSource returns the current bearer token, or "" when the user is not
// authenticated. An empty token never blocks a request; the server answers
// 401 and the caller sees it as an APIError.
type TokenSource func() string

// Service is the typed facade over the notification HTTP contract.
type Service struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

type Option func(*Service)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.httpClient = c }
}

func WithTokenSource(ts TokenSource) Option {
	return func(s *Service) { s.token = ts }
}

func NewService(baseURL string, opts ...Option) *Service {
	s := &Service{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		token:      func() string { return "" },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest mirrors the POST /notifications body.
type CreateRequest struct {
	UserID            uuid.UUID               `json:"userId"`
	Type              domain.NotificationType `json:"type"`
	Title             string                  `json:"title"`
	Message           string                  `json:"message"`
	Priority          domain.Priority         `json:"priority"`
	ActionURL         string                  `json:"actionUrl,omitempty"`
	RelatedEntityID   *uuid.UUID              `json:"relatedEntityId,omitempty"`
	RelatedEntityType string                  `json:"relatedEntityType,omitempty"`
}

func (s *Service) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	path := fmt.Sprintf("/notifications/user/%s?unreadOnly=%s", userID, strconv.FormatBool(unreadOnly))
	var notifications []domain.Notification
	if err := s.do(ctx, http.MethodGet, path, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/user/%s/unread-count", userID), nil, &count)
	return count, err
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Notification, error) {
	var notification domain.Notification
	if err := s.do(ctx, http.MethodPost, "/notifications", req, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%s/mark-as-read", notificationID), nil, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/user/%s/mark-all-as-read", userID), nil, nil)
}

func (s *Service) Delete(ctx context.Context, notificationID uuid.UUID) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/notifications/%s", notificationID), nil, nil)
}

func (s *Service) Preferences(ctx context.Context, userID uuid.UUID) ([]domain.Preference, error) {
	var prefs []domain.Preference
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/preferences/%s", userID), nil, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *Service) UpdatePreference(ctx context.Context, userID uuid.UUID, t domain.NotificationType, isEnabled bool, method domain.DeliveryMethod) (*domain.Preference, error) {
	body := map[string]any{"isEnabled": isEnabled, "deliveryMethod": method}
	var pref domain.Preference
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/preferences/%s/%s", userID, t), body, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *Service) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := s.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		return &APIError{Status: resp.StatusCode, Message: resp.Status}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Message}
}
