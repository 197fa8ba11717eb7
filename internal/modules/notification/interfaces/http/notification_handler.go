package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/gateway/middleware"
	"github.com/mgoudin/learnhub/internal/modules/notification/application"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
	"github.com/mgoudin/learnhub/internal/modules/notification/infrastructure/websocket"
)

type NotificationHandler struct {
	service *application.NotificationService
	hub     *websocket.Hub
}

func NewNotificationHandler(service *application.NotificationService, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub}
}

// writeError emits the `{message}` error body every client of this API
// decodes on non-2xx responses.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("notification handler: encode response: %v", err)
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

// Subscribe upgrades to a websocket carrying the caller's own notifications.
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	websocket.ServeWs(h.hub, w, r, userID)
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unreadOnly"))

	notifications, err := h.service.GetUserNotifications(r.Context(), userID, unreadOnly)
	if err != nil {
		log.Printf("notification handler: list: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch notifications")
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// UnreadCount returns the bare integer, matching what the pollers expect.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		log.Printf("notification handler: unread count: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get unread count")
		return
	}
	writeJSON(w, http.StatusOK, count)
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	params, err := req.ToParams()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notification, err := h.service.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidType) {
			writeError(w, http.StatusBadRequest, "invalid notification type")
			return
		}
		log.Printf("notification handler: create: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create notification")
		return
	}
	writeJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	notification, err := h.service.MarkAsRead(r.Context(), notificationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		log.Printf("notification handler: mark as read: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to mark notification as read")
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		log.Printf("notification handler: mark all as read: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to mark all notifications as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.service.Delete(r.Context(), notificationID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		log.Printf("notification handler: delete: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *NotificationHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	prefs, err := h.service.GetUserPreferences(r.Context(), userID)
	if err != nil {
		log.Printf("notification handler: get preferences: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *NotificationHandler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	notificationType := domain.NotificationType(r.PathValue("type"))

	var req UpdatePreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pref, err := h.service.UpdatePreference(r.Context(), userID, notificationType, req.IsEnabled, domain.DeliveryMethod(req.DeliveryMethod))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidType) {
			writeError(w, http.StatusBadRequest, "invalid notification type")
			return
		}
		log.Printf("notification handler: update preference: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update preference")
		return
	}
	writeJSON(w, http.StatusOK, pref)
}
