package gateway

import (
	"net/http"

	"github.com/mgoudin/learnhub/internal/gateway/middleware"
	auth_http "github.com/mgoudin/learnhub/internal/modules/auth/interfaces/http"
	notification_http "github.com/mgoudin/learnhub/internal/modules/notification/interfaces/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler         *auth_http.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleWare
	NotificationHandler *notification_http.NotificationHandler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := func(h http.HandlerFunc) http.Handler {
		return config.AuthMiddleware.RequireAuth(h)
	}

	// Health Check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Auth Routes
	mux.HandleFunc("POST /register", config.AuthHandler.Register)
	mux.HandleFunc("POST /login", config.AuthHandler.Login)
	mux.Handle("GET /me", requireAuth(config.AuthHandler.Me))

	// Notification Routes
	n := config.NotificationHandler
	mux.Handle("GET /notifications/user/{userId}", requireAuth(n.ListNotifications))
	mux.Handle("GET /notifications/user/{userId}/unread-count", requireAuth(n.UnreadCount))
	mux.Handle("POST /notifications", requireAuth(n.Create))
	mux.Handle("PUT /notifications/{id}/mark-as-read", requireAuth(n.MarkAsRead))
	mux.Handle("PUT /notifications/user/{userId}/mark-all-as-read", requireAuth(n.MarkAllAsRead))
	mux.Handle("DELETE /notifications/{id}", requireAuth(n.Delete))
	mux.Handle("GET /notifications/preferences/{userId}", requireAuth(n.GetPreferences))
	mux.Handle("PUT /notifications/preferences/{userId}/{type}", requireAuth(n.UpdatePreference))
	mux.Handle("GET /notifications/ws", requireAuth(n.Subscribe))

	return mux
}
