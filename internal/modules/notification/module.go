package notification

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mgoudin/learnhub/internal/modules/notification/application"
	"github.com/mgoudin/learnhub/internal/modules/notification/infrastructure/cache"
	"github.com/mgoudin/learnhub/internal/modules/notification/infrastructure/persistence/postgres"
	"github.com/mgoudin/learnhub/internal/modules/notification/infrastructure/websocket"
	notification_http "github.com/mgoudin/learnhub/internal/modules/notification/interfaces/http"
	"github.com/redis/go-redis/v9"
)

type Module struct {
	service *application.NotificationService
	handler *notification_http.NotificationHandler
	hub     *websocket.Hub
}

// NewModule wires the notification stack. redisClient may be nil, in which
// case unread counts always hit the database.
func NewModule(db *sqlx.DB, redisClient *redis.Client) *Module {
	repo := postgres.NewPgNotificationRepository(db)
	prefs := postgres.NewPgPreferenceRepository(db)

	var countCache application.CountCache
	if redisClient != nil {
		countCache = cache.NewRedisUnreadCache(redisClient, 30*time.Second)
	}

	hub := websocket.NewHub()
	go hub.Run()

	service := application.NewNotificationService(repo, prefs, countCache, hub)
	handler := notification_http.NewNotificationHandler(service, hub)

	return &Module{service: service, handler: handler, hub: hub}
}

func (m *Module) HTTPHandler() *notification_http.NotificationHandler {
	return m.handler
}

func (m *Module) Service() *application.NotificationService {
	return m.service
}

func (m *Module) Shutdown() {
	m.hub.Stop()
}
