package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/mgoudin/learnhub/internal/gateway"
	"github.com/mgoudin/learnhub/internal/gateway/middleware"
	"github.com/mgoudin/learnhub/internal/modules/auth"
	"github.com/mgoudin/learnhub/internal/modules/notification"
	"github.com/mgoudin/learnhub/internal/shared/infrastructure/config"
	"github.com/mgoudin/learnhub/internal/shared/infrastructure/database"
	"github.com/mgoudin/learnhub/pkg/migration"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := migration.AutoMigrate(cfg.Database.URL(), cfg.Server.MigrationsPath, logger); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedis(cfg.Redis.RedisConfig)
		if err != nil {
			// The unread-count cache is optional; run without it.
			log.Printf("Redis unavailable, continuing without unread-count cache: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	authModule := auth.NewModule(db, cfg.JWT.Secret, cfg.JWT.Expiry)
	notificationModule := notification.NewModule(db, redisClient)
	defer notificationModule.Shutdown()

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:         authModule.HTTPHandler(),
		AuthMiddleware:      authMiddleware,
		NotificationHandler: notificationModule.HTTPHandler(),
	})

	var handler http.Handler = mux
	handler = middleware.PrometheusMiddleware(handler)
	handler = middleware.CORSMiddleware(handler, cfg.Server.AllowedOrigins)

	server := gateway.NewServer(cfg.Server.Port, handler)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
