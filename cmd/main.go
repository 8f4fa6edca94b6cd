package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pgportal/backend/internal/api/handler"
	"pgportal/backend/internal/api/middleware"
	"pgportal/backend/internal/assignment"
	"pgportal/backend/internal/auth"
	"pgportal/backend/internal/chatbot"
	"pgportal/backend/internal/config"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
	"pgportal/backend/pkg/logging"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true, DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		slog.Error("failed to connect PostgreSQL", "error", err)
		os.Exit(1)
	}

	// 2. Redis. It only backs the chat aggregate cache, so a failed
	// ping disables caching instead of killing the server.
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Warn("Redis unavailable, chat aggregate cache disabled", "addr", cfg.RedisAddr, "error", err)
		rdb = nil
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Complaint{},
		&models.RentRecord{},
	)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("database connection established, migrations complete")
	return db, rdb
}

func main() {
	logging.Setup()
	slog.Info("starting PG Portal backend")

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// 1. Dependencies and storage
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Domain services
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	rentSvc := rent.NewService(s)
	assignSvc := assignment.NewService(s, rentSvc)
	responder := chatbot.NewResponder(s)

	// 3. Gin and routing
	r := gin.Default()
	r.Use(middleware.Metrics())

	h := handler.NewHandler(s, rentSvc, assignSvc, responder, jwtManager)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	slog.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
