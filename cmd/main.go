package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/auth/blacklist"
	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	transporthttp "taskboard/internal/transport/http"
	"taskboard/pkg/logger"
)

// seedAdmin guarantees an admin account exists; without one the admin-only
// registration endpoint could never be reached on an empty database.
func seedAdmin(ctx context.Context, users *repository.UserRepository, cfg *config.Config) error {
	if cfg.Admin.Password == "" {
		logger.Logger.Warn("ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	exists, err := users.ExistsByUsername(ctx, cfg.Admin.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, &domain.User{
		Username: cfg.Admin.Username,
		Password: hashed,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return err
	}

	logger.Logger.Info("Seeded admin account", zap.String("username", cfg.Admin.Username))
	return nil
}

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Log.Path, cfg.Log.Debug)
	defer logger.Logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DSN()))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	bl := blacklist.NewRedisBlacklist(redisClient)

	if err := seedAdmin(context.Background(), userRepo, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	if cfg.Tracing.Enabled {
		tp, err := middleware.InitTracer(cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("Failed to init tracer: %v", err)
		}
		defer tp.Shutdown(context.Background())
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Tracing())

	srv := transporthttp.NewServer(userRepo, taskRepo, bl, cfg.SecretKey)
	srv.Register(e)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.Origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(e)

	logger.Logger.Info("Server listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to serve: %v", err)
	}
}
