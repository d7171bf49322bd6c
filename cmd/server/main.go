package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/logging"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/router"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

// @title Taskboard API
// @version 1.0
// @description Per-user task lists with JWT authentication and profile photos.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		fatal(logger, "database init", err)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		resetTables(logger, gormDB)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		fatal(logger, "auto-migrate", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient != nil {
		defer cacheClient.Close()
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, profile cache disabled until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		fatal(logger, "storage init", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService, store, cfg.DefaultPhotoURL, logger)
	userService := service.NewUserService(userRepo, cacheClient, cfg.CacheTTL, store, logger)
	taskService := service.NewTaskService(taskRepo, logger)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		logger,
		jwtService,
		handler.NewAuthHandler(authService, logger),
		handler.NewUserHandler(userService, logger),
		handler.NewTaskHandler(taskService, logger),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	addr := ":" + cfg.ServerPort
	go func() {
		logger.Info("server listening", "addr", addr, "db_driver", cfg.DBDriver, "storage", cfg.Storage.Backend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server start", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func resetTables(logger *slog.Logger, gormDB *gorm.DB) {
	for _, table := range []interface{}{&model.Task{}, &model.User{}} {
		if err := gormDB.Migrator().DropTable(table); err != nil {
			logger.Warn("failed to drop table (may not exist)", "error", err)
		}
	}
	logger.Info("tables dropped")
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
