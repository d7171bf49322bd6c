package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/db"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/logging"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

var sampleTasks = []service.TaskInput{
	{Title: "Read the README", Description: "Find out which endpoints exist."},
	{Title: "Upload a profile photo", Description: "PUT /api/user/profile with a multipart photo field."},
	{Title: "Create your first task"},
}

func main() {
	name := flag.String("name", "Demo User", "display name of the demo user")
	email := flag.String("email", "demo@example.com", "email of the demo user")
	password := flag.String("password", "demo1234", "password of the demo user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		fatal(logger, "connect to database", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		fatal(logger, "run migrations", err)
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		fatal(logger, "storage init", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(auth.DefaultBcryptCost),
		auth.NewJWTService(cfg.JWTSecret),
		store,
		cfg.DefaultPhotoURL,
		logger,
	)
	taskService := service.NewTaskService(repository.NewTaskRepository(gormDB), logger)

	created, err := seed(ctx, authService, taskService, service.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		fatal(logger, "seed", err)
	}

	logger.Info("seed completed", "email", *email, "tasks_created", created)
}

// seed registers the demo user and gives it the sample tasks. An existing
// demo user is left untouched.
func seed(ctx context.Context, authService service.AuthService, taskService service.TaskService, in service.RegisterInput) (int, error) {
	user, err := authService.Register(ctx, in)
	if errors.Is(err, apperrors.ErrEmailExists) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("register demo user: %w", err)
	}

	for i, t := range sampleTasks {
		if _, err := taskService.Create(ctx, user.ID, t); err != nil {
			return i, fmt.Errorf("create task %q: %w", t.Title, err)
		}
	}
	return len(sampleTasks), nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
