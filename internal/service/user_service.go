package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// ProfileUpdate lists the profile changes requested by a user. Empty Name
// and nil Photo leave the current values in place.
type ProfileUpdate struct {
	Name  string
	Photo *Photo
}

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	cacheTTL time.Duration
	photos   *photoUploader
	logger   *slog.Logger
}

// NewUserService builds a UserService with repository, cache and photo store.
func NewUserService(repo repository.UserRepository, cache *cache.Client, cacheTTL time.Duration, store storage.BlobStore, logger *slog.Logger) UserService {
	return &userService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		photos:   newPhotoUploader(store, logger),
		logger:   logger,
	}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, s.cacheTTL)
	return user, nil
}

// UpdateProfile changes name and/or photo. A replaced photo is removed from
// the store afterwards on a best-effort basis.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*model.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	previousPhoto := user.Photo
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}

	var newPhoto string
	if in.Photo != nil {
		if newPhoto, err = s.photos.save(ctx, in.Photo); err != nil {
			return nil, err
		}
		user.Photo = newPhoto
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.photos.discard(ctx, newPhoto)
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	if newPhoto != "" && previousPhoto != newPhoto {
		s.photos.discard(ctx, previousPhoto)
	}

	return user, nil
}

func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
