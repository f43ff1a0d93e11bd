package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
	"github.com/Mr7Gabriel/clone-x-app/internal/upload"
)

// ImageKind selects which image slot an upload fills. Profile and banner
// uploads also update the user row; post images are only stored, the
// returned path goes into the post on creation.
type ImageKind string

const (
	ImageProfile ImageKind = "profileImage"
	ImageBanner  ImageKind = "bannerImage"
	ImagePost    ImageKind = "postImage"
)

// UploadService stores user images on disk and records profile and banner
// paths on the user row.
type UploadService struct {
	store  *upload.Store
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUploadService(store *upload.Store, users repository.UserRepository, logger *slog.Logger) *UploadService {
	return &UploadService{store: store, users: users, logger: logger}
}

// SaveImage validates and stores an uploaded image, returning its public
// path. contentType must be an image mime type.
func (s *UploadService) SaveImage(ctx context.Context, userID int64, kind ImageKind, filename, contentType string, src io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperror.ValidationFailed("file", "Only image files are allowed!")
	}

	ref, err := s.store.Save(userID, string(kind), filepath.Ext(filename), src)
	if err != nil {
		return "", err
	}

	switch kind {
	case ImageProfile:
		err = s.users.SetProfileImage(ctx, userID, ref)
	case ImageBanner:
		err = s.users.SetBannerImage(ctx, userID, ref)
	}
	if err != nil {
		return "", err
	}

	s.logger.Info("image uploaded",
		slog.Int64("user_id", userID),
		slog.String("kind", string(kind)),
		slog.String("path", ref),
	)
	return ref, nil
}
