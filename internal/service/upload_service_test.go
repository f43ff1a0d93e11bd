package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository/sqlite"
	"github.com/Mr7Gabriel/clone-x-app/internal/upload"
)

func newUploadService(t *testing.T) (*UploadService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	store, err := upload.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewUploadService(store, db, testLogger()), db
}

func TestSaveImage_RejectsNonImages(t *testing.T) {
	svc, db := newUploadService(t)
	alice := createTestUser(t, db, "alice")

	_, err := svc.SaveImage(context.Background(), alice.ID, ImageProfile, "notes.txt", "text/plain", strings.NewReader("hi"))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("non-image upload = %v, want validation error", err)
	}
}

func TestSaveImage_ProfileUpdatesUser(t *testing.T) {
	svc, db := newUploadService(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")

	ref, err := svc.SaveImage(ctx, alice.ID, ImageProfile, "avatar.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(ref, "uploads/users/") {
		t.Errorf("ref = %q, want uploads/users/ prefix", ref)
	}

	user, err := db.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.ProfileImage != ref {
		t.Errorf("profile_image = %q, want %q", user.ProfileImage, ref)
	}
	if user.BannerImage != "" {
		t.Errorf("banner_image = %q, want unchanged", user.BannerImage)
	}
}

func TestSaveImage_PostDoesNotTouchUser(t *testing.T) {
	svc, db := newUploadService(t)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")

	ref, err := svc.SaveImage(ctx, alice.ID, ImagePost, "pic.jpg", "image/jpeg", strings.NewReader("jpg-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if ref == "" {
		t.Fatal("expected a stored path")
	}

	user, err := db.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.ProfileImage != "" || user.BannerImage != "" {
		t.Error("post image upload modified the user row")
	}
}
