package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
)

func TestMarkRead_OwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	n := &model.Notification{UserID: alice.ID, Type: model.NotificationFollow, ActorID: bob.ID}
	if err := db.CreateNotification(ctx, n); err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkRead(ctx, bob.ID, n.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("cross-user mark-read = %v, want forbidden", err)
	}

	if err := svc.MarkRead(ctx, alice.ID, n.ID); err != nil {
		t.Fatal(err)
	}

	count, err := svc.UnreadCount(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("unread count = %d after mark-read, want 0", count)
	}
}

func TestMarkRead_Unknown(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, testLogger())
	alice := createTestUser(t, db, "alice")

	err := svc.MarkRead(context.Background(), alice.ID, 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("mark-read on missing id = %v, want not found", err)
	}
}
