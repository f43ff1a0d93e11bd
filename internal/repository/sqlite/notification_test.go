package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
)

func TestCreateAndListNotifications(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	recipient := createTestUser(t, db, "n_recipient")
	actor := createTestUser(t, db, "n_actor")
	post := createTestPost(t, db, recipient.ID, "liked post")

	if err := db.CreateNotification(ctx, &model.Notification{
		UserID:  recipient.ID,
		Type:    model.NotificationLike,
		ActorID: actor.ID,
		PostID:  &post.ID,
	}); err != nil {
		t.Fatalf("CreateNotification(like) error = %v", err)
	}
	if err := db.CreateNotification(ctx, &model.Notification{
		UserID:  recipient.ID,
		Type:    model.NotificationFollow,
		ActorID: actor.ID,
	}); err != nil {
		t.Fatalf("CreateNotification(follow) error = %v", err)
	}

	notifications, err := db.ListNotifications(ctx, recipient.ID, 50)
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("ListNotifications() returned %d, want 2", len(notifications))
	}

	// Newest first: the follow came second.
	if notifications[0].Type != model.NotificationFollow {
		t.Errorf("first notification type = %q, want follow", notifications[0].Type)
	}
	if notifications[0].PostID != nil {
		t.Error("follow notification should have nil PostID")
	}
	if notifications[1].PostID == nil || *notifications[1].PostID != post.ID {
		t.Errorf("like notification PostID = %v, want %d", notifications[1].PostID, post.ID)
	}
	if notifications[0].ActorUsername != "n_actor" {
		t.Errorf("actor join Username = %q", notifications[0].ActorUsername)
	}
}

func TestListNotifications_RespectsLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	recipient := createTestUser(t, db, "nl_recipient")
	actor := createTestUser(t, db, "nl_actor")

	for i := 0; i < 5; i++ {
		if err := db.CreateNotification(ctx, &model.Notification{
			UserID:  recipient.ID,
			Type:    model.NotificationFollow,
			ActorID: actor.ID,
		}); err != nil {
			t.Fatalf("CreateNotification() error = %v", err)
		}
	}

	notifications, err := db.ListNotifications(ctx, recipient.ID, 3)
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(notifications) != 3 {
		t.Errorf("ListNotifications(limit=3) returned %d", len(notifications))
	}
}

func TestMarkNotificationReadAndUnreadCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	recipient := createTestUser(t, db, "nr_recipient")
	actor := createTestUser(t, db, "nr_actor")

	n := &model.Notification{UserID: recipient.ID, Type: model.NotificationFollow, ActorID: actor.ID}
	if err := db.CreateNotification(ctx, n); err != nil {
		t.Fatalf("CreateNotification() error = %v", err)
	}

	count, err := db.CountUnreadNotifications(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("CountUnreadNotifications() error = %v", err)
	}
	if count != 1 {
		t.Errorf("unread count = %d, want 1", count)
	}

	if err := db.MarkNotificationRead(ctx, n.ID); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}

	count, _ = db.CountUnreadNotifications(ctx, recipient.ID)
	if count != 0 {
		t.Errorf("unread count after mark = %d, want 0", count)
	}

	got, err := db.GetNotificationByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetNotificationByID() error = %v", err)
	}
	if !got.IsRead {
		t.Error("notification should be read")
	}
}

func TestMarkNotificationRead_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.MarkNotificationRead(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("MarkNotificationRead() error = %v, want ErrNotFound", err)
	}
}
