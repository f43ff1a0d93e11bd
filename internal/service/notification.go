package service

import (
	"context"
	"log/slog"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

const NotificationPageLimit = 50

// NotificationService reads a user's notification feed. Creation happens as
// a side effect of the post, reply, and follow services.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// List returns the user's 50 most recent notifications.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.notifications.ListNotifications(ctx, userID, NotificationPageLimit)
}

// MarkRead marks one notification as read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, notificationID int64) error {
	n, err := s.notifications.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != callerID {
		return apperror.Forbidden("Cannot modify another user's notification")
	}
	return s.notifications.MarkNotificationRead(ctx, notificationID)
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notifications.CountUnreadNotifications(ctx, userID)
}
