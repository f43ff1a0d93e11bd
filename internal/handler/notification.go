package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/service"
)

// NotificationHandler exposes the notification feed.
type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *slog.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// HandleList returns a user's most recent notifications.
//
// HTTP: GET /api/users/{userID}/notifications
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	notifications, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "notifications": notifications})
}

// HandleMarkRead marks one of the caller's notifications as read.
//
// HTTP: PATCH /api/notifications/{notificationID}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	notificationID, err := urlID(r, "notificationID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), identity.UserID, notificationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}

// HandleUnreadCount returns how many notifications are unread.
//
// HTTP: GET /api/users/{userID}/notifications/unread-count
func (h *NotificationHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := h.notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "count": count})
}
