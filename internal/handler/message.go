package handler

import (
	"log/slog"
	"net/http"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/service"
)

// MessageHandler exposes direct messages.
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

// HandleSend delivers a message from the caller.
//
// HTTP: POST /api/messages
func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	message, err := h.messages.Send(r.Context(), identity.UserID, req.ReceiverID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": message})
}

// HandleConversations returns the latest message per counterpart.
//
// HTTP: GET /api/users/{userID}/messages
func (h *MessageHandler) HandleConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.messages.Conversations(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "messages": messages})
}

// HandleConversation returns the thread between two users and marks the
// other side's messages as read.
//
// HTTP: GET /api/users/{userID}/messages/{otherUserID}
func (h *MessageHandler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}
	otherID, err := urlID(r, "otherUserID")
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.messages.Conversation(r.Context(), userID, otherID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "messages": messages})
}
