package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Mr7Gabriel/clone-x-app/internal/apperror"
	"github.com/Mr7Gabriel/clone-x-app/internal/model"
	"github.com/Mr7Gabriel/clone-x-app/internal/repository"
)

// MessageService handles direct messages between users.
type MessageService struct {
	messages repository.MessageRepository
	logger   *slog.Logger
}

func NewMessageService(messages repository.MessageRepository, logger *slog.Logger) *MessageService {
	return &MessageService{messages: messages, logger: logger}
}

// Send delivers a message from senderID to receiverID.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID int64, content string) (*model.Message, error) {
	if receiverID == 0 || strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "Receiver ID and content are required")
	}

	m := &model.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := s.messages.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("message sent",
		slog.Int64("message_id", m.ID),
		slog.Int64("sender_id", senderID),
		slog.Int64("receiver_id", receiverID),
	)
	return m, nil
}

// Conversations returns the latest message per counterpart, newest
// conversation first.
func (s *MessageService) Conversations(ctx context.Context, userID int64) ([]model.Message, error) {
	return s.messages.ListConversations(ctx, userID)
}

// Conversation returns the full thread between two users, oldest first.
// Fetching the thread marks the other user's messages as read.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID int64) ([]model.Message, error) {
	return s.messages.ListConversation(ctx, userID, otherID)
}
