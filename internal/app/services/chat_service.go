package services

import (
	"context"
	"errors"
	"strings"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

type chatStore interface {
	CreateConversation(ctx context.Context, studentID, agentID int64) (int64, error)
	GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error)
	GetConversationByPair(ctx context.Context, studentID, agentID int64) (*models.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID int64) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.ChatMessage) (int64, error)
	ListMessages(ctx context.Context, conversationID int64, limit int) ([]*models.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error
}

// ChatService manages student-agent conversations and their messages.
type ChatService struct {
	chats chatStore
	users userGetter
}

// NewChatService creates a new ChatService
func NewChatService(chats chatStore, users userGetter) *ChatService {
	return &ChatService{
		chats: chats,
		users: users,
	}
}

// OpenConversation returns the student's thread with an agent, creating
// it on first contact
func (s *ChatService) OpenConversation(ctx context.Context, userID int64, req dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students open conversations")
	}

	agent, err := s.users.GetByID(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	if agent.RoleType != models.RoleAgent {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "the selected user is not an agent")
	}

	existing, err := s.chats.GetConversationByPair(ctx, userID, req.AgentID)
	if err == nil {
		resp := dto.FromConversation(existing)
		return &resp, nil
	}
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		return nil, err
	}

	id, err := s.chats.CreateConversation(ctx, userID, req.AgentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return s.conversationByID(ctx, userID, id)
		}
		return nil, err
	}
	logger.Info().Int64("studentUserID", userID).Int64("agentID", req.AgentID).Msg("Conversation opened")
	return s.conversationByID(ctx, userID, id)
}

// ListConversations returns every thread the user participates in
func (s *ChatService) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error) {
	conversations, err := s.chats.ListConversationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		items = append(items, dto.FromConversation(c))
	}
	return items, nil
}

// GetMessages returns a conversation's messages and marks the other
// side's messages as read
func (s *ChatService) GetMessages(ctx context.Context, userID, conversationID int64, limit int) ([]dto.ChatMessageResponse, error) {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.chats.ListMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.chats.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to mark messages read")
	}

	items := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, dto.FromChatMessage(m))
	}
	return items, nil
}

// SendMessage posts a message into a conversation the user belongs to
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID int64, content string) (*dto.ChatMessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "message content is required")
	}
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
	}
	if _, err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	resp := dto.FromChatMessage(msg)
	return &resp, nil
}

// Participants returns the two user ids on a conversation, for fanning
// out websocket deliveries
func (s *ChatService) Participants(ctx context.Context, conversationID int64) (int64, int64, error) {
	c, err := s.chats.GetConversationByID(ctx, conversationID)
	if err != nil {
		return 0, 0, err
	}
	return c.StudentID, c.AgentID, nil
}

func (s *ChatService) conversationByID(ctx context.Context, userID, id int64) (*dto.ConversationResponse, error) {
	return s.participantConversation(ctx, userID, id)
}

func (s *ChatService) participantConversation(ctx context.Context, userID, conversationID int64) (*dto.ConversationResponse, error) {
	c, err := s.chats.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if c.StudentID != userID && c.AgentID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	resp := dto.FromConversation(c)
	return &resp, nil
}
