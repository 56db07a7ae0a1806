package dto

import (
	"time"

	"github.com/okaradag/unipath/internal/app/models"
)

// CreateConversationRequest opens a thread with an agent
type CreateConversationRequest struct {
	AgentID int64 `json:"agentId" binding:"required,min=1"`
}

// SendMessageRequest posts a message into a conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// ConversationResponse represents a conversation thread
type ConversationResponse struct {
	ID          int64                `json:"id"`
	StudentID   int64                `json:"studentId"`
	AgentID     int64                `json:"agentId"`
	LastMessage *ChatMessageResponse `json:"lastMessage,omitempty"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ChatMessageResponse represents a single chat message
type ChatMessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WebSocket frame types exchanged on /ws/chat
const (
	WSTypeMessage = "message"
	WSTypeError   = "error"
)

// WSInbound is a frame received from a connected client
type WSInbound struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversationId"`
	Content        string `json:"content"`
}

// WSOutbound is a frame pushed to connected clients
type WSOutbound struct {
	Type    string               `json:"type"`
	Message *ChatMessageResponse `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// FromConversation converts a conversation model to its response form
func FromConversation(c *models.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        c.ID,
		StudentID: c.StudentID,
		AgentID:   c.AgentID,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromChatMessage converts a chat message model to its response form
func FromChatMessage(m *models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
