package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/okaradag/unipath/internal/app/services"
)

// MessageHandler persists WebSocket messages through the chat service
type MessageHandler struct {
	chatService *services.ChatService
	hub         *Hub
	logger      zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(chatService *services.ChatService, hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		chatService: chatService,
		hub:         hub,
		logger:      logger,
	}
}

// Start begins processing messages from the hub
func (h *MessageHandler) Start() {
	go h.processMessages()
}

// processMessages listens for messages and saves them to the database
func (h *MessageHandler) processMessages() {
	messageChan := make(chan *Message, 64)
	h.hub.AddMessageListener(messageChan)

	for message := range messageChan {
		if message.Type != "message" {
			continue
		}
		h.persistMessage(message)
	}
}

// persistMessage saves a chat message to the database
func (h *MessageHandler) persistMessage(message *Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved, err := h.chatService.SendMessage(ctx, message.SenderID, message.ConversationID, message.Content)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("conversationID", message.ConversationID).
			Int64("senderID", message.SenderID).
			Msg("Failed to persist chat message")
		return
	}

	h.logger.Debug().
		Int64("messageID", saved.ID).
		Int64("conversationID", saved.ConversationID).
		Msg("Chat message persisted")
}
