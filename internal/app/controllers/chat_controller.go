package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/services"
	"github.com/okaradag/unipath/internal/middleware"
)

// ChatController handles student-agent messaging endpoints
type ChatController struct {
	chatService *services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// CreateConversation opens (or returns) a conversation with an agent
// @Summary Open a conversation
// @Description Opens a conversation between the authenticated student and an agent. Returns the existing thread when one is already open.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConversationRequest true "Agent to talk to"
// @Success 201 {object} dto.APIResponse{data=dto.ConversationResponse} "Conversation opened"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only students can open conversations"
// @Failure 404 {object} dto.ErrorResponse "Agent not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /conversations [post]
func (c *ChatController) CreateConversation(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.chatService.OpenConversation(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// ListConversations lists the current user's conversations
// @Summary List conversations
// @Description Retrieves all conversations the authenticated user participates in, most recently active first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	response, err := c.chatService.ListConversations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetMessages retrieves messages in a conversation
// @Summary Get conversation messages
// @Description Retrieves messages oldest first and marks unread messages from the other side as read
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param limit query int false "Maximum number of messages to return"
// @Success 200 {object} dto.APIResponse{data=[]dto.ChatMessageResponse} "Messages retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid conversation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /conversations/{id}/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "Conversation ID")
	if !ok {
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	response, err := c.chatService.GetMessages(ctx, userID, id, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// SendMessage posts a message into a conversation
// @Summary Send a message
// @Description Posts a message into a conversation the authenticated user participates in
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.ChatMessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /conversations/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "Conversation ID")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	response, err := c.chatService.SendMessage(ctx, userID, id, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}
