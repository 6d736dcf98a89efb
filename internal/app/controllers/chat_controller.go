package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/services"
	"github.com/tutorlink/tutorlink/internal/middleware"
)

// ChatController handles rooms and messages
type ChatController struct {
	chatService *services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// OpenRoom opens or returns the caller's room with a tutor
// @Summary Open a chat room
// @Description Returns the existing room for the (caller, tutor) pair or creates it
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Tutor to chat with"
// @Success 200 {object} dto.APIResponse{data=dto.RoomResponse} "Room"
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Router /rooms [post]
func (c *ChatController) OpenRoom(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	room, err := c.chatService.OpenRoom(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: room})
}

// ListRooms returns the caller's rooms
// @Summary List chat rooms
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RoomResponse} "Rooms"
// @Router /rooms [get]
func (c *ChatController) ListRooms(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	rooms, err := c.chatService.ListRooms(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rooms})
}

// SendMessage posts a message into a room
// @Summary Send a message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.SendMessageRequest true "Message text"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.chatService.SendMessage(ctx.Request.Context(), roomID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: message})
}

// ListMessages returns a room's messages
// @Summary List messages
// @Description Returns the room history oldest first. Deleted messages keep their place with a deletion marker.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	roomID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	messages, err := c.chatService.ListMessages(ctx.Request.Context(), roomID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: messages})
}

// DeleteMessage soft deletes one of the caller's messages
// @Summary Delete a message
// @Description Marks the message as deleted without removing it from the history
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Message deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{id} [delete]
func (c *ChatController) DeleteMessage(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.chatService.DeleteMessage(ctx.Request.Context(), messageID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Message deleted"}})
}
