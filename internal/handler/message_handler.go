package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"event-planner-api/internal/dto"
	"event-planner-api/internal/middleware"
	"event-planner-api/internal/response"
	"event-planner-api/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
	logger         *zap.Logger
}

func NewMessageHandler(messageService service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, logger: logger}
}

// SendMessage handles POST /rooms/:roomId/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid room ID")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	msg, err := h.messageService.SendMessage(c.Request.Context(), roomID, userID, req.Content)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	middleware.RecordMessageSent()
	response.SendSuccess(c, http.StatusCreated, dto.ToMessageResponse(msg))
}

// GetMessages handles GET /rooms/:roomId/messages?limit=&offset=
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid room ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messageService.GetMessages(c.Request.Context(), roomID, userID, limit, offset)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.ToMessageResponses(messages))
}

// DeleteMessage handles DELETE /messages/:messageId
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid message ID")
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), messageID, userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
