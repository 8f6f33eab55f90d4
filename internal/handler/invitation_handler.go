package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"event-planner-api/internal/dto"
	"event-planner-api/internal/middleware"
	"event-planner-api/internal/model"
	"event-planner-api/internal/response"
	"event-planner-api/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
	logger            *zap.Logger
}

func NewInvitationHandler(invitationService service.InvitationService, logger *zap.Logger) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, logger: logger}
}

// CreateInvitation handles POST /events/:eventId/invitations
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid event ID")
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	invitation, err := h.invitationService.CreateInvitation(c.Request.Context(), eventID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	middleware.RecordInvitationSent()
	response.SendSuccess(c, http.StatusCreated, dto.ToInvitationResponse(invitation))
}

// GetEventInvitations handles GET /events/:eventId/invitations
func (h *InvitationHandler) GetEventInvitations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid event ID")
		return
	}

	invitations, err := h.invitationService.GetEventInvitations(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.ToInvitationResponses(invitations))
}

// RespondInvitation handles POST /invitations/respond
func (h *InvitationHandler) RespondInvitation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not authenticated")
		return
	}

	var req dto.RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	invitation, err := h.invitationService.Respond(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if invitation.Status == model.InvitationAccepted {
		middleware.RecordInvitationAccepted()
	}
	response.SendSuccess(c, http.StatusOK, dto.ToInvitationResponse(invitation))
}
