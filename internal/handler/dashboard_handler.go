package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"event-planner-api/internal/fluid"
	"event-planner-api/internal/middleware"
	"event-planner-api/internal/response"
	"event-planner-api/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// GetConfig handles GET /events/:eventId/dashboard
func (h *DashboardHandler) GetConfig(c *gin.Context) {
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

	cfg, err := h.dashboardService.GetConfig(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cfg)
}

// UpdateConfig handles PUT /events/:eventId/dashboard
//
// An invalid layout is reported with the full diagnostic list rather than
// a bare 400, so editors can surface every violation at once.
func (h *DashboardHandler) UpdateConfig(c *gin.Context) {
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

	var cfg fluid.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.dashboardService.UpdateConfig(c.Request.Context(), eventID, userID, cfg)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    response.ErrCodeValidation,
				"message": "Dashboard configuration is invalid",
			},
			"data": result,
		})
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Render handles GET /events/:eventId/dashboard/render
func (h *DashboardHandler) Render(c *gin.Context) {
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

	rendered, result, err := h.dashboardService.Render(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    response.ErrCodeValidation,
				"message": "Stored dashboard configuration is invalid",
			},
			"data": result,
		})
		return
	}

	response.SendSuccess(c, http.StatusOK, rendered)
}

// Connections handles GET /events/:eventId/dashboard/connections
func (h *DashboardHandler) Connections(c *gin.Context) {
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

	connections, err := h.dashboardService.Connections(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, connections)
}
