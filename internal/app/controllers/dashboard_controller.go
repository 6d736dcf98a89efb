package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/services"
	"github.com/tutorlink/tutorlink/internal/middleware"
)

// DashboardController serves aggregate counts for staff reporting
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetSummary returns platform wide counts
// @Summary Dashboard summary
// @Description Aggregates user, request, matching, chat and moderation counts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummaryResponse} "Summary"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /dashboard [get]
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	summary, err := c.dashboardService.GetSummary(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build dashboard summary")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: summary})
}
