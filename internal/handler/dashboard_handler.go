package handler

import (
	"strconv"

	"hostel-be-svc/internal/service"
	"hostel-be-svc/pkg/logger"
	"hostel-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetDashboardStatistics handles GET /api/v1/dashboard/statistics
// @Summary Get dashboard statistics
// @Description Get occupancy and payment statistics, optionally scoped to one hostel
// @Tags dashboard
// @Produce json
// @Param hostel_id query int false "Filter by hostel ID"
// @Success 200 {object} utils.APIResponse{data=response.DashboardStatisticsResponse} "Statistics retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid parameter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/statistics [get]
func (h *DashboardHandler) GetDashboardStatistics(c *gin.Context) {
	var hostelID *uint
	hostelStr := c.Query("hostel_id")
	if hostelStr != "" {
		value, err := strconv.ParseUint(hostelStr, 10, 32)
		if err != nil {
			h.logger.WithError(err).WithField("hostel_id", hostelStr).Error("Invalid hostel_id parameter format")
			utils.BadRequestResponse(c, "Invalid hostel_id parameter format", err)
			return
		}
		id := uint(value)
		hostelID = &id
	}

	statistics, err := h.dashboardService.GetDashboardStatistics(hostelID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get dashboard statistics")
		utils.InternalServerErrorResponse(c, "Failed to retrieve dashboard statistics", err)
		return
	}

	utils.SuccessResponse(c, "Dashboard statistics retrieved successfully", statistics)
}
