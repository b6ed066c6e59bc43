package handler

import (
	"net/http"
	"strconv"

	"hostel-be-svc/internal/service"
	"hostel-be-svc/pkg/logger"
	"hostel-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ConfirmPaymentsRequest represents the payment confirmation request
type ConfirmPaymentsRequest struct {
	PaymentIDs []uint `json:"payment_ids" binding:"required"` // Payment IDs to mark successful
}

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *logger.Logger
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(paymentService service.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// GetPaymentsByResident lists a resident's payments
// @Summary List payments of a resident
// @Description Get a resident's payments in chronological (insertion) order
// @Tags payments
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Payment} "Payments retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/resident/{id} [get]
func (h *PaymentHandler) GetPaymentsByResident(c *gin.Context) {
	idParam := c.Param("id")
	residentID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		h.logger.WithError(err).WithField("id_param", idParam).Error("Invalid resident ID parameter")
		utils.BadRequestResponse(c, "Resident ID must be a valid number", err)
		return
	}

	payments, err := h.paymentService.GetPaymentsByResident(uint(residentID))
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to get payments")
		utils.InternalServerErrorResponse(c, "Failed to retrieve payments", err)
		return
	}

	utils.SuccessResponse(c, "Payments retrieved successfully", payments)
}

// ConfirmPayments marks payments as successful
// @Summary Confirm payments
// @Description Mark the given payment IDs as successful
// @Tags payments
// @Accept json
// @Produce json
// @Param request body ConfirmPaymentsRequest true "Payment IDs"
// @Success 200 {object} utils.APIResponse "Payments confirmed successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/confirm [post]
func (h *PaymentHandler) ConfirmPayments(c *gin.Context) {
	var req ConfirmPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "payment_ids is required and must be an array of numbers", err)
		return
	}

	if len(req.PaymentIDs) == 0 {
		utils.BadRequestResponse(c, "payment_ids cannot be empty", nil)
		return
	}

	if err := h.paymentService.ConfirmPayments(req.PaymentIDs); err != nil {
		h.logger.WithError(err).WithField("payment_ids", req.PaymentIDs).Error("Failed to confirm payments")
		utils.InternalServerErrorResponse(c, "Failed to confirm payments", err)
		return
	}

	utils.SuccessResponse(c, "Payments confirmed successfully", nil)
}

// RegeneratePayments re-runs payment generation for a resident
// @Summary Regenerate payments
// @Description Re-run monthly payment and due-charge generation for a resident. Safe to call repeatedly; existing months are never duplicated.
// @Tags payments
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Payment} "Payments regenerated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/resident/{id}/generate [post]
func (h *PaymentHandler) RegeneratePayments(c *gin.Context) {
	idParam := c.Param("id")
	residentID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Resident ID must be a valid number", err)
		return
	}

	if err := h.paymentService.RegeneratePayments(uint(residentID)); err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to regenerate payments")
		utils.InternalServerErrorResponse(c, "Failed to regenerate payments", err)
		return
	}

	payments, err := h.paymentService.GetPaymentsByResident(uint(residentID))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to retrieve payments", err)
		return
	}

	utils.SuccessResponse(c, "Payments regenerated successfully", payments)
}

// ExportPayments exports payment data to Excel
// @Summary Export payments to Excel
// @Description Export payment data to an .xlsx file, with optional hostel, month and status filters
// @Tags payments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param hostel_id query int false "Filter by hostel ID"
// @Param month query string false "Filter by month (YYYY-MM)"
// @Param status query string false "Filter by status (due or successful)"
// @Success 200 {file} binary "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid parameter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/export [get]
func (h *PaymentHandler) ExportPayments(c *gin.Context) {
	var hostelID *uint
	if hostelStr := c.Query("hostel_id"); hostelStr != "" {
		value, err := strconv.ParseUint(hostelStr, 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "hostel_id must be a valid number", err)
			return
		}
		id := uint(value)
		hostelID = &id
	}

	var month *string
	if monthStr := c.Query("month"); monthStr != "" {
		month = &monthStr
	}

	var status *string
	if statusStr := c.Query("status"); statusStr != "" {
		status = &statusStr
	}

	content, filename, err := h.paymentService.ExportPaymentsToExcel(hostelID, month, status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export payments")
		utils.InternalServerErrorResponse(c, "Failed to export payments", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
