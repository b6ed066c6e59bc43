package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/service"
	"hostel-be-svc/pkg/logger"
	"hostel-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RegisterResidentRequest represents the resident registration request
type RegisterResidentRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	MobileNumber    string `json:"mobile_number" binding:"required"`
	Address         string `json:"address"`
	ParentsName     string `json:"parents_name"`
	ParentsMobileNo string `json:"parents_mobile_no"`
	Gender          string `json:"gender"`
	Password        string `json:"password" binding:"required"`

	HostelID uint `json:"hostel_id" binding:"required"`
	RoomID   uint `json:"room_id" binding:"required"`

	DateJoined   string `json:"date_joined" binding:"required"` // YYYY-MM-DD
	ContractTerm int    `json:"contract_term" binding:"required,min=1"`

	Rent                        int64 `json:"rent" binding:"required"`
	Deposit                     int64 `json:"deposit"`
	DepositStatus               bool  `json:"deposit_status"`
	FirstMonthRentStatus        bool  `json:"first_month_rent_status"`
	MaintenanceCharge           int64 `json:"maintenance_charge"`
	MaintenanceChargeStatus     bool  `json:"maintenance_charge_status"`
	FormFee                     int64 `json:"form_fee"`
	FormFeeStatus               bool  `json:"form_fee_status"`
	ExtraDayPaymentAmount       int64 `json:"extra_day_payment_amount"`
	ExtraDayPaymentAmountStatus bool  `json:"extra_day_payment_amount_status"`
	ExtraDays                   int   `json:"extra_days"`
}

// ExtendContractRequest represents the contract extension request
type ExtendContractRequest struct {
	ExtendedMonths int `json:"extended_months" binding:"required,min=1"`
}

// ResidentHandler handles resident-related HTTP requests
type ResidentHandler struct {
	residentService service.ResidentService
	logger          *logger.Logger
}

// NewResidentHandler creates a new ResidentHandler instance
func NewResidentHandler(residentService service.ResidentService, logger *logger.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		logger:          logger,
	}
}

// RegisterResident registers a new resident
// @Summary Register a resident
// @Description Register a resident into a hostel room, generate the rent payment schedule and the due charge
// @Tags residents
// @Accept json
// @Produce json
// @Param request body RegisterResidentRequest true "Resident registration data"
// @Success 201 {object} utils.APIResponse{data=models.Resident} "Resident registered successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request or no remaining capacity"
// @Failure 404 {object} utils.APIResponse "Hostel or room not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents [post]
func (h *ResidentHandler) RegisterResident(c *gin.Context) {
	var req RegisterResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	dateJoined, err := time.Parse("2006-01-02", req.DateJoined)
	if err != nil {
		h.logger.WithError(err).WithField("date_joined", req.DateJoined).Error("Invalid date_joined format")
		utils.BadRequestResponse(c, "date_joined must be in YYYY-MM-DD format", err)
		return
	}

	resident := &models.Resident{
		Name:                        req.Name,
		Email:                       req.Email,
		MobileNumber:                req.MobileNumber,
		Address:                     req.Address,
		ParentsName:                 req.ParentsName,
		ParentsMobileNo:             req.ParentsMobileNo,
		Gender:                      req.Gender,
		Password:                    req.Password,
		HostelID:                    req.HostelID,
		RoomID:                      req.RoomID,
		DateJoined:                  dateJoined,
		ContractTerm:                req.ContractTerm,
		Rent:                        req.Rent,
		Deposit:                     req.Deposit,
		DepositStatus:               req.DepositStatus,
		MaintenanceCharge:           req.MaintenanceCharge,
		MaintenanceChargeStatus:     req.MaintenanceChargeStatus,
		FormFee:                     req.FormFee,
		FormFeeStatus:               req.FormFeeStatus,
		ExtraDayPaymentAmount:       req.ExtraDayPaymentAmount,
		ExtraDayPaymentAmountStatus: req.ExtraDayPaymentAmountStatus,
		ExtraDays:                   req.ExtraDays,
	}

	registered, err := h.residentService.Register(resident, req.FirstMonthRentStatus)
	if err != nil {
		h.handleLifecycleError(c, err, "Failed to register resident")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"resident_id": registered.ID,
		"hostel_id":   registered.HostelID,
		"room_id":     registered.RoomID,
	}).Info("Resident registered successfully")

	utils.CreatedResponse(c, "Resident registered successfully", registered)
}

// GetAllResidents lists all residents
// @Summary List residents
// @Description Get all residents, optionally filtered by a comma-separated ids query parameter
// @Tags residents
// @Produce json
// @Param ids query string false "Comma-separated resident IDs"
// @Success 200 {object} utils.APIResponse{data=[]models.Resident} "Residents retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents [get]
func (h *ResidentHandler) GetAllResidents(c *gin.Context) {
	idsParam := c.Query("ids")
	if idsParam != "" {
		ids, err := parseIDList(idsParam)
		if err != nil {
			utils.BadRequestResponse(c, "ids must be a comma-separated list of numbers", err)
			return
		}
		residents, err := h.residentService.GetResidentsByIDs(ids)
		if err != nil {
			h.logger.WithError(err).Error("Failed to get residents by ids")
			utils.InternalServerErrorResponse(c, "Failed to retrieve residents", err)
			return
		}
		utils.SuccessResponse(c, "Residents retrieved successfully", residents)
		return
	}

	residents, err := h.residentService.GetAllResidents()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get residents")
		utils.InternalServerErrorResponse(c, "Failed to retrieve residents", err)
		return
	}

	utils.SuccessResponse(c, "Residents retrieved successfully", residents)
}

// GetResident retrieves a single resident
// @Summary Get resident
// @Description Get a resident by ID with the payment list
// @Tags residents
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Resident retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id} [get]
func (h *ResidentHandler) GetResident(c *gin.Context) {
	id, ok := h.residentIDParam(c)
	if !ok {
		return
	}

	resident, err := h.residentService.GetResidentWithPayments(id)
	if err != nil {
		h.handleLifecycleError(c, err, "Failed to get resident")
		return
	}

	utils.SuccessResponse(c, "Resident retrieved successfully", resident)
}

// GetResidentsByHostel lists the residents of a hostel
// @Summary List residents of a hostel
// @Tags residents
// @Produce json
// @Param id path int true "Hostel ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Resident} "Residents retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/hostel/{id} [get]
func (h *ResidentHandler) GetResidentsByHostel(c *gin.Context) {
	idParam := c.Param("id")
	hostelID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Hostel ID must be a valid number", err)
		return
	}

	residents, err := h.residentService.GetResidentsByHostel(uint(hostelID))
	if err != nil {
		h.logger.WithError(err).WithField("hostel_id", hostelID).Error("Failed to get residents by hostel")
		utils.InternalServerErrorResponse(c, "Failed to retrieve residents", err)
		return
	}

	utils.SuccessResponse(c, "Residents retrieved successfully", residents)
}

// UpdateResident updates resident fields
// @Summary Update resident
// @Description Update resident fields; a rent change is propagated onto the existing rent payments
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Resident updated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id} [put]
func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	id, ok := h.residentIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	resident, err := h.residentService.UpdateResident(id, updates)
	if err != nil {
		h.handleLifecycleError(c, err, "Failed to update resident")
		return
	}

	utils.SuccessResponse(c, "Resident updated successfully", resident)
}

// DepartResident marks a resident as departed and releases the bed
// @Summary Depart resident
// @Description Move a resident to "old" and release the room and hostel bed. Departing an already-departed resident is a no-op.
// @Tags residents
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Resident departed"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id} [delete]
func (h *ResidentHandler) DepartResident(c *gin.Context) {
	id, ok := h.residentIDParam(c)
	if !ok {
		return
	}

	resident, err := h.residentService.Depart(id)
	if err != nil {
		h.handleLifecycleError(c, err, "Failed to depart resident")
		return
	}

	utils.SuccessResponse(c, "Resident departed", resident)
}

// ExtendContract extends a resident's contract
// @Summary Extend contract
// @Description Extend the contract end date by the given number of months and backfill the newly covered rent payments
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Param request body ExtendContractRequest true "Extension in months"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Contract extended successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id}/extend-contract [put]
func (h *ResidentHandler) ExtendContract(c *gin.Context) {
	id, ok := h.residentIDParam(c)
	if !ok {
		return
	}

	var req ExtendContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "extended_months is required and must be at least 1", err)
		return
	}

	resident, err := h.residentService.ExtendContract(id, req.ExtendedMonths)
	if err != nil {
		h.handleLifecycleError(c, err, "Failed to extend contract")
		return
	}

	utils.SuccessResponse(c, "Contract extended successfully", resident)
}

// GetContractEndedResidents lists current residents whose contract has run out
// @Summary List contract-ended residents
// @Description List current residents whose latest payment month is before the current month
// @Tags residents
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Resident} "Residents retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/contract-ended [get]
func (h *ResidentHandler) GetContractEndedResidents(c *gin.Context) {
	residents, err := h.residentService.GetContractEndedResidents()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get contract-ended residents")
		utils.InternalServerErrorResponse(c, "Failed to retrieve residents", err)
		return
	}

	utils.SuccessResponse(c, "Residents retrieved successfully", residents)
}

// UploadResidentDocuments stores the Aadhaar card and profile image
// @Summary Upload resident documents
// @Description Upload the Aadhaar card and profile image for a resident as multipart form files
// @Tags residents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Resident ID"
// @Param aadhaar_card formData file false "Aadhaar card image"
// @Param image formData file false "Profile image"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Documents uploaded successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id}/documents [post]
func (h *ResidentHandler) UploadResidentDocuments(c *gin.Context) {
	id, ok := h.residentIDParam(c)
	if !ok {
		return
	}

	aadhaarCard, err := readFormFile(c, "aadhaar_card")
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read aadhaar_card file", err)
		return
	}
	image, err := readFormFile(c, "image")
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read image file", err)
		return
	}
	if aadhaarCard == nil && image == nil {
		utils.BadRequestResponse(c, "At least one of aadhaar_card or image is required", nil)
		return
	}

	resident, err := h.residentService.UploadResidentDocuments(id, aadhaarCard, image)
	if err != nil {
		h.handleLifecycleError(c, err, "Failed to upload resident documents")
		return
	}

	utils.SuccessResponse(c, "Documents uploaded successfully", resident)
}

// residentIDParam parses the :id path parameter, writing the error response itself
func (h *ResidentHandler) residentIDParam(c *gin.Context) (uint, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		h.logger.WithError(err).WithField("id_param", idParam).Error("Invalid resident ID parameter")
		utils.BadRequestResponse(c, "Resident ID must be a valid number", err)
		return 0, false
	}
	return uint(id), true
}

// handleLifecycleError maps service errors onto HTTP responses
func (h *ResidentHandler) handleLifecycleError(c *gin.Context, err error, message string) {
	h.logger.WithError(err).Error(message)

	switch {
	case errors.Is(err, service.ErrResidentNotFound),
		errors.Is(err, service.ErrHostelNotFound),
		errors.Is(err, service.ErrRoomNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrHostelFull),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrInvalidTransition):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalServerErrorResponse(c, message, err)
	}
}

// parseIDList parses a comma-separated list of numeric IDs
func parseIDList(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// readFormFile reads an optional multipart file into memory
func readFormFile(c *gin.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// missing file is fine, the field is optional
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
