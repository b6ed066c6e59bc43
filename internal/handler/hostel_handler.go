package handler

import (
	"errors"
	"strconv"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"
	"hostel-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateHostelRequest represents the hostel creation request
type CreateHostelRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	TotalBeds int    `json:"total_beds" binding:"required,min=1"`
}

// CreateRoomRequest represents the room creation request
type CreateRoomRequest struct {
	HostelID   uint   `json:"hostel_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
	Price      int64  `json:"price" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
}

// HostelHandler handles hostel and room HTTP requests
type HostelHandler struct {
	hostelRepo repository.HostelRepository
	roomRepo   repository.RoomRepository
	logger     *logger.Logger
}

// NewHostelHandler creates a new HostelHandler instance
func NewHostelHandler(hostelRepo repository.HostelRepository, roomRepo repository.RoomRepository, logger *logger.Logger) *HostelHandler {
	return &HostelHandler{
		hostelRepo: hostelRepo,
		roomRepo:   roomRepo,
		logger:     logger,
	}
}

// CreateHostel creates a hostel
// @Summary Create hostel
// @Tags hostels
// @Accept json
// @Produce json
// @Param request body CreateHostelRequest true "Hostel data"
// @Success 201 {object} utils.APIResponse{data=models.Hostel} "Hostel created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/hostels [post]
func (h *HostelHandler) CreateHostel(c *gin.Context) {
	var req CreateHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	hostel := &models.Hostel{
		Name:               req.Name,
		Address:            req.Address,
		TotalBeds:          req.TotalBeds,
		TotalRemainingBeds: req.TotalBeds,
	}
	if err := h.hostelRepo.CreateHostel(hostel); err != nil {
		h.logger.WithError(err).Error("Failed to create hostel")
		utils.InternalServerErrorResponse(c, "Failed to create hostel", err)
		return
	}

	utils.CreatedResponse(c, "Hostel created successfully", hostel)
}

// GetAllHostels lists all hostels
// @Summary List hostels
// @Tags hostels
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.Hostel} "Hostels retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/hostels [get]
func (h *HostelHandler) GetAllHostels(c *gin.Context) {
	hostels, err := h.hostelRepo.GetAllHostels()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get hostels")
		utils.InternalServerErrorResponse(c, "Failed to retrieve hostels", err)
		return
	}

	utils.SuccessResponse(c, "Hostels retrieved successfully", hostels)
}

// GetHostel retrieves a hostel by ID
// @Summary Get hostel
// @Tags hostels
// @Produce json
// @Param id path int true "Hostel ID"
// @Success 200 {object} utils.APIResponse{data=models.Hostel} "Hostel retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Hostel not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/hostels/{id} [get]
func (h *HostelHandler) GetHostel(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Hostel ID must be a valid number", err)
		return
	}

	hostel, err := h.hostelRepo.GetHostelByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Hostel not found")
			return
		}
		h.logger.WithError(err).WithField("hostel_id", id).Error("Failed to get hostel")
		utils.InternalServerErrorResponse(c, "Failed to retrieve hostel", err)
		return
	}

	utils.SuccessResponse(c, "Hostel retrieved successfully", hostel)
}

// GetRoomsByHostel lists the rooms of a hostel
// @Summary List rooms of a hostel
// @Tags hostels
// @Produce json
// @Param id path int true "Hostel ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Room} "Rooms retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/hostels/{id}/rooms [get]
func (h *HostelHandler) GetRoomsByHostel(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Hostel ID must be a valid number", err)
		return
	}

	rooms, err := h.roomRepo.GetRoomsByHostelID(uint(id))
	if err != nil {
		h.logger.WithError(err).WithField("hostel_id", id).Error("Failed to get rooms")
		utils.InternalServerErrorResponse(c, "Failed to retrieve rooms", err)
		return
	}

	utils.SuccessResponse(c, "Rooms retrieved successfully", rooms)
}

// CreateRoom creates a room in a hostel
// @Summary Create room
// @Tags hostels
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Room data"
// @Success 201 {object} utils.APIResponse{data=models.Room} "Room created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Hostel not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rooms [post]
func (h *HostelHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if _, err := h.hostelRepo.GetHostelByID(req.HostelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Hostel not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to retrieve hostel", err)
		return
	}

	room := &models.Room{
		HostelID:          req.HostelID,
		RoomNumber:        req.RoomNumber,
		Price:             req.Price,
		Capacity:          req.Capacity,
		RemainingCapacity: req.Capacity,
	}
	if err := h.roomRepo.CreateRoom(room); err != nil {
		h.logger.WithError(err).Error("Failed to create room")
		utils.InternalServerErrorResponse(c, "Failed to create room", err)
		return
	}

	utils.CreatedResponse(c, "Room created successfully", room)
}
