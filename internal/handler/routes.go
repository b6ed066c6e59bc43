package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hostel-be-svc/internal/repository"
	"hostel-be-svc/internal/service"
	"hostel-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	residentService service.ResidentService,
	paymentService service.PaymentService,
	dashboardService service.DashboardService,
	hostelRepo repository.HostelRepository,
	roomRepo repository.RoomRepository,
	logger *logger.Logger,
) {
	// Initialize handlers
	residentHandler := NewResidentHandler(residentService, logger)
	paymentHandler := NewPaymentHandler(paymentService, logger)
	hostelHandler := NewHostelHandler(hostelRepo, roomRepo, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Resident routes
		residents := v1.Group("/residents")
		{
			residents.POST("", residentHandler.RegisterResident)
			residents.GET("", residentHandler.GetAllResidents)
			residents.GET("/contract-ended", residentHandler.GetContractEndedResidents)
			residents.GET("/hostel/:id", residentHandler.GetResidentsByHostel)
			residents.GET("/:id", residentHandler.GetResident)
			residents.PUT("/:id", residentHandler.UpdateResident)
			residents.DELETE("/:id", residentHandler.DepartResident)
			residents.PUT("/:id/extend-contract", residentHandler.ExtendContract)
			residents.POST("/:id/documents", residentHandler.UploadResidentDocuments)
		}

		// Payment routes
		payments := v1.Group("/payments")
		{
			payments.GET("/resident/:id", paymentHandler.GetPaymentsByResident)
			payments.POST("/resident/:id/generate", paymentHandler.RegeneratePayments)
			payments.POST("/confirm", paymentHandler.ConfirmPayments)
			payments.GET("/export", paymentHandler.ExportPayments)
		}

		// Hostel routes
		hostels := v1.Group("/hostels")
		{
			hostels.POST("", hostelHandler.CreateHostel)
			hostels.GET("", hostelHandler.GetAllHostels)
			hostels.GET("/:id", hostelHandler.GetHostel)
			hostels.GET("/:id/rooms", hostelHandler.GetRoomsByHostel)
		}

		// Room routes
		rooms := v1.Group("/rooms")
		{
			rooms.POST("", hostelHandler.CreateRoom)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/statistics", dashboardHandler.GetDashboardStatistics)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Hostel Backend Service",
	})
}
