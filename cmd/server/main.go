package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-be-svc/docs"
	"hostel-be-svc/internal/config"
	"hostel-be-svc/internal/database"
	"hostel-be-svc/internal/handler"
	"hostel-be-svc/internal/middleware"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/internal/scheduler"
	"hostel-be-svc/internal/service"
	"hostel-be-svc/pkg/logger"
)

// @title Hostel Backend Service API
// @version 1.0
// @description RESTful API for hostel resident management and rent billing
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Hostel Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for hostel resident management and rent billing"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Hostel Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	residentRepo := repository.NewResidentRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	roomRepo := repository.NewRoomRepository(db.DB)
	hostelRepo := repository.NewHostelRepository(db.DB)
	schedulerLogRepo := repository.NewSchedulerLogRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)

	// Initialize services
	occupancyService := service.NewOccupancyService(hostelRepo, residentRepo, appLogger)
	paymentService := service.NewPaymentService(paymentRepo, residentRepo, appLogger)
	residentService := service.NewResidentService(residentRepo, roomRepo, hostelRepo, paymentRepo, paymentService, occupancyService, db.DB, appLogger, cfg.Upload.BaseDir)
	dashboardService := service.NewDashboardService(dashboardRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, residentService, paymentService, dashboardService, hostelRepo, roomRepo, appLogger)

	// Start the contract-end watch scheduler
	contractScheduler := scheduler.NewContractScheduler(residentService, schedulerLogRepo, appLogger, cfg.Scheduler.ContractWatchCronExpression)
	if err := contractScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start contract scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop the scheduler
	contractScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
