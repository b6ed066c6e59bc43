package service

import (
	"hostel-be-svc/internal/models/response"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	GetDashboardStatistics(hostelID *uint) (*response.DashboardStatisticsResponse, error)
}

// dashboardService implements DashboardService
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(dashboardRepo repository.DashboardRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// GetDashboardStatistics retrieves occupancy and payment statistics
func (s *dashboardService) GetDashboardStatistics(hostelID *uint) (*response.DashboardStatisticsResponse, error) {
	statistics, err := s.dashboardRepo.GetDashboardStatistics(hostelID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get dashboard statistics")
		return nil, err
	}

	return statistics, nil
}
