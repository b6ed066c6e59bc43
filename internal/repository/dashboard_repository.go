package repository

import (
	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/models/response"

	"gorm.io/gorm"
)

// DashboardRepository defines the interface for dashboard data operations
type DashboardRepository interface {
	GetDashboardStatistics(hostelID *uint) (*response.DashboardStatisticsResponse, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetDashboardStatistics aggregates occupancy and payment totals, optionally
// scoped to a single hostel. The two aggregates scan into separate structs;
// gorm zeroes the destination on Scan, so sharing one would drop the first
// result set.
func (r *dashboardRepository) GetDashboardStatistics(hostelID *uint) (*response.DashboardStatisticsResponse, error) {
	var occupancy struct {
		TotalBeds          int
		TotalTenants       int
		TotalRemainingBeds int
	}
	bedsQuery := r.db.Model(&models.Hostel{}).
		Select("COALESCE(SUM(total_beds), 0) AS total_beds, COALESCE(SUM(total_tenants), 0) AS total_tenants, COALESCE(SUM(total_remaining_beds), 0) AS total_remaining_beds")
	if hostelID != nil {
		bedsQuery = bedsQuery.Where("id = ?", *hostelID)
	}
	if err := bedsQuery.Scan(&occupancy).Error; err != nil {
		return nil, err
	}

	var payments struct {
		DuePayments        int64
		DueAmount          int64
		SuccessfulPayments int64
		CollectedAmount    int64
	}
	paymentsQuery := r.db.Table("payments p").
		Select(`COUNT(CASE WHEN p.status = 'due' THEN 1 END) AS due_payments,
			COALESCE(SUM(CASE WHEN p.status = 'due' THEN p.amount ELSE 0 END), 0) AS due_amount,
			COUNT(CASE WHEN p.status = 'successful' THEN 1 END) AS successful_payments,
			COALESCE(SUM(CASE WHEN p.status = 'successful' THEN p.amount ELSE 0 END), 0) AS collected_amount`)
	if hostelID != nil {
		paymentsQuery = paymentsQuery.
			Joins("JOIN residents r ON r.id = p.resident_id").
			Where("r.hostel_id = ?", *hostelID)
	}
	if err := paymentsQuery.Scan(&payments).Error; err != nil {
		return nil, err
	}

	return &response.DashboardStatisticsResponse{
		TotalBeds:          occupancy.TotalBeds,
		TotalTenants:       occupancy.TotalTenants,
		TotalRemainingBeds: occupancy.TotalRemainingBeds,
		DuePayments:        payments.DuePayments,
		DueAmount:          payments.DueAmount,
		SuccessfulPayments: payments.SuccessfulPayments,
		CollectedAmount:    payments.CollectedAmount,
	}, nil
}
