package service

import (
	"fmt"

	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"
)

// OccupancyService maintains the derived occupancy counters of a hostel
type OccupancyService interface {
	RecalculateTenants(hostelID uint) error
	RecalculateRemainingBeds(hostelID uint) error
	RecalculateOccupancy(hostelID uint) error
}

// occupancyService implements OccupancyService
type occupancyService struct {
	hostelRepo   repository.HostelRepository
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewOccupancyService creates a new instance of OccupancyService
func NewOccupancyService(hostelRepo repository.HostelRepository, residentRepo repository.ResidentRepository, logger *logger.Logger) OccupancyService {
	return &occupancyService{
		hostelRepo:   hostelRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// RecalculateTenants recomputes total_tenants from the residents that have not
// departed, rather than incrementing a counter at every call site
func (s *occupancyService) RecalculateTenants(hostelID uint) error {
	count, err := s.residentRepo.CountActiveResidentsByHostel(hostelID)
	if err != nil {
		return fmt.Errorf("failed to count active residents: %w", err)
	}

	if err := s.hostelRepo.UpdateTotalTenants(hostelID, int(count)); err != nil {
		return fmt.Errorf("failed to update total tenants: %w", err)
	}

	return nil
}

// RecalculateRemainingBeds recomputes total_remaining_beds as total_beds minus
// total_tenants. Must run after RecalculateTenants.
func (s *occupancyService) RecalculateRemainingBeds(hostelID uint) error {
	hostel, err := s.hostelRepo.GetHostelByID(hostelID)
	if err != nil {
		return fmt.Errorf("failed to get hostel: %w", err)
	}

	remaining := hostel.TotalBeds - hostel.TotalTenants
	if err := s.hostelRepo.UpdateTotalRemainingBeds(hostelID, remaining); err != nil {
		return fmt.Errorf("failed to update total remaining beds: %w", err)
	}

	return nil
}

// RecalculateOccupancy runs the tenant recount followed by the remaining-bed
// derivation, in that order
func (s *occupancyService) RecalculateOccupancy(hostelID uint) error {
	if err := s.RecalculateTenants(hostelID); err != nil {
		return err
	}

	return s.RecalculateRemainingBeds(hostelID)
}
