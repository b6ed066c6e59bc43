package repository

import (
	"hostel-be-svc/internal/models"

	"gorm.io/gorm"
)

// HostelRepository defines the interface for hostel data operations
type HostelRepository interface {
	GetHostelByID(id uint) (*models.Hostel, error)
	GetAllHostels() ([]*models.Hostel, error)
	CreateHostel(hostel *models.Hostel) error
	UpdateTotalTenants(id uint, totalTenants int) error
	UpdateTotalRemainingBeds(id uint, totalRemainingBeds int) error
}

// hostelRepository implements HostelRepository
type hostelRepository struct {
	db *gorm.DB
}

// NewHostelRepository creates a new instance of HostelRepository
func NewHostelRepository(db *gorm.DB) HostelRepository {
	return &hostelRepository{
		db: db,
	}
}

// GetHostelByID retrieves a hostel by ID
func (r *hostelRepository) GetHostelByID(id uint) (*models.Hostel, error) {
	var hostel models.Hostel

	err := r.db.Where("id = ?", id).First(&hostel).Error
	if err != nil {
		return nil, err
	}

	return &hostel, nil
}

// GetAllHostels retrieves all hostels
func (r *hostelRepository) GetAllHostels() ([]*models.Hostel, error) {
	var hostels []*models.Hostel

	err := r.db.Order("name ASC").Find(&hostels).Error
	if err != nil {
		return nil, err
	}

	return hostels, nil
}

// CreateHostel creates a new hostel record
func (r *hostelRepository) CreateHostel(hostel *models.Hostel) error {
	return r.db.Create(hostel).Error
}

// UpdateTotalTenants persists the recomputed tenant count
func (r *hostelRepository) UpdateTotalTenants(id uint, totalTenants int) error {
	return r.db.Model(&models.Hostel{}).
		Where("id = ?", id).
		Update("total_tenants", totalTenants).Error
}

// UpdateTotalRemainingBeds persists the recomputed remaining bed count
func (r *hostelRepository) UpdateTotalRemainingBeds(id uint, totalRemainingBeds int) error {
	return r.db.Model(&models.Hostel{}).
		Where("id = ?", id).
		Update("total_remaining_beds", totalRemainingBeds).Error
}
