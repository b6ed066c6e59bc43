package repository

import (
	"hostel-be-svc/internal/models"

	"gorm.io/gorm"
)

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentWithPayments(id uint) (*models.Resident, error)
	GetResidentByEmail(email string) (*models.Resident, error)
	GetAllResidents() ([]*models.Resident, error)
	GetResidentsByHostelID(hostelID uint) ([]*models.Resident, error)
	GetResidentsByIDs(ids []uint) ([]*models.Resident, error)
	GetCurrentResidentsWithPayments() ([]*models.Resident, error)
	CountActiveResidentsByHostel(hostelID uint) (int64, error)
	CountActiveResidentsByRoom(roomID uint) (int64, error)
	CreateResident(resident *models.Resident) error
	SaveResident(resident *models.Resident) error
	UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error)
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// GetResidentByID retrieves a resident by ID
func (r *residentRepository) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetResidentWithPayments retrieves a resident with payments in insertion order
func (r *residentRepository) GetResidentWithPayments(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.id ASC")
	}).Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetResidentByEmail retrieves a resident by email
func (r *residentRepository) GetResidentByEmail(email string) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("email = ?", email).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetAllResidents retrieves all residents
func (r *residentRepository) GetAllResidents() ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// GetResidentsByHostelID retrieves all residents of a hostel
func (r *residentRepository) GetResidentsByHostelID(hostelID uint) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("hostel_id = ?", hostelID).Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// GetResidentsByIDs retrieves residents whose IDs match the provided list
func (r *residentRepository) GetResidentsByIDs(ids []uint) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("id IN ?", ids).Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// GetCurrentResidentsWithPayments retrieves residents with living status
// "current", payments preloaded in insertion order
func (r *residentRepository) GetCurrentResidentsWithPayments() ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.id ASC")
	}).Where("living = ?", models.LivingCurrent).Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// CountActiveResidentsByHostel counts residents of a hostel that have not departed
func (r *residentRepository) CountActiveResidentsByHostel(hostelID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Resident{}).
		Where("hostel_id = ? AND living <> ?", hostelID, models.LivingOld).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountActiveResidentsByRoom counts residents of a room that have not departed
func (r *residentRepository) CountActiveResidentsByRoom(roomID uint) (int64, error) {
	var count int64

	err := r.db.Model(&models.Resident{}).
		Where("room_id = ? AND living <> ?", roomID, models.LivingOld).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CreateResident creates a new resident record
func (r *residentRepository) CreateResident(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// SaveResident persists all fields of an existing resident
func (r *residentRepository) SaveResident(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// UpdateResident applies the given column updates and returns the updated resident
func (r *residentRepository) UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error) {
	if err := r.db.Model(&models.Resident{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetResidentByID(id)
}
