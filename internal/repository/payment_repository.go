package repository

import (
	"errors"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/models/response"

	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	GetPaymentByID(id uint) (*models.Payment, error)
	GetPaymentByResidentMonthType(residentID uint, month string, paymentType string) (*models.Payment, error)
	GetPaymentsByResident(residentID uint) ([]*models.Payment, error)
	CountPaymentsByResident(residentID uint, paymentType string) (int64, error)
	CreatePayment(payment *models.Payment) error
	UpdateStatusByIDs(ids []uint, status string) error
	UpdateRentByResident(residentID uint, rent int64) error
	GetPaymentsForExport(hostelID *uint, month *string, status *string) ([]*response.PaymentExportRow, error)
}

// paymentRepository implements PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// GetPaymentByID retrieves a payment record by ID
func (r *paymentRepository) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment

	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetPaymentByResidentMonthType retrieves the payment for a resident, month and
// type, or nil when none exists
func (r *paymentRepository) GetPaymentByResidentMonthType(residentID uint, month string, paymentType string) (*models.Payment, error) {
	var payment models.Payment

	err := r.db.Where("resident_id = ? AND month = ? AND type = ?", residentID, month, paymentType).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &payment, nil
}

// GetPaymentsByResident retrieves a resident's payments in insertion order
func (r *paymentRepository) GetPaymentsByResident(residentID uint) ([]*models.Payment, error) {
	var payments []*models.Payment

	err := r.db.Where("resident_id = ?", residentID).Order("id ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// CountPaymentsByResident counts a resident's payments of the given type
func (r *paymentRepository) CountPaymentsByResident(residentID uint, paymentType string) (int64, error) {
	var count int64

	err := r.db.Model(&models.Payment{}).
		Where("resident_id = ? AND type = ?", residentID, paymentType).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CreatePayment creates a new payment record
func (r *paymentRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// UpdateStatusByIDs marks the given payments with the new status
func (r *paymentRepository) UpdateStatusByIDs(ids []uint, status string) error {
	return r.db.Model(&models.Payment{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

// UpdateRentByResident propagates a rent change onto all of a resident's rent payments
func (r *paymentRepository) UpdateRentByResident(residentID uint, rent int64) error {
	return r.db.Model(&models.Payment{}).
		Where("resident_id = ? AND type = ?", residentID, models.PaymentTypeRent).
		Updates(map[string]interface{}{
			"amount": rent,
			"rent":   rent,
		}).Error
}

// GetPaymentsForExport retrieves payment rows joined with resident data for the
// Excel export, with optional hostel, month and status filters
func (r *paymentRepository) GetPaymentsForExport(hostelID *uint, month *string, status *string) ([]*response.PaymentExportRow, error) {
	var rows []*response.PaymentExportRow

	query := r.db.Table("payments p").
		Select("r.name AS resident_name, r.hostel_name, r.room_number, p.month, p.amount, p.status, p.type").
		Joins("JOIN residents r ON r.id = p.resident_id").
		Order("r.name ASC, p.month ASC")

	if hostelID != nil {
		query = query.Where("r.hostel_id = ?", *hostelID)
	}
	if month != nil {
		query = query.Where("p.month = ?", *month)
	}
	if status != nil {
		query = query.Where("p.status = ?", *status)
	}

	err := query.Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
