package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Lifecycle errors surfaced to the handler layer
var (
	ErrHostelNotFound     = errors.New("hostel not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrResidentNotFound   = errors.New("resident not found")
	ErrRoomFull           = errors.New("room is full")
	ErrHostelFull         = errors.New("hostel is full")
	ErrInvalidTransition  = errors.New("invalid living status transition")
	ErrEmailAlreadyExists = errors.New("resident with this email already exists")
)

// ResidentService orchestrates the resident lifecycle: registration, contract
// extension and departure
type ResidentService interface {
	Register(resident *models.Resident, firstMonthRentPaid bool) (*models.Resident, error)
	Depart(residentID uint) (*models.Resident, error)
	ExtendContract(residentID uint, extendedMonths int) (*models.Resident, error)
	UpdateResident(residentID uint, updates map[string]interface{}) (*models.Resident, error)
	UploadResidentDocuments(residentID uint, aadhaarCard, image []byte) (*models.Resident, error)
	GetResident(residentID uint) (*models.Resident, error)
	GetResidentWithPayments(residentID uint) (*models.Resident, error)
	GetAllResidents() ([]*models.Resident, error)
	GetResidentsByHostel(hostelID uint) ([]*models.Resident, error)
	GetResidentsByIDs(ids []uint) ([]*models.Resident, error)
	GetContractEndedResidents() ([]*models.Resident, error)
}

// residentService implements ResidentService
type residentService struct {
	residentRepo   repository.ResidentRepository
	roomRepo       repository.RoomRepository
	hostelRepo     repository.HostelRepository
	paymentRepo    repository.PaymentRepository
	paymentService PaymentService
	occupancy      OccupancyService
	db             *gorm.DB
	logger         *logger.Logger
	uploadDir      string
}

// NewResidentService creates a new instance of ResidentService
func NewResidentService(
	residentRepo repository.ResidentRepository,
	roomRepo repository.RoomRepository,
	hostelRepo repository.HostelRepository,
	paymentRepo repository.PaymentRepository,
	paymentService PaymentService,
	occupancy OccupancyService,
	db *gorm.DB,
	logger *logger.Logger,
	uploadDir string,
) ResidentService {
	return &residentService{
		residentRepo:   residentRepo,
		roomRepo:       roomRepo,
		hostelRepo:     hostelRepo,
		paymentRepo:    paymentRepo,
		paymentService: paymentService,
		occupancy:      occupancy,
		db:             db,
		logger:         logger,
		uploadDir:      uploadDir,
	}
}

// Register creates a resident, takes one bed in the room and hostel, and
// generates the payment schedule. The resident, room and hostel mutations run
// in one transaction; payment generation happens after commit and is
// best-effort: a generation failure is logged but never fails registration,
// since regeneration is idempotent.
func (s *residentService) Register(resident *models.Resident, firstMonthRentPaid bool) (*models.Resident, error) {
	hostel, err := s.hostelRepo.GetHostelByID(resident.HostelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostelNotFound
		}
		return nil, fmt.Errorf("failed to get hostel: %w", err)
	}

	room, err := s.roomRepo.GetRoomByID(resident.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	existing, err := s.residentRepo.GetResidentByEmail(resident.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	resident.HostelName = hostel.Name
	resident.RoomNumber = room.RoomNumber
	resident.ContractEndDate = resident.DateJoined.AddDate(0, resident.ContractTerm, 0)
	resident.DueAmount = computeDueAmount(resident)
	resident.Living = initialLivingStatus(resident, firstMonthRentPaid)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resident).Error; err != nil {
			return fmt.Errorf("failed to create resident: %w", err)
		}

		roomUpdate := tx.Model(&models.Room{}).
			Where("id = ? AND remaining_capacity > 0", room.ID).
			Update("remaining_capacity", gorm.Expr("remaining_capacity - 1"))
		if roomUpdate.Error != nil {
			return fmt.Errorf("failed to take room bed: %w", roomUpdate.Error)
		}
		if roomUpdate.RowsAffected == 0 {
			return ErrRoomFull
		}

		hostelUpdate := tx.Model(&models.Hostel{}).
			Where("id = ? AND total_remaining_beds > 0", hostel.ID).
			Update("total_remaining_beds", gorm.Expr("total_remaining_beds - 1"))
		if hostelUpdate.Error != nil {
			return fmt.Errorf("failed to take hostel bed: %w", hostelUpdate.Error)
		}
		if hostelUpdate.RowsAffected == 0 {
			return ErrHostelFull
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.occupancy.RecalculateOccupancy(hostel.ID); err != nil {
		s.logger.WithError(err).WithField("hostel_id", hostel.ID).Error("Failed to recalculate occupancy")
	}

	// Best-effort: registration already succeeded, generation can be retried.
	if err := s.paymentService.GenerateMonthlyPayments(resident.ID, resident.ContractEndDate); err != nil {
		s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to generate monthly payments")
	}
	if err := s.paymentService.GenerateDueCharge(resident.ID); err != nil {
		s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to generate due charge")
	}
	if firstMonthRentPaid {
		if err := s.paymentService.MarkFirstRentPaymentSuccessful(resident.ID); err != nil {
			s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to mark first rent payment successful")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": resident.ID,
		"hostel_id":   hostel.ID,
		"room_id":     room.ID,
		"living":      resident.Living,
	}).Info("Resident registered")

	return s.residentRepo.GetResidentWithPayments(resident.ID)
}

// Depart moves a resident to "old" and releases the bed. Departing a resident
// that already left is a no-op.
func (s *residentService) Depart(residentID uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	if resident.Living == models.LivingOld {
		return resident, nil
	}

	if !resident.Living.CanTransition(models.LivingOld) {
		return nil, ErrInvalidTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).
			Where("id = ?", resident.RoomID).
			Update("remaining_capacity", gorm.Expr("remaining_capacity + 1")).Error; err != nil {
			return fmt.Errorf("failed to release room bed: %w", err)
		}

		resident.Living = models.LivingOld
		if err := tx.Save(resident).Error; err != nil {
			return fmt.Errorf("failed to save resident: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.occupancy.RecalculateOccupancy(resident.HostelID); err != nil {
		s.logger.WithError(err).WithField("hostel_id", resident.HostelID).Error("Failed to recalculate occupancy")
	}

	s.logger.WithField("resident_id", residentID).Info("Resident departed")

	return resident, nil
}

// ExtendContract pushes the contract end date forward by the given number of
// months, counted from the current end date, and backfills the newly covered
// months with rent payments
func (s *residentService) ExtendContract(residentID uint, extendedMonths int) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	newEndDate := resident.ContractEndDate.AddDate(0, extendedMonths, 0)
	resident.ContractEndDate = newEndDate
	if err := s.residentRepo.SaveResident(resident); err != nil {
		return nil, fmt.Errorf("failed to save resident: %w", err)
	}

	if err := s.paymentService.GenerateMonthlyPayments(residentID, newEndDate); err != nil {
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to backfill monthly payments")
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id":       residentID,
		"extended_months":   extendedMonths,
		"contract_end_date": newEndDate.Format("2006-01-02"),
	}).Info("Contract extended")

	return s.residentRepo.GetResidentWithPayments(residentID)
}

// UpdateResident applies field updates. A rent change is propagated onto all of
// the resident's existing rent payments.
func (s *residentService) UpdateResident(residentID uint, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	if newRent, ok := toInt64(updates["rent"]); ok && newRent != resident.Rent {
		if err := s.paymentRepo.UpdateRentByResident(residentID, newRent); err != nil {
			return nil, fmt.Errorf("failed to propagate rent change: %w", err)
		}
	}

	// Column-level updates bypass the model save hook, so a password change
	// has to be hashed here.
	if password, ok := updates["password"].(string); ok && password != "" && len(password) < 60 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hashed)
	}

	updated, err := s.residentRepo.UpdateResident(residentID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update resident: %w", err)
	}

	return updated, nil
}

// UploadResidentDocuments stores the Aadhaar card and profile image on disk and
// records their paths on the resident. A storage failure fails the request.
func (s *residentService) UploadResidentDocuments(residentID uint, aadhaarCard, image []byte) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	dir := filepath.Join(s.uploadDir, fmt.Sprintf("%d", residentID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	updates := map[string]interface{}{}
	if len(aadhaarCard) > 0 {
		path := filepath.Join(dir, fmt.Sprintf("%d_aadhaar.jpg", time.Now().UnixNano()))
		if err := os.WriteFile(path, aadhaarCard, 0o644); err != nil {
			return nil, fmt.Errorf("failed to store aadhaar card: %w", err)
		}
		updates["aadhaar_card_url"] = path
	}
	if len(image) > 0 {
		path := filepath.Join(dir, fmt.Sprintf("%d_image.jpg", time.Now().UnixNano()))
		if err := os.WriteFile(path, image, 0o644); err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		updates["image_url"] = path
	}

	if len(updates) == 0 {
		return resident, nil
	}

	return s.residentRepo.UpdateResident(residentID, updates)
}

// GetResident retrieves a resident by ID
func (s *residentService) GetResident(residentID uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// GetResidentWithPayments retrieves a resident with the payment list preloaded
func (s *residentService) GetResidentWithPayments(residentID uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetResidentWithPayments(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return resident, nil
}

// GetAllResidents retrieves all residents
func (s *residentService) GetAllResidents() ([]*models.Resident, error) {
	return s.residentRepo.GetAllResidents()
}

// GetResidentsByHostel retrieves all residents of a hostel
func (s *residentService) GetResidentsByHostel(hostelID uint) ([]*models.Resident, error) {
	return s.residentRepo.GetResidentsByHostelID(hostelID)
}

// GetResidentsByIDs retrieves residents whose IDs match the provided list
func (s *residentService) GetResidentsByIDs(ids []uint) ([]*models.Resident, error) {
	return s.residentRepo.GetResidentsByIDs(ids)
}

// GetContractEndedResidents lists current residents whose latest rent month
// lies before the current month. The due charge sits in the joining month and
// must not count as the schedule's end.
func (s *residentService) GetContractEndedResidents() ([]*models.Resident, error) {
	residents, err := s.residentRepo.GetCurrentResidentsWithPayments()
	if err != nil {
		return nil, fmt.Errorf("failed to get current residents: %w", err)
	}

	currentMonth := time.Now().Format(monthLayout)

	var ended []*models.Resident
	for _, resident := range residents {
		var lastRentMonth string
		for _, payment := range resident.Payments {
			// "YYYY-MM" compares chronologically as a string
			if payment.Type == models.PaymentTypeRent && payment.Month > lastRentMonth {
				lastRentMonth = payment.Month
			}
		}
		if lastRentMonth == "" {
			continue
		}
		if lastRentMonth < currentMonth {
			ended = append(ended, resident)
		}
	}

	return ended, nil
}

// computeDueAmount sums every onboarding fee whose paid flag is false
func computeDueAmount(resident *models.Resident) int64 {
	var due int64
	if !resident.DepositStatus {
		due += resident.Deposit
	}
	if !resident.MaintenanceChargeStatus {
		due += resident.MaintenanceCharge
	}
	if !resident.FormFeeStatus {
		due += resident.FormFee
	}
	if !resident.ExtraDayPaymentAmountStatus {
		due += resident.ExtraDayPaymentAmount
	}
	return due
}

// initialLivingStatus is "new" until any onboarding payment has been collected
func initialLivingStatus(resident *models.Resident, firstMonthRentPaid bool) models.LivingStatus {
	if !resident.DepositStatus && !firstMonthRentPaid &&
		!resident.ExtraDayPaymentAmountStatus && !resident.MaintenanceChargeStatus {
		return models.LivingNew
	}
	return models.LivingCurrent
}

// toInt64 normalizes the numeric types a JSON update map may carry
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
