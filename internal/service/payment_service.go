package service

import (
	"fmt"
	"time"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// monthLayout is the period key stored on every payment
const monthLayout = "2006-01"

// PaymentService defines the interface for payment business operations
type PaymentService interface {
	// GenerateMonthlyPayments creates one due rent payment per contract month
	// from the joining month through the month of contractEndDate. Safe to
	// re-run; existing months are never duplicated.
	GenerateMonthlyPayments(residentID uint, contractEndDate time.Time) error
	// GenerateDueCharge creates the one-time payment capturing unpaid
	// onboarding fees. Only the first call has effect.
	GenerateDueCharge(residentID uint) error
	// RegeneratePayments re-runs both generators against the resident's
	// stored contract end date, e.g. to recover from a partial failure.
	RegeneratePayments(residentID uint) error
	GetPaymentsByResident(residentID uint) ([]*models.Payment, error)
	ConfirmPayments(ids []uint) error
	MarkFirstRentPaymentSuccessful(residentID uint) error
	ExportPaymentsToExcel(hostelID *uint, month *string, status *string) ([]byte, string, error)
}

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo  repository.PaymentRepository
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, residentRepo repository.ResidentRepository, logger *logger.Logger) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// GenerateMonthlyPayments walks the contract period month by month. The loop
// runs from the first day of the joining month up to and including the month of
// contractEndDate. After every step the resident's contract term is updated to
// the number of rent payments on record.
func (s *paymentService) GenerateMonthlyPayments(residentID uint, contractEndDate time.Time) error {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		return fmt.Errorf("failed to get resident: %w", err)
	}

	startDate := startOfMonth(resident.DateJoined)
	endBoundary := startOfMonth(contractEndDate).AddDate(0, 1, 0)

	for current := startDate; current.Before(endBoundary); current = current.AddDate(0, 1, 0) {
		month := current.Format(monthLayout)

		existing, err := s.paymentRepo.GetPaymentByResidentMonthType(residentID, month, models.PaymentTypeRent)
		if err != nil {
			return fmt.Errorf("failed to check existing payment for %s: %w", month, err)
		}

		if existing == nil {
			payment := &models.Payment{
				DocumentID:   "rent-" + uuid.New().String(),
				ResidentID:   residentID,
				ResidentName: resident.Name,
				Amount:       resident.Rent,
				Rent:         resident.Rent,
				Month:        month,
				Date:         current,
				Status:       models.PaymentStatusDue,
				Type:         models.PaymentTypeRent,
			}
			if err := s.paymentRepo.CreatePayment(payment); err != nil {
				return fmt.Errorf("failed to create payment for %s: %w", month, err)
			}

			s.logger.WithFields(map[string]interface{}{
				"resident_id": residentID,
				"month":       month,
				"amount":      payment.Amount,
			}).Info("Rent payment generated")
		}

		// Contract term tracks the generated payment count, not the
		// originally requested month count.
		count, err := s.paymentRepo.CountPaymentsByResident(residentID, models.PaymentTypeRent)
		if err != nil {
			return fmt.Errorf("failed to count payments: %w", err)
		}
		resident.ContractTerm = int(count)
		if err := s.residentRepo.SaveResident(resident); err != nil {
			return fmt.Errorf("failed to save resident: %w", err)
		}
	}

	return nil
}

// GenerateDueCharge records the unpaid onboarding fees as a single due-charge
// payment in the joining month
func (s *paymentService) GenerateDueCharge(residentID uint) error {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		return fmt.Errorf("failed to get resident: %w", err)
	}

	startDate := startOfMonth(resident.DateJoined)
	month := startDate.Format(monthLayout)

	existing, err := s.paymentRepo.GetPaymentByResidentMonthType(residentID, month, models.PaymentTypeDueCharge)
	if err != nil {
		return fmt.Errorf("failed to check existing due charge: %w", err)
	}
	if existing != nil {
		return nil
	}

	payment := &models.Payment{
		DocumentID:   "due-" + uuid.New().String(),
		ResidentID:   residentID,
		ResidentName: resident.Name,
		Amount:       resident.DueAmount,
		Month:        month,
		Date:         startDate,
		Status:       models.PaymentStatusDue,
		Type:         models.PaymentTypeDueCharge,
	}
	if err := s.paymentRepo.CreatePayment(payment); err != nil {
		return fmt.Errorf("failed to create due charge: %w", err)
	}

	resident.DueChargePaymentID = &payment.ID
	if err := s.residentRepo.SaveResident(resident); err != nil {
		return fmt.Errorf("failed to save resident: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": residentID,
		"month":       month,
		"amount":      payment.Amount,
	}).Info("Due charge generated")

	return nil
}

// RegeneratePayments replays monthly and due-charge generation. The per-month
// idempotency check makes this safe after a crash mid-generation.
func (s *paymentService) RegeneratePayments(residentID uint) error {
	resident, err := s.residentRepo.GetResidentByID(residentID)
	if err != nil {
		return fmt.Errorf("failed to get resident: %w", err)
	}

	if err := s.GenerateMonthlyPayments(residentID, resident.ContractEndDate); err != nil {
		return err
	}

	return s.GenerateDueCharge(residentID)
}

// GetPaymentsByResident retrieves a resident's payments in insertion order
func (s *paymentService) GetPaymentsByResident(residentID uint) ([]*models.Payment, error) {
	return s.paymentRepo.GetPaymentsByResident(residentID)
}

// ConfirmPayments marks the given payments as successful
func (s *paymentService) ConfirmPayments(ids []uint) error {
	if len(ids) == 0 {
		return fmt.Errorf("no payment ids provided")
	}

	if err := s.paymentRepo.UpdateStatusByIDs(ids, models.PaymentStatusSuccessful); err != nil {
		return fmt.Errorf("failed to confirm payments: %w", err)
	}

	s.logger.WithField("payment_ids", ids).Info("Payments confirmed")
	return nil
}

// MarkFirstRentPaymentSuccessful flips the earliest rent payment of a resident
// to successful. Used when the first month's rent was collected at registration.
func (s *paymentService) MarkFirstRentPaymentSuccessful(residentID uint) error {
	payments, err := s.paymentRepo.GetPaymentsByResident(residentID)
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}

	for _, payment := range payments {
		if payment.Type == models.PaymentTypeRent {
			return s.paymentRepo.UpdateStatusByIDs([]uint{payment.ID}, models.PaymentStatusSuccessful)
		}
	}

	return fmt.Errorf("resident %d has no rent payments", residentID)
}

// ExportPaymentsToExcel exports payment data to an Excel file
func (s *paymentService) ExportPaymentsToExcel(hostelID *uint, month *string, status *string) ([]byte, string, error) {
	rows, err := s.paymentRepo.GetPaymentsForExport(hostelID, month, status)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get payment data: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Payments"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Resident", "Hostel", "Room", "Month", "Amount", "Status", "Type"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "H1", headerStyle)
	}

	for i, row := range rows {
		rowNum := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), row.ResidentName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), row.HostelName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), row.RoomNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), row.Month)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), row.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), row.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), row.Type)
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("payment_export_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}

// startOfMonth returns midnight UTC on the first day of t's month
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
