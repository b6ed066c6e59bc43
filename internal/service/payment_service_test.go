package service

import (
	"testing"
	"time"

	"hostel-be-svc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMonthlyPayments_CoversJoinThroughEndMonth(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, end))

	payments, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)

	months := []string{"2024-01", "2024-02", "2024-03"}
	for i, payment := range payments {
		assert.Equal(t, months[i], payment.Month)
		assert.Equal(t, int64(5000), payment.Amount)
		assert.Equal(t, int64(5000), payment.Rent)
		assert.Equal(t, models.PaymentStatusDue, payment.Status)
		assert.Equal(t, models.PaymentTypeRent, payment.Type)
		assert.Equal(t, "Asha Verma", payment.ResidentName)
	}

	// contract term tracks the generated payment count
	reloaded, err := env.residentRepo.GetResidentByID(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.ContractTerm)
}

func TestGenerateMonthlyPayments_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, end))
	first, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, end))
	second, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestGenerateMonthlyPayments_ExtensionAppendsOnlyTrailingMonths(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	original, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)
	require.Len(t, original, 3)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)))
	extended, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)
	require.Len(t, extended, 5)

	for i := range original {
		assert.Equal(t, original[i].ID, extended[i].ID)
	}
	assert.Equal(t, "2024-04", extended[3].Month)
	assert.Equal(t, "2024-05", extended[4].Month)
}

func TestGenerateDueCharge_OnlyFirstCallHasEffect(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	require.NoError(t, env.paymentService.GenerateDueCharge(resident.ID))
	require.NoError(t, env.paymentService.GenerateDueCharge(resident.ID))

	count, err := env.paymentRepo.CountPaymentsByResident(resident.ID, models.PaymentTypeDueCharge)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	dueCharge, err := env.paymentRepo.GetPaymentByResidentMonthType(resident.ID, "2024-01", models.PaymentTypeDueCharge)
	require.NoError(t, err)
	require.NotNil(t, dueCharge)
	assert.Equal(t, int64(5000), dueCharge.Amount)
	assert.Equal(t, models.PaymentStatusDue, dueCharge.Status)

	reloaded, err := env.residentRepo.GetResidentByID(resident.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.DueChargePaymentID)
	assert.Equal(t, dueCharge.ID, *reloaded.DueChargePaymentID)
}

func TestMarkFirstRentPaymentSuccessful(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	require.NoError(t, env.paymentService.GenerateDueCharge(resident.ID))
	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, env.paymentService.MarkFirstRentPaymentSuccessful(resident.ID))

	payments, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)

	var successful []string
	for _, payment := range payments {
		if payment.Status == models.PaymentStatusSuccessful {
			successful = append(successful, payment.Type+":"+payment.Month)
		}
	}
	assert.Equal(t, []string{"rent:2024-01"}, successful)
}

func TestConfirmPayments(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)
	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	payments, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)

	require.NoError(t, env.paymentService.ConfirmPayments([]uint{payments[0].ID, payments[1].ID}))

	reloaded, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccessful, reloaded[0].Status)
	assert.Equal(t, models.PaymentStatusSuccessful, reloaded[1].Status)
	assert.Equal(t, models.PaymentStatusDue, reloaded[2].Status)
}

func TestConfirmPayments_EmptyIDs(t *testing.T) {
	env := newTestEnv(t)

	err := env.paymentService.ConfirmPayments(nil)
	assert.Error(t, err)
}

func TestRegeneratePayments_RecoversPartialState(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 3)

	// simulate a crash after only the first month was written
	require.NoError(t, env.paymentRepo.CreatePayment(&models.Payment{
		ResidentID:   resident.ID,
		ResidentName: resident.Name,
		Amount:       resident.Rent,
		Rent:         resident.Rent,
		Month:        "2024-01",
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.PaymentStatusDue,
		Type:         models.PaymentTypeRent,
	}))

	require.NoError(t, env.paymentService.RegeneratePayments(resident.ID))

	rentCount, err := env.paymentRepo.CountPaymentsByResident(resident.ID, models.PaymentTypeRent)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rentCount) // 2024-01 through 2024-04

	dueCount, err := env.paymentRepo.CountPaymentsByResident(resident.ID, models.PaymentTypeDueCharge)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dueCount)
}
