package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"hostel-be-svc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func registrationResident(email string, hostelID, roomID uint) *models.Resident {
	return &models.Resident{
		Name:              "Asha Verma",
		Email:             email,
		Password:          "secret",
		MobileNumber:      "9876543210",
		HostelID:          hostelID,
		RoomID:            roomID,
		DateJoined:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ContractTerm:      3,
		Rent:              5000,
		Deposit:           5000,
		FormFee:           500,
		MaintenanceCharge: 1000,
	}
}

func TestRegister_GeneratesScheduleAndDueCharge(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	input := registrationResident("asha@example.com", hostel.ID, room.ID)
	input.MaintenanceChargeStatus = true

	registered, err := env.residentService.Register(input, false)
	require.NoError(t, err)

	assert.Equal(t, hostel.Name, registered.HostelName)
	assert.Equal(t, room.RoomNumber, registered.RoomNumber)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), registered.ContractEndDate)

	// maintenance was collected up front, so the resident is already current
	assert.Equal(t, models.LivingCurrent, registered.Living)

	// deposit and form fee are unpaid
	assert.Equal(t, int64(5500), registered.DueAmount)

	// a 3-month contract joined mid-January runs January through April
	var months []string
	var dueCharges int
	for _, payment := range registered.Payments {
		switch payment.Type {
		case models.PaymentTypeRent:
			months = append(months, payment.Month)
			assert.Equal(t, int64(5000), payment.Amount)
			assert.Equal(t, models.PaymentStatusDue, payment.Status)
		case models.PaymentTypeDueCharge:
			dueCharges++
			assert.Equal(t, int64(5500), payment.Amount)
		}
	}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03", "2024-04"}, months)
	assert.Equal(t, 1, dueCharges)
	assert.Equal(t, 4, registered.ContractTerm)

	reloadedRoom, err := env.roomRepo.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloadedRoom.RemainingCapacity)

	reloadedHostel, err := env.hostelRepo.GetHostelByID(hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloadedHostel.TotalTenants)
	assert.Equal(t, 9, reloadedHostel.TotalRemainingBeds)
}

func TestRegister_NothingPaidStartsAsNew(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	registered, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	assert.Equal(t, models.LivingNew, registered.Living)
	// deposit + maintenance + form fee, nothing collected yet
	assert.Equal(t, int64(6500), registered.DueAmount)
}

func TestRegister_FirstMonthRentPaid(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	registered, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), true)
	require.NoError(t, err)

	assert.Equal(t, models.LivingCurrent, registered.Living)

	first, err := env.paymentRepo.GetPaymentByResidentMonthType(registered.ID, "2024-01", models.PaymentTypeRent)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, models.PaymentStatusSuccessful, first.Status)

	second, err := env.paymentRepo.GetPaymentByResidentMonthType(registered.ID, "2024-02", models.PaymentTypeRent)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, models.PaymentStatusDue, second.Status)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	_, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	_, err = env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_EmailCheckStoreError(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	// A broken residents table must surface as a store failure, not pass the
	// uniqueness check as if the email were free.
	require.NoError(t, env.db.Migrator().DropTable(&models.Resident{}))

	_, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorContains(t, err, "failed to check email")
}

func TestRegister_UnknownHostelAndRoom(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	_, err := env.residentService.Register(registrationResident("asha@example.com", 999, room.ID), false)
	assert.ErrorIs(t, err, ErrHostelNotFound)

	_, err = env.residentService.Register(registrationResident("asha@example.com", hostel.ID, 999), false)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegister_RoomFullRollsBack(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 1)

	_, err := env.residentService.Register(registrationResident("first@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	_, err = env.residentService.Register(registrationResident("second@example.com", hostel.ID, room.ID), false)
	assert.ErrorIs(t, err, ErrRoomFull)

	// the rejected resident must not survive the transaction
	_, err = env.residentRepo.GetResidentByEmail("second@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	reloadedRoom, err := env.roomRepo.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloadedRoom.RemainingCapacity)
}

func TestRegister_HostelFullRollsBack(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 1)
	room := env.createRoom(t, hostel.ID, 2)

	_, err := env.residentService.Register(registrationResident("first@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	_, err = env.residentService.Register(registrationResident("second@example.com", hostel.ID, room.ID), false)
	assert.ErrorIs(t, err, ErrHostelFull)

	// the room bed taken inside the failed transaction is given back
	reloadedRoom, err := env.roomRepo.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloadedRoom.RemainingCapacity)
}

func TestDepart_ReleasesBed(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	registered, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	departed, err := env.residentService.Depart(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LivingOld, departed.Living)

	reloadedRoom, err := env.roomRepo.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloadedRoom.RemainingCapacity)

	reloadedHostel, err := env.hostelRepo.GetHostelByID(hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloadedHostel.TotalTenants)
	assert.Equal(t, 10, reloadedHostel.TotalRemainingBeds)
}

func TestDepart_AlreadyDepartedIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	registered, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	_, err = env.residentService.Depart(registered.ID)
	require.NoError(t, err)

	// a second departure must not release another bed
	departed, err := env.residentService.Depart(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LivingOld, departed.Living)

	reloadedRoom, err := env.roomRepo.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloadedRoom.RemainingCapacity)
}

func TestDepart_UnknownResident(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.residentService.Depart(999)
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestExtendContract_AppendsMonths(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	input := registrationResident("asha@example.com", hostel.ID, room.ID)
	input.ContractTerm = 2
	registered, err := env.residentService.Register(input, false)
	require.NoError(t, err)

	before, err := env.paymentRepo.GetPaymentsByResident(registered.ID)
	require.NoError(t, err)

	extended, err := env.residentService.ExtendContract(registered.ID, 2)
	require.NoError(t, err)

	// Jan 15 + 2 months, then + 2 more
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), extended.ContractEndDate)

	var months []string
	for _, payment := range extended.Payments {
		if payment.Type == models.PaymentTypeRent {
			months = append(months, payment.Month)
		}
	}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05"}, months)

	// payments generated before the extension are untouched
	after, err := env.paymentRepo.GetPaymentsByResident(registered.ID)
	require.NoError(t, err)
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Status, after[i].Status)
	}
}

func TestUpdateResident_RentChangePropagates(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	registered, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	updated, err := env.residentService.UpdateResident(registered.ID, map[string]interface{}{"rent": int64(6000)})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), updated.Rent)

	payments, err := env.paymentRepo.GetPaymentsByResident(registered.ID)
	require.NoError(t, err)
	for _, payment := range payments {
		if payment.Type == models.PaymentTypeRent {
			assert.Equal(t, int64(6000), payment.Amount)
			assert.Equal(t, int64(6000), payment.Rent)
		} else {
			// the due charge keeps its original amount
			assert.Equal(t, registered.DueAmount, payment.Amount)
		}
	}
}

func TestUpdateResident_HashesPassword(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	registered, err := env.residentService.Register(registrationResident("asha@example.com", hostel.ID, room.ID), false)
	require.NoError(t, err)

	_, err = env.residentService.UpdateResident(registered.ID, map[string]interface{}{"password": "changed-secret"})
	require.NoError(t, err)

	reloaded, err := env.residentRepo.GetResidentByID(registered.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed-secret", reloaded.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("changed-secret")))
}

func TestUploadResidentDocuments(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	updated, err := env.residentService.UploadResidentDocuments(resident.ID, []byte("aadhaar"), []byte("photo"))
	require.NoError(t, err)

	require.NotEmpty(t, updated.AadhaarCardURL)
	require.NotEmpty(t, updated.ImageURL)

	aadhaar, err := os.ReadFile(updated.AadhaarCardURL)
	require.NoError(t, err)
	assert.Equal(t, []byte("aadhaar"), aadhaar)

	image, err := os.ReadFile(updated.ImageURL)
	require.NoError(t, err)
	assert.Equal(t, []byte("photo"), image)
}

func TestGetContractEndedResidents_MonthBoundary(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	currentMonth := startOfMonth(time.Now())
	lastMonth := currentMonth.AddDate(0, -1, 0)

	ended := env.createResident(t, "ended@example.com", hostel.ID, room.ID, lastMonth.AddDate(0, -2, 0), 2)
	require.NoError(t, env.paymentService.GenerateMonthlyPayments(ended.ID, lastMonth))

	active := env.createResident(t, "active@example.com", hostel.ID, room.ID, lastMonth, 1)
	require.NoError(t, env.paymentService.GenerateMonthlyPayments(active.ID, currentMonth))

	noPayments := env.createResident(t, "nopayments@example.com", hostel.ID, room.ID, lastMonth, 1)
	_ = noPayments

	results, err := env.residentService.GetContractEndedResidents()
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "ended@example.com", results[0].Email)
}

func TestGetContractEndedResidents_IgnoresDueChargeMonth(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	// Registration appends the due charge after the rent schedule, carrying
	// the joining month. A resident with months of rent still ahead must not
	// be reported just because that trailing payment is in the past.
	input := registrationResident("asha@example.com", hostel.ID, room.ID)
	input.DateJoined = startOfMonth(time.Now()).AddDate(0, -2, 0)
	input.ContractTerm = 12

	registered, err := env.residentService.Register(input, true)
	require.NoError(t, err)
	require.Equal(t, models.LivingCurrent, registered.Living)

	lastPayment := registered.Payments[len(registered.Payments)-1]
	require.Equal(t, models.PaymentTypeDueCharge, lastPayment.Type)

	results, err := env.residentService.GetContractEndedResidents()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetContractEndedResidents_ReportsExpiredSchedule(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	input := registrationResident("asha@example.com", hostel.ID, room.ID)
	input.DateJoined = startOfMonth(time.Now()).AddDate(0, -4, 0)
	input.ContractTerm = 2

	registered, err := env.residentService.Register(input, true)
	require.NoError(t, err)

	results, err := env.residentService.GetContractEndedResidents()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, registered.ID, results[0].ID)
}

func TestGetContractEndedResidents_SkipsDeparted(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	lastMonth := startOfMonth(time.Now()).AddDate(0, -1, 0)

	resident := env.createResident(t, "old@example.com", hostel.ID, room.ID, lastMonth.AddDate(0, -1, 0), 1)
	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, lastMonth))

	resident.Living = models.LivingOld
	require.NoError(t, env.residentRepo.SaveResident(resident))

	results, err := env.residentService.GetContractEndedResidents()
	require.NoError(t, err)
	assert.Empty(t, results)
}
