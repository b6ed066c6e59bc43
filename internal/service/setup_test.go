package service

import (
	"testing"
	"time"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv bundles the services under test with their backing store
type testEnv struct {
	db              *gorm.DB
	residentRepo    repository.ResidentRepository
	paymentRepo     repository.PaymentRepository
	roomRepo        repository.RoomRepository
	hostelRepo      repository.HostelRepository
	occupancy       OccupancyService
	paymentService  PaymentService
	residentService ResidentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Hostel{},
		&models.Room{},
		&models.Resident{},
		&models.Payment{},
		&models.SchedulerLog{},
	))

	log := logger.NewLogger("error", "text")

	residentRepo := repository.NewResidentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	hostelRepo := repository.NewHostelRepository(db)

	occupancy := NewOccupancyService(hostelRepo, residentRepo, log)
	paymentService := NewPaymentService(paymentRepo, residentRepo, log)
	residentService := NewResidentService(residentRepo, roomRepo, hostelRepo, paymentRepo, paymentService, occupancy, db, log, t.TempDir())

	return &testEnv{
		db:              db,
		residentRepo:    residentRepo,
		paymentRepo:     paymentRepo,
		roomRepo:        roomRepo,
		hostelRepo:      hostelRepo,
		occupancy:       occupancy,
		paymentService:  paymentService,
		residentService: residentService,
	}
}

func (e *testEnv) createHostel(t *testing.T, totalBeds int) *models.Hostel {
	t.Helper()

	hostel := &models.Hostel{
		Name:               "Beiyo Heights",
		TotalBeds:          totalBeds,
		TotalRemainingBeds: totalBeds,
	}
	require.NoError(t, e.hostelRepo.CreateHostel(hostel))
	return hostel
}

func (e *testEnv) createRoom(t *testing.T, hostelID uint, capacity int) *models.Room {
	t.Helper()

	room := &models.Room{
		HostelID:          hostelID,
		RoomNumber:        "101",
		Price:             5000,
		Capacity:          capacity,
		RemainingCapacity: capacity,
	}
	require.NoError(t, e.roomRepo.CreateRoom(room))
	return room
}

// createResident inserts a resident directly, bypassing registration
func (e *testEnv) createResident(t *testing.T, email string, hostelID, roomID uint, dateJoined time.Time, termMonths int) *models.Resident {
	t.Helper()

	resident := &models.Resident{
		Name:            "Asha Verma",
		Email:           email,
		Password:        "secret",
		HostelID:        hostelID,
		RoomID:          roomID,
		DateJoined:      dateJoined,
		ContractEndDate: dateJoined.AddDate(0, termMonths, 0),
		ContractTerm:    termMonths,
		Rent:            5000,
		Deposit:         5000,
		DueAmount:       5000,
		Living:          models.LivingCurrent,
	}
	require.NoError(t, e.residentRepo.CreateResident(resident))
	return resident
}
