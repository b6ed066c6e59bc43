package service

import (
	"testing"
	"time"

	"hostel-be-svc/internal/repository"
	"hostel-be-svc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStatistics(t *testing.T) {
	env := newTestEnv(t)
	dashboard := NewDashboardService(repository.NewDashboardRepository(env.db), logger.NewLogger("error", "text"))

	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	resident := env.createResident(t, "asha@example.com", hostel.ID, room.ID, joined, 2)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(resident.ID, joined.AddDate(0, 2, 0)))
	require.NoError(t, env.occupancy.RecalculateOccupancy(hostel.ID))

	payments, err := env.paymentRepo.GetPaymentsByResident(resident.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	require.NoError(t, env.paymentService.ConfirmPayments([]uint{payments[0].ID}))

	stats, err := dashboard.GetDashboardStatistics(nil)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalBeds)
	assert.Equal(t, 1, stats.TotalTenants)
	assert.Equal(t, 9, stats.TotalRemainingBeds)
	assert.Equal(t, int64(2), stats.DuePayments)
	assert.Equal(t, int64(10000), stats.DueAmount)
	assert.Equal(t, int64(1), stats.SuccessfulPayments)
	assert.Equal(t, int64(5000), stats.CollectedAmount)
}

func TestGetDashboardStatistics_ScopedToHostel(t *testing.T) {
	env := newTestEnv(t)
	dashboard := NewDashboardService(repository.NewDashboardRepository(env.db), logger.NewLogger("error", "text"))

	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)
	other := env.createHostel(t, 5)
	otherRoom := env.createRoom(t, other.ID, 2)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mine := env.createResident(t, "mine@example.com", hostel.ID, room.ID, joined, 1)
	theirs := env.createResident(t, "theirs@example.com", other.ID, otherRoom.ID, joined, 1)

	require.NoError(t, env.paymentService.GenerateMonthlyPayments(mine.ID, joined.AddDate(0, 1, 0)))
	require.NoError(t, env.paymentService.GenerateMonthlyPayments(theirs.ID, joined.AddDate(0, 1, 0)))
	require.NoError(t, env.occupancy.RecalculateOccupancy(hostel.ID))
	require.NoError(t, env.occupancy.RecalculateOccupancy(other.ID))

	stats, err := dashboard.GetDashboardStatistics(&hostel.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalBeds)
	assert.Equal(t, 1, stats.TotalTenants)
	assert.Equal(t, int64(2), stats.DuePayments)
	assert.Equal(t, int64(10000), stats.DueAmount)
}
