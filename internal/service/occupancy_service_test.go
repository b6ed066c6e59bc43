package service

import (
	"testing"
	"time"

	"hostel-be-svc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateOccupancy_CountsNewAndCurrent(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	first := env.createResident(t, "first@example.com", hostel.ID, room.ID, joined, 2)
	first.Living = models.LivingNew
	require.NoError(t, env.residentRepo.SaveResident(first))

	env.createResident(t, "second@example.com", hostel.ID, room.ID, joined, 2)

	departed := env.createResident(t, "third@example.com", hostel.ID, room.ID, joined, 2)
	departed.Living = models.LivingOld
	require.NoError(t, env.residentRepo.SaveResident(departed))

	require.NoError(t, env.occupancy.RecalculateOccupancy(hostel.ID))

	reloaded, err := env.hostelRepo.GetHostelByID(hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TotalTenants)
	assert.Equal(t, 8, reloaded.TotalRemainingBeds)
}

func TestRecalculateOccupancy_IgnoresOtherHostels(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)
	room := env.createRoom(t, hostel.ID, 4)

	other := env.createHostel(t, 5)
	otherRoom := env.createRoom(t, other.ID, 2)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	env.createResident(t, "mine@example.com", hostel.ID, room.ID, joined, 2)
	env.createResident(t, "theirs@example.com", other.ID, otherRoom.ID, joined, 2)

	require.NoError(t, env.occupancy.RecalculateOccupancy(hostel.ID))

	reloaded, err := env.hostelRepo.GetHostelByID(hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.TotalTenants)
	assert.Equal(t, 9, reloaded.TotalRemainingBeds)

	// the other hostel's counters were never touched
	untouched, err := env.hostelRepo.GetHostelByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, untouched.TotalTenants)
	assert.Equal(t, 5, untouched.TotalRemainingBeds)
}

func TestRecalculateOccupancy_EmptyHostel(t *testing.T) {
	env := newTestEnv(t)
	hostel := env.createHostel(t, 10)

	require.NoError(t, env.occupancy.RecalculateOccupancy(hostel.ID))

	reloaded, err := env.hostelRepo.GetHostelByID(hostel.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.TotalTenants)
	assert.Equal(t, 10, reloaded.TotalRemainingBeds)
}
