package repository

import (
	"hostel-be-svc/internal/models"

	"gorm.io/gorm"
)

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	GetRoomByID(id uint) (*models.Room, error)
	GetRoomsByHostelID(hostelID uint) ([]*models.Room, error)
	CreateRoom(room *models.Room) error
	SaveRoom(room *models.Room) error
}

// roomRepository implements RoomRepository
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new instance of RoomRepository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{
		db: db,
	}
}

// GetRoomByID retrieves a room by ID
func (r *roomRepository) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room

	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// GetRoomsByHostelID retrieves all rooms of a hostel
func (r *roomRepository) GetRoomsByHostelID(hostelID uint) ([]*models.Room, error) {
	var rooms []*models.Room

	err := r.db.Where("hostel_id = ?", hostelID).Order("room_number ASC").Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

// CreateRoom creates a new room record
func (r *roomRepository) CreateRoom(room *models.Room) error {
	return r.db.Create(room).Error
}

// SaveRoom persists all fields of an existing room
func (r *roomRepository) SaveRoom(room *models.Room) error {
	return r.db.Save(room).Error
}
