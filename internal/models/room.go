package models

import (
	"time"
)

// Room represents the rooms table
type Room struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	HostelID          uint      `json:"hostel_id" gorm:"column:hostel_id"`
	RoomNumber        string    `json:"room_number" gorm:"column:room_number"`
	Price             int64     `json:"price" gorm:"column:price"`
	Capacity          int       `json:"capacity" gorm:"column:capacity"`
	RemainingCapacity int       `json:"remaining_capacity" gorm:"column:remaining_capacity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Room
func (Room) TableName() string {
	return "rooms"
}
