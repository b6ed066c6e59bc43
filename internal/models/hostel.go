package models

import (
	"time"
)

// Hostel represents the hostels table. TotalTenants and TotalRemainingBeds are
// derived counters recomputed by the occupancy service after every join/departure.
type Hostel struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	Name               string    `json:"name" gorm:"column:name"`
	Address            string    `json:"address" gorm:"column:address"`
	TotalBeds          int       `json:"total_beds" gorm:"column:total_beds"`
	TotalTenants       int       `json:"total_tenants" gorm:"column:total_tenants"`
	TotalRemainingBeds int       `json:"total_remaining_beds" gorm:"column:total_remaining_beds"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Hostel
func (Hostel) TableName() string {
	return "hostels"
}
