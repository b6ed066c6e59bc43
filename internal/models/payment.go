package models

import (
	"time"
)

// Payment statuses
const (
	PaymentStatusDue        = "due"
	PaymentStatusSuccessful = "successful"
)

// Payment types
const (
	PaymentTypeRent      = "rent"
	PaymentTypeDueCharge = "dueCharge"
)

// Payment represents the payments table. Rent payments are generated one per
// contract month; a due-charge payment captures unpaid onboarding fees. At most
// one payment exists per (resident, month, type).
type Payment struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	DocumentID   string    `json:"document_id" gorm:"column:document_id"`
	ResidentID   uint      `json:"resident_id" gorm:"column:resident_id;uniqueIndex:idx_payments_resident_month_type"`
	ResidentName string    `json:"resident_name" gorm:"column:resident_name"`
	Amount       int64     `json:"amount" gorm:"column:amount"`
	Rent         int64     `json:"rent" gorm:"column:rent"`
	Month        string    `json:"month" gorm:"column:month;uniqueIndex:idx_payments_resident_month_type"`
	Date         time.Time `json:"date" gorm:"column:date"`
	Status       string    `json:"status" gorm:"column:status"`
	Type         string    `json:"type" gorm:"column:type;uniqueIndex:idx_payments_resident_month_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}
