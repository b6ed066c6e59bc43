package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LivingStatus is the lifecycle stage of a resident's tenancy
type LivingStatus string

const (
	LivingNew     LivingStatus = "new"
	LivingCurrent LivingStatus = "current"
	LivingOld     LivingStatus = "old"
)

// CanTransition reports whether a living status change is allowed.
// A resident never comes back from "old".
func (s LivingStatus) CanTransition(to LivingStatus) bool {
	switch s {
	case LivingNew:
		return to == LivingCurrent || to == LivingOld
	case LivingCurrent:
		return to == LivingOld
	default:
		return false
	}
}

// Resident represents the residents table
type Resident struct {
	ID              uint   `json:"id" gorm:"primarykey"`
	Name            string `json:"name" gorm:"column:name"`
	Email           string `json:"email" gorm:"column:email;uniqueIndex"`
	MobileNumber    string `json:"mobile_number" gorm:"column:mobile_number"`
	Address         string `json:"address" gorm:"column:address"`
	ParentsName     string `json:"parents_name" gorm:"column:parents_name"`
	ParentsMobileNo string `json:"parents_mobile_no" gorm:"column:parents_mobile_no"`
	Gender          string `json:"gender" gorm:"column:gender"`
	Password        string `json:"-" gorm:"column:password"`

	HostelID   uint   `json:"hostel_id" gorm:"column:hostel_id"`
	RoomID     uint   `json:"room_id" gorm:"column:room_id"`
	HostelName string `json:"hostel_name" gorm:"column:hostel_name"`
	RoomNumber string `json:"room_number" gorm:"column:room_number"`

	DateJoined      time.Time `json:"date_joined" gorm:"column:date_joined"`
	ContractEndDate time.Time `json:"contract_end_date" gorm:"column:contract_end_date"`
	ContractTerm    int       `json:"contract_term" gorm:"column:contract_term"`

	Rent                        int64 `json:"rent" gorm:"column:rent"`
	Deposit                     int64 `json:"deposit" gorm:"column:deposit"`
	DepositStatus               bool  `json:"deposit_status" gorm:"column:deposit_status"`
	MaintenanceCharge           int64 `json:"maintenance_charge" gorm:"column:maintenance_charge"`
	MaintenanceChargeStatus     bool  `json:"maintenance_charge_status" gorm:"column:maintenance_charge_status"`
	FormFee                     int64 `json:"form_fee" gorm:"column:form_fee"`
	FormFeeStatus               bool  `json:"form_fee_status" gorm:"column:form_fee_status"`
	ExtraDayPaymentAmount       int64 `json:"extra_day_payment_amount" gorm:"column:extra_day_payment_amount"`
	ExtraDayPaymentAmountStatus bool  `json:"extra_day_payment_amount_status" gorm:"column:extra_day_payment_amount_status"`
	ExtraDays                   int   `json:"extra_days" gorm:"column:extra_days"`
	DueAmount                   int64 `json:"due_amount" gorm:"column:due_amount"`

	DueChargePaymentID *uint `json:"due_charge_payment_id" gorm:"column:due_charge_payment_id"`

	AadhaarCardURL string `json:"aadhaar_card_url" gorm:"column:aadhaar_card_url"`
	ImageURL       string `json:"image_url" gorm:"column:image_url"`

	Living LivingStatus `json:"living" gorm:"column:living"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Ordered by insertion; generation appends one payment per contract month
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:ResidentID"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}

// BeforeSave hashes the resident password on insert and full saves. The length
// guard keeps an already-hashed value from being hashed again.
func (r *Resident) BeforeSave(tx *gorm.DB) error {
	if r.Password != "" && len(r.Password) < 60 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		r.Password = string(hashed)
	}
	return nil
}
