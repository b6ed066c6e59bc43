package response

// DashboardStatisticsResponse represents occupancy and payment statistics
type DashboardStatisticsResponse struct {
	TotalBeds          int   `json:"total_beds"`
	TotalTenants       int   `json:"total_tenants"`
	TotalRemainingBeds int   `json:"total_remaining_beds"`
	DuePayments        int64 `json:"due_payments"`
	DueAmount          int64 `json:"due_amount"`
	SuccessfulPayments int64 `json:"successful_payments"`
	CollectedAmount    int64 `json:"collected_amount"`
}

// PaymentExportRow represents one row of the payment Excel export
type PaymentExportRow struct {
	ResidentName string `json:"resident_name"`
	HostelName   string `json:"hostel_name"`
	RoomNumber   string `json:"room_number"`
	Month        string `json:"month"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
	Type         string `json:"type"`
}
