package domain

import "time"

// Booking statuses are free-form; Pending is the intake default.
const BookingStatusPending = "Pending"

// Booking is a repair-booking record. TicketID is the public reference code
// handed to the customer (format TF<year>-<8 chars>) and never changes after
// creation; ID is the internal key used by admin routes.
type Booking struct {
	ID           int64     `json:"id,string" form:"id"`
	TicketID     string    `gorm:"uniqueIndex;size:32" json:"ticket_id" form:"ticket_id"`
	DeviceType   string    `json:"device_type" form:"device_type"`
	DateSlot     string    `json:"date_slot" form:"date_slot"`
	Description  string    `json:"description" form:"description"`
	ContactPhone string    `gorm:"index" json:"contact_phone" form:"contact_phone"`
	Status       string    `json:"status" form:"status"`
	Estimate     *float64  `json:"estimate"`
	FinalAmount  *float64  `json:"final_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Booking) TableName() string {
	return "shop_booking"
}
