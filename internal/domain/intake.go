package domain

import "time"

// Intake records are created once from public forms and never modified; the
// admin panel only lists them.

// C2CRequest is a card-to-cash request.
type C2CRequest struct {
	ID        int64     `json:"id,string" form:"id"`
	RefID     string    `gorm:"uniqueIndex;size:32" json:"ref_id" form:"ref_id"`
	Brand     string    `json:"brand" form:"brand"`
	Amount    float64   `json:"amount" form:"amount"`
	Name      string    `json:"name" form:"name"`
	Phone     string    `json:"phone" form:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (C2CRequest) TableName() string {
	return "shop_c2c_request"
}

// CscBooking is a community-service-center appointment.
type CscBooking struct {
	ID        int64     `json:"id,string" form:"id"`
	RefID     string    `gorm:"uniqueIndex;size:32" json:"ref_id" form:"ref_id"`
	Service   string    `json:"service" form:"service"`
	Date      string    `json:"date" form:"date"`
	Name      string    `json:"name" form:"name"`
	Phone     string    `json:"phone" form:"phone"`
	Notes     string    `json:"notes" form:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (CscBooking) TableName() string {
	return "shop_csc_booking"
}

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	ID        int64     `json:"id,string" form:"id"`
	RefID     string    `gorm:"uniqueIndex;size:32" json:"ref_id" form:"ref_id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `json:"email" form:"email"`
	Phone     string    `json:"phone" form:"phone"`
	Subject   string    `json:"subject" form:"subject"`
	Message   string    `json:"message" form:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ContactMessage) TableName() string {
	return "shop_contact_message"
}
