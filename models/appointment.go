package models

import "time"

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Payment methods.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodWallet       = "wallet"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMobile       = "mobile"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Appointment is the client-held projection of an appointment owned by the
// system of record. Price is the amount quoted at booking time and never
// changes; TotalPrice reflects service modifications and discounts.
type Appointment struct {
	ID               string    `bson:"id" json:"id"`
	BookingReference string    `bson:"booking_reference" json:"booking_reference"` // Unique, human-shareable
	AccountID        string    `bson:"account_id" json:"account_id"`
	AppointmentDate  string    `bson:"appointment_date" json:"appointment_date"` // "YYYY-MM-DD"
	AppointmentTime  string    `bson:"appointment_time" json:"appointment_time"` // "HH:MM"
	DurationMinutes  int       `bson:"duration_minutes" json:"duration_minutes"`
	Service          ServiceSnapshot `bson:"service" json:"service"`
	StaffID          string    `bson:"staff_id,omitempty" json:"staff_id,omitempty"`
	StaffName        string    `bson:"staff_name,omitempty" json:"staff_name,omitempty"`
	Price            float64   `bson:"price" json:"price"`
	TotalPrice       float64   `bson:"total_price" json:"total_price"`
	PaymentMethod    string    `bson:"payment_method" json:"payment_method"`
	PaymentStatus    string    `bson:"payment_status" json:"payment_status"`
	Status           string    `bson:"status" json:"status"`
	ConfirmedAt      *time.Time `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CancelledAt      *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CancellationReason string  `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`

	// Policy flags computed by the system of record and trusted as-is.
	CanCancel     bool `bson:"can_cancel" json:"can_cancel"`
	CanReschedule bool `bson:"can_reschedule" json:"can_reschedule"`
}

// Terminal reports whether no further status transition is possible.
func (a *Appointment) Terminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
