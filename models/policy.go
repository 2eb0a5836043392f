package models

// BookingPolicy is the read-mostly cancellation/reschedule reference data
// fetched from the system of record.
type BookingPolicy struct {
	CancellationWindowHours int      `json:"cancellation_window_hours"`
	RescheduleWindowHours   int      `json:"reschedule_window_hours"`
	RefundEligible          []string `json:"refund_eligible"`  // payment methods
	NonRefundable           []string `json:"non_refundable"`   // payment methods
	PolicyText              string   `json:"policy_text"`
}
