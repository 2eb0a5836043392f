package models

// CancelResult is returned after a successful cancellation. WalletRefunded
// distinguishes an actual ledger credit from methods that need a manual
// refund outside the wallet.
type CancelResult struct {
	Appointment    Appointment `json:"appointment"`
	WalletRefunded bool        `json:"wallet_refunded"`
	RefundAmount   float64     `json:"refund_amount,omitempty"`
}

// RescheduleResult carries the canonical appointment after a reschedule.
type RescheduleResult struct {
	Appointment Appointment `json:"appointment"`
}

// ModifyServiceResult is returned after a service modification. Preview is
// the locally computed ledger instruction shown to the user beforehand;
// PriceDifference and WalletAdjusted are the server's authoritative outcome.
type ModifyServiceResult struct {
	Appointment     Appointment       `json:"appointment"`
	PriceDifference float64           `json:"price_difference"`
	WalletAdjusted  bool              `json:"wallet_adjusted"`
	Preview         LedgerInstruction `json:"preview"`
}
