package models

// Ledger effects.
const (
	LedgerEffectNone   = "none"
	LedgerEffectCredit = "credit"
	LedgerEffectDebit  = "debit"
)

// LedgerInstruction is the policy engine's decision: what the system of
// record is expected to do to the account's ledger alongside an appointment
// action. It is advisory on the client side; the server result is truth.
type LedgerInstruction struct {
	Effect string  `json:"effect"` // "none", "credit" or "debit"
	Amount float64 `json:"amount"` // positive magnitude, 0 when Effect is "none"
}
