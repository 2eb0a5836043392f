package models

import "time"

// Transaction types.
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Transaction is one row of an account's append-only ledger. Amount is a
// positive magnitude; BalanceAfter is always supplied by the system of
// record and adopted verbatim, never computed locally.
type Transaction struct {
	ID           string    `bson:"id" json:"id"`
	Amount       float64   `bson:"amount" json:"amount"`
	Type         string    `bson:"type" json:"type"` // "credit" or "debit"
	Description  string    `bson:"description" json:"description"`
	Reference    string    `bson:"reference" json:"reference"` // Correlates to the appointment or action that caused it
	BalanceAfter float64   `bson:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Wallet is an account's prepaid balance plus its transaction history,
// ordered by creation.
type Wallet struct {
	AccountID    string        `bson:"account_id" json:"account_id"`
	Balance      float64       `bson:"balance" json:"balance"`
	Currency     string        `bson:"currency" json:"currency"`
	Transactions []Transaction `bson:"transactions" json:"transactions"`
}
