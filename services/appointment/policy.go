package appointment

import (
	"math"

	"glowbook/models"
)

// Refund/charge policy engine. Pure decision logic: it returns the ledger
// instruction the orchestrator should expect the system of record to apply,
// and never mutates anything itself.

// DecideCancellation decides the ledger effect of cancelling an appointment.
// Only wallet-paid appointments are refund-eligible through the ledger; every
// other method requires a manual refund outside this system.
func DecideCancellation(paymentMethod, paymentStatus string, totalPrice float64) models.LedgerInstruction {
	if paymentMethod == models.PaymentMethodWallet && paymentStatus == models.PaymentStatusPaid {
		return models.LedgerInstruction{
			Effect: models.LedgerEffectCredit,
			Amount: totalPrice,
		}
	}
	return models.LedgerInstruction{Effect: models.LedgerEffectNone}
}

// DecideModification decides the ledger effect of swapping to a service with
// a different price: credit the difference on a downgrade, debit it on an
// upgrade, nothing when prices match.
func DecideModification(currentPrice, newPrice float64) models.LedgerInstruction {
	diff := newPrice - currentPrice
	switch {
	case diff > 0:
		return models.LedgerInstruction{Effect: models.LedgerEffectDebit, Amount: diff}
	case diff < 0:
		return models.LedgerInstruction{Effect: models.LedgerEffectCredit, Amount: math.Abs(diff)}
	default:
		return models.LedgerInstruction{Effect: models.LedgerEffectNone}
	}
}

// RefundEligible reports whether a cancellation of an appointment paid with
// the given method/status would produce a wallet credit.
func RefundEligible(paymentMethod, paymentStatus string) bool {
	return DecideCancellation(paymentMethod, paymentStatus, 0).Effect == models.LedgerEffectCredit
}
