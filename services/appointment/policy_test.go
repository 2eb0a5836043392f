package appointment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glowbook/models"
)

func TestDecideCancellationRefundEligibility(t *testing.T) {
	t.Parallel()

	// Only paid wallet appointments are refunded through the ledger.
	instr := DecideCancellation(models.PaymentMethodWallet, models.PaymentStatusPaid, 250)
	require.Equal(t, models.LedgerEffectCredit, instr.Effect)
	require.Equal(t, 250.0, instr.Amount)

	cases := []struct {
		method string
		status string
	}{
		{models.PaymentMethodCash, models.PaymentStatusPaid},
		{models.PaymentMethodCard, models.PaymentStatusPaid},
		{models.PaymentMethodBankTransfer, models.PaymentStatusPaid},
		{models.PaymentMethodMobile, models.PaymentStatusPaid},
		{models.PaymentMethodWallet, models.PaymentStatusPending},
		{models.PaymentMethodWallet, models.PaymentStatusFailed},
		{models.PaymentMethodWallet, models.PaymentStatusRefunded},
	}
	for _, tc := range cases {
		instr := DecideCancellation(tc.method, tc.status, 250)
		require.Equal(t, models.LedgerEffectNone, instr.Effect,
			"method=%s status=%s must not produce a ledger effect", tc.method, tc.status)
		require.Zero(t, instr.Amount)
	}
}

func TestDecideModification(t *testing.T) {
	t.Parallel()

	// Upgrade from R300 to R450 charges the difference.
	instr := DecideModification(300, 450)
	require.Equal(t, models.LedgerEffectDebit, instr.Effect)
	require.Equal(t, 150.0, instr.Amount)

	// Downgrade from R300 to R200 refunds the difference.
	instr = DecideModification(300, 200)
	require.Equal(t, models.LedgerEffectCredit, instr.Effect)
	require.Equal(t, 100.0, instr.Amount)

	// Same price, no effect.
	instr = DecideModification(300, 300)
	require.Equal(t, models.LedgerEffectNone, instr.Effect)
	require.Zero(t, instr.Amount)
}

func TestRefundEligible(t *testing.T) {
	t.Parallel()

	require.True(t, RefundEligible(models.PaymentMethodWallet, models.PaymentStatusPaid))
	require.False(t, RefundEligible(models.PaymentMethodCard, models.PaymentStatusPaid))
	require.False(t, RefundEligible(models.PaymentMethodWallet, models.PaymentStatusPending))
}
