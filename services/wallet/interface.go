package wallet

import (
	"context"

	"glowbook/models"
)

// WalletService holds the client-side projection of an account's ledger.
// It never computes balances itself: every stored wallet is a whole payload
// from the system of record, checked against the replay invariant on the
// way in.
type WalletService interface {
	// Snapshot returns the cached wallet projection, refreshing from the
	// remote when no projection exists yet.
	Snapshot(ctx context.Context, accountID string) (*models.Wallet, error)
	// Refresh fetches the authoritative wallet and replaces the projection.
	Refresh(ctx context.Context, accountID string) (*models.Wallet, error)
	// Adopt replaces the projection with a server-supplied wallet payload.
	Adopt(ctx context.Context, accountID string, wallet models.Wallet) error
}
