package wallet

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"glowbook/api"
	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/models"
)

// DefaultWalletService implements WalletService over the remote client and
// the snapshot store.
type DefaultWalletService struct {
	Remote    api.Client
	Snapshots snapshotRepo.Repository
	Logger    *zap.Logger
}

func (s *DefaultWalletService) Snapshot(ctx context.Context, accountID string) (*models.Wallet, error) {
	wallet, err := s.Snapshots.GetWallet(ctx, accountID)
	if err == snapshotRepo.ErrNotFound {
		return s.Refresh(ctx, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet projection: %w", err)
	}
	return wallet, nil
}

func (s *DefaultWalletService) Refresh(ctx context.Context, accountID string) (*models.Wallet, error) {
	wallet, err := s.Remote.FetchWallet(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.Adopt(ctx, accountID, *wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Adopt replaces the local projection with the server payload. A payload
// that fails the replay invariant is still adopted, because the server is
// authoritative, but the divergence is logged loudly.
func (s *DefaultWalletService) Adopt(ctx context.Context, accountID string, wallet models.Wallet) error {
	wallet.AccountID = accountID
	if err := Verify(wallet); err != nil {
		s.Logger.Error("wallet payload failed ledger replay verification",
			zap.String("accountID", accountID),
			zap.Error(err))
	}
	if err := s.Snapshots.ReplaceWallet(ctx, accountID, wallet); err != nil {
		return fmt.Errorf("failed to store wallet projection: %w", err)
	}
	return nil
}

// balanceTolerance absorbs float64 representation error when folding
// fractional amounts. Anything past half a minor currency unit is a real
// divergence.
const balanceTolerance = 0.005

func balancesMatch(a, b float64) bool {
	return math.Abs(a-b) < balanceTolerance
}

// Replay folds the transaction log in creation order starting from zero and
// returns the final balance. It fails if any stored balance_after does not
// match the running balance.
func Replay(transactions []models.Transaction) (float64, error) {
	balance := 0.0
	for i, tx := range transactions {
		switch tx.Type {
		case models.TransactionCredit:
			balance += tx.Amount
		case models.TransactionDebit:
			balance -= tx.Amount
		default:
			return 0, fmt.Errorf("transaction %d (%s) has unknown type %q", i, tx.ID, tx.Type)
		}
		if !balancesMatch(balance, tx.BalanceAfter) {
			return 0, fmt.Errorf("transaction %d (%s): replayed balance %.2f does not match stored balance_after %.2f",
				i, tx.ID, balance, tx.BalanceAfter)
		}
	}
	return balance, nil
}

// Verify checks the full wallet payload against the replay invariant: the
// folded log must reproduce every balance_after and end at the current
// balance.
func Verify(wallet models.Wallet) error {
	final, err := Replay(wallet.Transactions)
	if err != nil {
		return err
	}
	if !balancesMatch(final, wallet.Balance) {
		return fmt.Errorf("replayed final balance %.2f does not match wallet balance %.2f", final, wallet.Balance)
	}
	return nil
}
