package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glowbook/api"
	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/models"
)

func sampleLedger() []models.Transaction {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{ID: "t1", Amount: 1000, Type: models.TransactionCredit, Description: "top up", BalanceAfter: 1000, CreatedAt: base},
		{ID: "t2", Amount: 300, Type: models.TransactionDebit, Description: "booking GB-1001", Reference: "a1", BalanceAfter: 700, CreatedAt: base.Add(time.Hour)},
		{ID: "t3", Amount: 300, Type: models.TransactionCredit, Description: "refund GB-1001", Reference: "a1", BalanceAfter: 1000, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "t4", Amount: 150, Type: models.TransactionDebit, Description: "service upgrade GB-1002", Reference: "a2", BalanceAfter: 850, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func TestReplay(t *testing.T) {
	t.Parallel()

	final, err := Replay(sampleLedger())
	require.NoError(t, err)
	require.Equal(t, 850.0, final)

	final, err = Replay(nil)
	require.NoError(t, err)
	require.Zero(t, final)
}

func TestReplayDetectsTamperedBalance(t *testing.T) {
	t.Parallel()

	txs := sampleLedger()
	txs[2].BalanceAfter = 999

	_, err := Replay(txs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "t3")
	require.Contains(t, err.Error(), "balance_after")
}

func TestReplayRejectsUnknownType(t *testing.T) {
	t.Parallel()

	txs := []models.Transaction{
		{ID: "t1", Amount: 50, Type: "transfer", BalanceAfter: 50},
	}
	_, err := Replay(txs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown type")
}

func TestVerify(t *testing.T) {
	t.Parallel()

	w := models.Wallet{
		AccountID:    "acct-1",
		Balance:      850,
		Currency:     "ZAR",
		Transactions: sampleLedger(),
	}
	require.NoError(t, Verify(w))

	w.Balance = 900
	err := Verify(w)
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not match wallet balance")
}

type stubWalletRemote struct {
	api.Client
	wallet *models.Wallet
	err    error
	calls  int
}

func (s *stubWalletRemote) FetchWallet(ctx context.Context, accountID string) (*models.Wallet, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.wallet, nil
}

func TestSnapshotFallsBackToRemoteOnMiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	remote := &stubWalletRemote{wallet: &models.Wallet{
		AccountID:    "acct-1",
		Balance:      850,
		Currency:     "ZAR",
		Transactions: sampleLedger(),
	}}
	snapshots := snapshotRepo.NewMemorySnapshotRepo()
	svc := &DefaultWalletService{Remote: remote, Snapshots: snapshots, Logger: zap.NewNop()}

	w, err := svc.Snapshot(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, 850.0, w.Balance)
	require.Equal(t, 1, remote.calls)

	// The fetch populated the projection; the next read stays local.
	w, err = svc.Snapshot(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, 850.0, w.Balance)
	require.Equal(t, 1, remote.calls)
}

func TestRefreshPropagatesRemoteFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	remote := &stubWalletRemote{err: errors.New("gateway timeout")}
	snapshots := snapshotRepo.NewMemorySnapshotRepo()
	svc := &DefaultWalletService{Remote: remote, Snapshots: snapshots, Logger: zap.NewNop()}

	_, err := svc.Refresh(ctx, "acct-1")
	require.Error(t, err)

	_, err = snapshots.GetWallet(ctx, "acct-1")
	require.ErrorIs(t, err, snapshotRepo.ErrNotFound)
}

func TestAdoptStoresDivergentPayload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	snapshots := snapshotRepo.NewMemorySnapshotRepo()
	svc := &DefaultWalletService{Snapshots: snapshots, Logger: zap.NewNop()}

	// Balance disagrees with the folded log; the payload is adopted anyway
	// because the server owns the ledger.
	divergent := models.Wallet{
		Balance:      999,
		Currency:     "ZAR",
		Transactions: sampleLedger(),
	}
	require.NoError(t, svc.Adopt(ctx, "acct-1", divergent))

	stored, err := snapshots.GetWallet(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, 999.0, stored.Balance)
	require.Equal(t, "acct-1", stored.AccountID)
}

func TestReplayToleratesFloatRepresentationError(t *testing.T) {
	t.Parallel()

	// 0.1+0.1+0.1 folds to 0.30000000000000004 in float64; the ledger must
	// not flag that as divergence.
	txs := []models.Transaction{
		{ID: "t1", Amount: 0.1, Type: models.TransactionCredit, BalanceAfter: 0.1},
		{ID: "t2", Amount: 0.1, Type: models.TransactionCredit, BalanceAfter: 0.2},
		{ID: "t3", Amount: 0.1, Type: models.TransactionCredit, BalanceAfter: 0.3},
	}
	final, err := Replay(txs)
	require.NoError(t, err)
	require.InDelta(t, 0.3, final, 0.005)

	require.NoError(t, Verify(models.Wallet{Balance: 0.3, Transactions: txs}))

	// A whole missing cent is still caught.
	txs[2].BalanceAfter = 0.31
	_, err = Replay(txs)
	require.Error(t, err)
}
