package snapshotRepo

import (
	"context"
	"sync"

	"glowbook/models"
)

// MemorySnapshotRepo is an in-process Repository used in tests and local
// development without MongoDB.
type MemorySnapshotRepo struct {
	mu           sync.RWMutex
	appointments map[string][]models.Appointment
	wallets      map[string]models.Wallet
}

func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{
		appointments: make(map[string][]models.Appointment),
		wallets:      make(map[string]models.Wallet),
	}
}

func (r *MemorySnapshotRepo) GetAppointments(ctx context.Context, accountID string) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appointments, ok := r.appointments[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]models.Appointment, len(appointments))
	copy(out, appointments)
	return out, nil
}

func (r *MemorySnapshotRepo) ReplaceAppointments(ctx context.Context, accountID string, appointments []models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]models.Appointment, len(appointments))
	copy(stored, appointments)
	r.appointments[accountID] = stored
	return nil
}

func (r *MemorySnapshotRepo) UpsertAppointment(ctx context.Context, accountID string, appt models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointments := r.appointments[accountID]
	for i := range appointments {
		if appointments[i].ID == appt.ID {
			appointments[i] = appt
			return nil
		}
	}
	r.appointments[accountID] = append(appointments, appt)
	return nil
}

func (r *MemorySnapshotRepo) GetWallet(ctx context.Context, accountID string) (*models.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.wallets[accountID]
	if !ok {
		return nil, ErrNotFound
	}
	out := wallet
	out.Transactions = make([]models.Transaction, len(wallet.Transactions))
	copy(out.Transactions, wallet.Transactions)
	return &out, nil
}

func (r *MemorySnapshotRepo) ReplaceWallet(ctx context.Context, accountID string, wallet models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := wallet
	stored.Transactions = make([]models.Transaction, len(wallet.Transactions))
	copy(stored.Transactions, wallet.Transactions)
	r.wallets[accountID] = stored
	return nil
}

func (r *MemorySnapshotRepo) Accounts(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var accounts []string
	for id := range r.appointments {
		if !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}
	for id := range r.wallets {
		if !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}
	return accounts, nil
}

func (r *MemorySnapshotRepo) Purge(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, accountID)
	delete(r.wallets, accountID)
	return nil
}
