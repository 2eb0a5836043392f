package snapshotRepo

import (
	"context"
	"errors"

	"glowbook/models"
)

// ErrNotFound is returned when no snapshot exists yet for an account.
var ErrNotFound = errors.New("snapshot not found")

// Repository persists last-known-good per-account projections of server
// truth so dashboards can render without a round trip. Only the appointment
// orchestrator and the wallet service write to it; the stored values are
// always whole server payloads, never locally computed.
type Repository interface {
	// GetAppointments returns the cached appointment list for an account.
	GetAppointments(ctx context.Context, accountID string) ([]models.Appointment, error)
	// ReplaceAppointments swaps in a freshly fetched appointment list.
	ReplaceAppointments(ctx context.Context, accountID string, appointments []models.Appointment) error
	// UpsertAppointment replaces a single appointment within the cached list.
	UpsertAppointment(ctx context.Context, accountID string, appt models.Appointment) error
	// GetWallet returns the cached wallet projection for an account.
	GetWallet(ctx context.Context, accountID string) (*models.Wallet, error)
	// ReplaceWallet swaps in a freshly adopted wallet payload.
	ReplaceWallet(ctx context.Context, accountID string, wallet models.Wallet) error
	// Purge drops all cached projections for an account (sign-out contract).
	Purge(ctx context.Context, accountID string) error
	// Accounts lists every account that currently has a cached projection.
	Accounts(ctx context.Context) ([]string, error)
}
