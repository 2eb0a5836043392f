package favorites

import (
	"context"

	"glowbook/models"
)

// FavoritesService mirrors the server-held favorites set with optimistic
// local updates: a toggle is applied to the local cache and persistent store
// before the remote call resolves, then confirmed or reverted by the result.
// Once all in-flight operations settle, the local set equals the server's.
type FavoritesService interface {
	// Toggle flips membership for one service. A second toggle on the same
	// service while one is in flight fails with ToggleInFlightError.
	Toggle(ctx context.Context, accountID, serviceID string) (*models.Favorite, bool, error)
	// ClearAll empties the set optimistically and syncs the empty set to the
	// server, reverting to the prior full set on failure.
	ClearAll(ctx context.Context, accountID string) error
	// Favorites returns the current local mirror for rendering.
	Favorites(ctx context.Context, accountID string) ([]models.Favorite, error)
	// SignOut drops the account's mirror and persistent store entry.
	SignOut(ctx context.Context, accountID string) error
}
