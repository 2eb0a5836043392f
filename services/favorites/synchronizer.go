package favorites

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"glowbook/api"
	"glowbook/models"
)

// DefaultFavoritesService keeps a per-account in-memory mirror of the
// server-held set plus a write-through persistent store. Mutations are
// optimistic with revert-on-failure; at most one divergence per item is in
// flight at any time.
type DefaultFavoritesService struct {
	Remote api.Client
	Store  Store
	Logger *zap.Logger

	mu       sync.Mutex
	mirror   map[string]map[string]models.Favorite // accountID -> serviceID -> favorite
	pending  map[string]map[string]bool            // accountID -> serviceID in flight
	clearing map[string]bool                       // accountID with a ClearAll in flight
}

func NewDefaultFavoritesService(remote api.Client, store Store, logger *zap.Logger) *DefaultFavoritesService {
	return &DefaultFavoritesService{
		Remote:   remote,
		Store:    store,
		Logger:   logger,
		mirror:   make(map[string]map[string]models.Favorite),
		pending:  make(map[string]map[string]bool),
		clearing: make(map[string]bool),
	}
}

func (s *DefaultFavoritesService) Toggle(ctx context.Context, accountID, serviceID string) (*models.Favorite, bool, error) {
	s.mu.Lock()
	set, err := s.loadLocked(ctx, accountID)
	if err != nil {
		s.mu.Unlock()
		return nil, false, err
	}
	if s.pending[accountID][serviceID] || s.clearing[accountID] {
		s.mu.Unlock()
		return nil, false, NewToggleInFlightError(serviceID)
	}

	prev, wasFavorite := set[serviceID]
	if wasFavorite {
		delete(set, serviceID)
	} else {
		set[serviceID] = models.Favorite{ServiceID: serviceID}
	}
	s.markPending(accountID, serviceID)

	// Optimistic apply: persistent store is updated before the remote call.
	if err := s.Store.Save(ctx, accountID, setToList(set)); err != nil {
		if wasFavorite {
			set[serviceID] = prev
		} else {
			delete(set, serviceID)
		}
		s.clearPending(accountID, serviceID)
		s.mu.Unlock()
		return nil, false, err
	}
	s.mu.Unlock()

	resp, err := s.Remote.ToggleFavorite(ctx, accountID, serviceID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearPending(accountID, serviceID)

	// A sign-out during the round trip drops the mirror entry; in that case
	// there is nothing local left to revert or merge into.
	set, active := s.mirror[accountID]

	if err != nil {
		if active {
			// Revert only this item; toggles on other items may have settled
			// in the meantime and their state must stand.
			if wasFavorite {
				set[serviceID] = prev
			} else {
				delete(set, serviceID)
			}
			if saveErr := s.Store.Save(ctx, accountID, setToList(set)); saveErr != nil {
				s.Logger.Error("cache divergence: failed to revert favorites store to last-known-good",
					zap.String("accountID", accountID),
					zap.Error(saveErr))
			}
		}
		return nil, wasFavorite, err
	}

	if !active {
		// The purge already emptied the local state; report the server
		// verdict without resurrecting the account's mirror.
		if resp.IsFavorite {
			merged := models.Favorite{ServiceID: serviceID}
			if resp.Detail != nil {
				merged = *resp.Detail
				merged.ServiceID = serviceID
			}
			return &merged, true, nil
		}
		return nil, false, nil
	}

	// The optimistic state stands unless the server disagrees; richer detail
	// from the response is merged in either way.
	if resp.IsFavorite {
		merged := models.Favorite{ServiceID: serviceID}
		if resp.Detail != nil {
			merged = *resp.Detail
			merged.ServiceID = serviceID
		}
		set[serviceID] = merged
	} else {
		delete(set, serviceID)
	}
	if err := s.Store.Save(ctx, accountID, setToList(set)); err != nil {
		s.Logger.Error("failed to persist confirmed favorites state",
			zap.String("accountID", accountID),
			zap.Error(err))
	}

	if resp.IsFavorite {
		confirmed := set[serviceID]
		return &confirmed, true, nil
	}
	return nil, false, nil
}

func (s *DefaultFavoritesService) ClearAll(ctx context.Context, accountID string) error {
	s.mu.Lock()
	set, err := s.loadLocked(ctx, accountID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.pending[accountID]) > 0 || s.clearing[accountID] {
		s.mu.Unlock()
		return NewToggleInFlightError("*")
	}

	before := snapshotSet(set)
	s.mirror[accountID] = make(map[string]models.Favorite)
	if err := s.Store.Save(ctx, accountID, []models.Favorite{}); err != nil {
		s.mirror[accountID] = before
		s.mu.Unlock()
		return err
	}
	// Toggles are rejected for the whole round trip, so a failure can revert
	// the full snapshot without clobbering a concurrently settled item.
	s.clearing[accountID] = true
	s.mu.Unlock()

	err = s.Remote.SyncFavorites(ctx, accountID, []string{})

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clearing, accountID)
	if err != nil {
		if _, active := s.mirror[accountID]; active {
			s.revertLocked(ctx, accountID, before)
		}
		return err
	}
	return nil
}

func (s *DefaultFavoritesService) Favorites(ctx context.Context, accountID string) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, err := s.loadLocked(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return setToList(set), nil
}

func (s *DefaultFavoritesService) SignOut(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mirror, accountID)
	delete(s.pending, accountID)
	delete(s.clearing, accountID)
	return s.Store.Purge(ctx, accountID)
}

// loadLocked returns the account's mirror, hydrating it from the persistent
// store on first access (the sign-in load contract). Caller holds the lock.
func (s *DefaultFavoritesService) loadLocked(ctx context.Context, accountID string) (map[string]models.Favorite, error) {
	if set, ok := s.mirror[accountID]; ok {
		return set, nil
	}
	favs, err := s.Store.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]models.Favorite, len(favs))
	for _, f := range favs {
		set[f.ServiceID] = f
	}
	s.mirror[accountID] = set
	return set, nil
}

// revertLocked restores the pre-operation snapshot in both the mirror and
// the persistent store. A store that refuses the revert leaves the caches
// divergent; that is logged as fatal-severity and not surfaced to the user.
func (s *DefaultFavoritesService) revertLocked(ctx context.Context, accountID string, before map[string]models.Favorite) {
	s.mirror[accountID] = before
	if err := s.Store.Save(ctx, accountID, setToList(before)); err != nil {
		s.Logger.Error("cache divergence: failed to revert favorites store to last-known-good",
			zap.String("accountID", accountID),
			zap.Error(err))
	}
}

func (s *DefaultFavoritesService) markPending(accountID, serviceID string) {
	if s.pending[accountID] == nil {
		s.pending[accountID] = make(map[string]bool)
	}
	s.pending[accountID][serviceID] = true
}

func (s *DefaultFavoritesService) clearPending(accountID, serviceID string) {
	delete(s.pending[accountID], serviceID)
}

func snapshotSet(set map[string]models.Favorite) map[string]models.Favorite {
	out := make(map[string]models.Favorite, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}

func setToList(set map[string]models.Favorite) []models.Favorite {
	out := make([]models.Favorite, 0, len(set))
	for _, f := range set {
		out = append(out, f)
	}
	return out
}
