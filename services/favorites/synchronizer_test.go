package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"glowbook/api"
	"glowbook/models"
)

// fakeFavoritesRemote implements the two favorites calls of api.Client and
// panics on anything else via the embedded nil interface.
type fakeFavoritesRemote struct {
	api.Client
	toggleFn func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error)
	syncFn   func(ctx context.Context, accountID string, serviceIDs []string) error
}

func (f *fakeFavoritesRemote) ToggleFavorite(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
	return f.toggleFn(ctx, accountID, serviceID)
}

func (f *fakeFavoritesRemote) SyncFavorites(ctx context.Context, accountID string, serviceIDs []string) error {
	return f.syncFn(ctx, accountID, serviceIDs)
}

func serviceIDs(favs []models.Favorite) []string {
	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ServiceID)
	}
	return ids
}

func TestToggleAddRemoveConverges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	favorited := true
	remote := &fakeFavoritesRemote{
		toggleFn: func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
			resp := &api.ToggleFavoriteResponse{IsFavorite: favorited}
			if favorited {
				resp.Detail = &models.Favorite{ServiceID: serviceID, Name: "Gel Manicure", Price: 180}
			}
			favorited = !favorited
			return resp, nil
		},
	}
	store := NewMemoryStore()
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	fav, isFavorite, err := svc.Toggle(ctx, "acct-1", "svc-mani")
	require.NoError(t, err)
	require.True(t, isFavorite)
	require.NotNil(t, fav)
	require.Equal(t, "Gel Manicure", fav.Name)
	require.Equal(t, 180.0, fav.Price)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svc-mani"}, serviceIDs(favs))

	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	fav, isFavorite, err = svc.Toggle(ctx, "acct-1", "svc-mani")
	require.NoError(t, err)
	require.False(t, isFavorite)
	require.Nil(t, fav)

	favs, err = svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, favs)
	stored, err = store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestToggleRevertsOnRemoteFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	remote := &fakeFavoritesRemote{
		toggleFn: func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
			return nil, api.NewTransportError(errors.New("connection refused"))
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "acct-1", []models.Favorite{
		{ServiceID: "svc-cut", Name: "Ladies Cut", Price: 300},
	}))
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	// Failed add: the item must not survive in mirror or store.
	_, isFavorite, err := svc.Toggle(ctx, "acct-1", "svc-mani")
	require.Error(t, err)
	require.False(t, isFavorite)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svc-cut"}, serviceIDs(favs))

	// Failed remove: the original entry is restored with its detail intact.
	_, isFavorite, err = svc.Toggle(ctx, "acct-1", "svc-cut")
	require.Error(t, err)
	require.True(t, isFavorite)

	favs, err = svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, "Ladies Cut", favs[0].Name)
	require.Equal(t, 300.0, favs[0].Price)

	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "svc-cut", stored[0].ServiceID)
}

func TestToggleRejectsConcurrentToggleOnSameItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	remote := &fakeFavoritesRemote{
		toggleFn: func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
			close(entered)
			<-release
			return &api.ToggleFavoriteResponse{IsFavorite: true}, nil
		},
	}
	svc := NewDefaultFavoritesService(remote, NewMemoryStore(), zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, _, err := svc.Toggle(ctx, "acct-1", "svc-mani")
		done <- err
	}()
	<-entered

	_, _, err := svc.Toggle(ctx, "acct-1", "svc-mani")
	var inFlight *ToggleInFlightError
	require.ErrorAs(t, err, &inFlight)
	require.Equal(t, "svc-mani", inFlight.ServiceID)

	close(release)
	require.NoError(t, <-done)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svc-mani"}, serviceIDs(favs))
}

func TestToggleAdoptsServerVerdict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// The optimistic add flips the item on, but the server reports it off
	// (e.g. the service was retired). The server verdict wins.
	remote := &fakeFavoritesRemote{
		toggleFn: func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
			return &api.ToggleFavoriteResponse{IsFavorite: false}, nil
		},
	}
	svc := NewDefaultFavoritesService(remote, NewMemoryStore(), zap.NewNop())

	fav, isFavorite, err := svc.Toggle(ctx, "acct-1", "svc-old")
	require.NoError(t, err)
	require.False(t, isFavorite)
	require.Nil(t, fav)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, favs)
}

func TestClearAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var synced []string
	remote := &fakeFavoritesRemote{
		syncFn: func(ctx context.Context, accountID string, ids []string) error {
			synced = ids
			return nil
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "acct-1", []models.Favorite{
		{ServiceID: "svc-cut"}, {ServiceID: "svc-mani"},
	}))
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	require.NoError(t, svc.ClearAll(ctx, "acct-1"))
	require.Empty(t, synced)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, favs)
	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestClearAllRevertsOnRemoteFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	remote := &fakeFavoritesRemote{
		syncFn: func(ctx context.Context, accountID string, ids []string) error {
			return api.NewRemoteRejectedError("favorites sync disabled")
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "acct-1", []models.Favorite{
		{ServiceID: "svc-cut", Name: "Ladies Cut"},
	}))
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	err := svc.ClearAll(ctx, "acct-1")
	var rejected *api.RemoteRejectedError
	require.ErrorAs(t, err, &rejected)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svc-cut"}, serviceIDs(favs))
	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestSignOutPurgesAccountState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "acct-1", []models.Favorite{{ServiceID: "svc-cut"}}))
	svc := NewDefaultFavoritesService(&fakeFavoritesRemote{}, store, zap.NewNop())

	require.NoError(t, svc.SignOut(ctx, "acct-1"))

	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, stored)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, favs)
}

func TestToggleSettlesCleanlyAfterSignOut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	remote := &fakeFavoritesRemote{
		toggleFn: func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
			close(entered)
			<-release
			return &api.ToggleFavoriteResponse{
				IsFavorite: true,
				Detail:     &models.Favorite{ServiceID: serviceID, Name: "Gel Manicure", Price: 180},
			}, nil
		},
	}
	store := NewMemoryStore()
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	type toggleResult struct {
		fav        *models.Favorite
		isFavorite bool
		err        error
	}
	done := make(chan toggleResult, 1)
	go func() {
		fav, isFavorite, err := svc.Toggle(ctx, "acct-1", "svc-mani")
		done <- toggleResult{fav, isFavorite, err}
	}()
	<-entered

	require.NoError(t, svc.SignOut(ctx, "acct-1"))

	close(release)
	result := <-done
	require.NoError(t, result.err)
	require.True(t, result.isFavorite)
	require.NotNil(t, result.fav)
	require.Equal(t, "Gel Manicure", result.fav.Name)

	// The purge stands; the settled toggle must not resurrect local state.
	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, stored)
	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, favs)
}

func TestClearAllBlocksTogglesDuringFlight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	remote := &fakeFavoritesRemote{
		syncFn: func(ctx context.Context, accountID string, ids []string) error {
			close(entered)
			<-release
			return api.NewRemoteRejectedError("favorites sync disabled")
		},
	}
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "acct-1", []models.Favorite{
		{ServiceID: "svc-cut", Name: "Ladies Cut"},
	}))
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- svc.ClearAll(ctx, "acct-1")
	}()
	<-entered

	// A toggle mid-clear would be clobbered by the clear's revert, so it is
	// rejected just like a second toggle on a pending item.
	_, _, err := svc.Toggle(ctx, "acct-1", "svc-mani")
	var inFlight *ToggleInFlightError
	require.ErrorAs(t, err, &inFlight)

	close(release)
	require.Error(t, <-done)

	// The failed clear restored the full set.
	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svc-cut"}, serviceIDs(favs))
}

func TestInterleavedTogglesOnDistinctItemsConverge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	remote := &fakeFavoritesRemote{
		toggleFn: func(ctx context.Context, accountID, serviceID string) (*api.ToggleFavoriteResponse, error) {
			if serviceID == "svc-cut" {
				close(entered)
				<-release
				return nil, api.NewTransportError(errors.New("connection reset"))
			}
			return &api.ToggleFavoriteResponse{IsFavorite: true}, nil
		},
	}
	store := NewMemoryStore()
	svc := NewDefaultFavoritesService(remote, store, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, _, err := svc.Toggle(ctx, "acct-1", "svc-cut")
		done <- err
	}()
	<-entered

	// A toggle on a different item settles while the first is in flight.
	_, isFavorite, err := svc.Toggle(ctx, "acct-1", "svc-mani")
	require.NoError(t, err)
	require.True(t, isFavorite)

	close(release)
	require.Error(t, <-done)

	// The failed toggle reverted only its own item; the local set matches
	// what the server holds.
	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svc-mani"}, serviceIDs(favs))
	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "svc-mani", stored[0].ServiceID)
}
