package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/favorites"
)

func TestSignOutPurgesAllProjections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	snapshots := snapshotRepo.NewMemorySnapshotRepo()
	require.NoError(t, snapshots.ReplaceAppointments(ctx, "acct-1", []models.Appointment{
		{ID: "a1", Status: models.StatusConfirmed},
	}))
	require.NoError(t, snapshots.ReplaceWallet(ctx, "acct-1", models.Wallet{
		AccountID: "acct-1",
		Balance:   1000,
		Currency:  "ZAR",
	}))

	store := favorites.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "acct-1", []models.Favorite{{ServiceID: "svc-cut"}}))
	favoritesService := favorites.NewDefaultFavoritesService(nil, store, zap.NewNop())

	handler := NewSessionHandler(favoritesService, snapshots, zap.NewNop())
	router := gin.New()
	router.Use(middleware.AccountMiddleware())
	router.POST("/sign-out", handler.SignOut)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sign-out", nil)
	req.Header.Set("X-Account-ID", "acct-1")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := snapshots.GetAppointments(ctx, "acct-1")
	require.ErrorIs(t, err, snapshotRepo.ErrNotFound)
	_, err = snapshots.GetWallet(ctx, "acct-1")
	require.ErrorIs(t, err, snapshotRepo.ErrNotFound)

	stored, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, stored)
}
