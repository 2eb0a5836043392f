package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/middleware"
	"glowbook/services/favorites"
)

// SessionHandler owns the per-account teardown contract: sign-out drops the
// favorites mirror and store plus the appointment and wallet projections.
type SessionHandler struct {
	Favorites favorites.FavoritesService
	Snapshots snapshotRepo.Repository
	Logger    *zap.Logger
}

func NewSessionHandler(favs favorites.FavoritesService, snapshots snapshotRepo.Repository, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Favorites: favs, Snapshots: snapshots, Logger: logger}
}

// SignOut purges every locally cached projection for the account.
func (h *SessionHandler) SignOut(c *gin.Context) {
	accountID := middleware.AccountID(c)
	ctx := c.Request.Context()

	if err := h.Favorites.SignOut(ctx, accountID); err != nil {
		respondLifecycleError(c, err)
		return
	}
	if err := h.Snapshots.Purge(ctx, accountID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	h.Logger.Info("account signed out, local projections purged",
		zap.String("accountID", accountID))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
