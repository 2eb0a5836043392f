package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/middleware"
	"glowbook/services/favorites"
	"glowbook/utils"
)

// FavoritesHandler exposes the optimistic favorites synchronizer.
type FavoritesHandler struct {
	Service favorites.FavoritesService
	Logger  *zap.Logger
}

func NewFavoritesHandler(svc favorites.FavoritesService, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{Service: svc, Logger: logger}
}

// GetFavorites returns the current local mirror.
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	favs, err := h.Service.Favorites(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// ToggleFavorite flips membership for one service.
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	serviceID := c.Param("serviceID")

	fav, isFavorite, err := h.Service.Toggle(c.Request.Context(), middleware.AccountID(c), serviceID)
	if err != nil {
		var inFlight *favorites.ToggleInFlightError
		if errors.As(err, &inFlight) {
			utils.JSONError(c, http.StatusConflict, "toggle already in progress", inFlight.Error())
			return
		}
		respondLifecycleError(c, err)
		return
	}

	resp := gin.H{"is_favorite": isFavorite}
	if fav != nil {
		resp["detail"] = fav
	}
	c.JSON(http.StatusOK, resp)
}

// ClearFavorites empties the set.
func (h *FavoritesHandler) ClearFavorites(c *gin.Context) {
	if err := h.Service.ClearAll(c.Request.Context(), middleware.AccountID(c)); err != nil {
		var inFlight *favorites.ToggleInFlightError
		if errors.As(err, &inFlight) {
			utils.JSONError(c, http.StatusConflict, "toggle already in progress", inFlight.Error())
			return
		}
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
