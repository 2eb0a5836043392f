package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/middleware"
	"glowbook/services/wallet"
)

// WalletHandler exposes the wallet projection for dashboard rendering.
type WalletHandler struct {
	Service wallet.WalletService
	Logger  *zap.Logger
}

func NewWalletHandler(svc wallet.WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{Service: svc, Logger: logger}
}

// GetWallet returns the cached wallet snapshot.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	w, err := h.Service.Snapshot(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// RefreshWallet re-fetches the authoritative wallet from the system of record.
func (h *WalletHandler) RefreshWallet(c *gin.Context) {
	w, err := h.Service.Refresh(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}
