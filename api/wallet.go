package api

import (
	"context"
	"net/http"

	"glowbook/models"
)

func (c *SystemOfRecordClient) FetchWallet(ctx context.Context, accountID string) (*models.Wallet, error) {
	var resp struct {
		Balance      float64              `json:"balance"`
		Currency     string               `json:"currency"`
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/wallet", accountID, nil, &resp); err != nil {
		return nil, err
	}
	return &models.Wallet{
		AccountID:    accountID,
		Balance:      resp.Balance,
		Currency:     resp.Currency,
		Transactions: resp.Transactions,
	}, nil
}
