package api

import (
	"context"
	"fmt"
	"net/http"

	"glowbook/models"
)

// ToggleFavoriteResponse reports the new membership state. Detail is set
// when the server returns full favorited-item details on add.
type ToggleFavoriteResponse struct {
	IsFavorite bool             `json:"is_favorite"`
	Detail     *models.Favorite `json:"detail,omitempty"`
}

func (c *SystemOfRecordClient) ToggleFavorite(ctx context.Context, accountID, serviceID string) (*ToggleFavoriteResponse, error) {
	var resp ToggleFavoriteResponse
	path := fmt.Sprintf("/favorites/%s/toggle", serviceID)
	if err := c.do(ctx, http.MethodPost, path, accountID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncFavorites replaces the server-held set with serviceIDs in bulk.
func (c *SystemOfRecordClient) SyncFavorites(ctx context.Context, accountID string, serviceIDs []string) error {
	req := struct {
		ServiceIDs []string `json:"service_ids"`
	}{ServiceIDs: serviceIDs}
	if serviceIDs == nil {
		req.ServiceIDs = []string{}
	}

	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodPut, "/favorites", accountID, req, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return NewRemoteRejectedError("favorites sync was not acknowledged")
	}
	return nil
}
