package api

import (
	"context"
	"net/http"

	"glowbook/models"
)

func (c *SystemOfRecordClient) FetchPolicy(ctx context.Context) (*models.BookingPolicy, error) {
	var resp models.BookingPolicy
	if err := c.do(ctx, http.MethodGet, "/booking-policy", "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
