package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"glowbook/config"
	"glowbook/models"
)

// Client is the contract with the remote system of record. It owns all
// appointment and ledger truth; everything this module holds is a cached
// projection of what these calls return.
type Client interface {
	CancelAppointment(ctx context.Context, accountID string, req CancelRequest) (*CancelResponse, error)
	RescheduleAppointment(ctx context.Context, accountID string, req RescheduleRequest) (*RescheduleResponse, error)
	ModifyAppointmentService(ctx context.Context, accountID string, req ModifyServiceRequest) (*ModifyServiceResponse, error)
	FetchAppointments(ctx context.Context, accountID string) ([]models.Appointment, error)
	FetchAppointment(ctx context.Context, accountID, appointmentID string) (*models.Appointment, error)
	FetchPolicy(ctx context.Context) (*models.BookingPolicy, error)
	FetchWallet(ctx context.Context, accountID string) (*models.Wallet, error)
	ToggleFavorite(ctx context.Context, accountID, serviceID string) (*ToggleFavoriteResponse, error)
	SyncFavorites(ctx context.Context, accountID string, serviceIDs []string) error
}

// SystemOfRecordClient talks to the salon platform API over HTTP.
type SystemOfRecordClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewSystemOfRecordClient() *SystemOfRecordClient {
	timeout := time.Duration(config.AppConfig.RemoteTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &SystemOfRecordClient{
		BaseURL: config.AppConfig.RemoteAPIURL,
		APIKey:  config.AppConfig.RemoteAPIKey,
		HTTP: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

type remoteErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one round trip and decodes the response into out. Application
// rejections (4xx) become RemoteRejectedError with the server's message;
// network failures and 5xx become a generic retryable TransportError.
func (c *SystemOfRecordClient) do(ctx context.Context, method, path, accountID string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if accountID != "" {
		req.Header.Set("X-Account-ID", accountID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return NewTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewTransportError(err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response for %s %s: %w", method, path, err)
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var remoteErr remoteErrorBody
		msg := fmt.Sprintf("request rejected with status %d", resp.StatusCode)
		if err := json.Unmarshal(data, &remoteErr); err == nil {
			if remoteErr.Message != "" {
				msg = remoteErr.Message
			} else if remoteErr.Error != "" {
				msg = remoteErr.Error
			}
		}
		return NewRemoteRejectedError(msg)
	default:
		return NewTransportError(fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, method, path))
	}
}
