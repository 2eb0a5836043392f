package api

import (
	"context"
	"fmt"
	"net/http"

	"glowbook/models"
)

type CancelRequest struct {
	AppointmentID      string `json:"appointment_id"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// CancelResponse carries the authoritative appointment after cancellation.
// When the cancellation produced a wallet refund, Wallet holds the
// authoritative ledger state so the caller adopts it in the same round trip.
type CancelResponse struct {
	Appointment    models.Appointment `json:"appointment"`
	WalletRefunded bool               `json:"wallet_refunded"`
	RefundAmount   float64            `json:"refund_amount,omitempty"`
	Wallet         *models.Wallet     `json:"wallet,omitempty"`
}

type RescheduleRequest struct {
	AppointmentID   string `json:"appointment_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

type RescheduleResponse struct {
	Appointment models.Appointment `json:"appointment"`
}

type ModifyServiceRequest struct {
	AppointmentID string `json:"appointment_id"`
	ServiceID     string `json:"service_id"`
}

type ModifyServiceResponse struct {
	Appointment             models.Appointment `json:"appointment"`
	PriceDifference         float64            `json:"price_difference"`
	WalletChargedOrRefunded bool               `json:"wallet_charged_or_refunded"`
	Wallet                  *models.Wallet     `json:"wallet,omitempty"`
}

func (c *SystemOfRecordClient) CancelAppointment(ctx context.Context, accountID string, req CancelRequest) (*CancelResponse, error) {
	var resp CancelResponse
	path := fmt.Sprintf("/appointments/%s/cancel", req.AppointmentID)
	if err := c.do(ctx, http.MethodPost, path, accountID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *SystemOfRecordClient) RescheduleAppointment(ctx context.Context, accountID string, req RescheduleRequest) (*RescheduleResponse, error) {
	var resp RescheduleResponse
	path := fmt.Sprintf("/appointments/%s/reschedule", req.AppointmentID)
	if err := c.do(ctx, http.MethodPost, path, accountID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *SystemOfRecordClient) ModifyAppointmentService(ctx context.Context, accountID string, req ModifyServiceRequest) (*ModifyServiceResponse, error) {
	var resp ModifyServiceResponse
	path := fmt.Sprintf("/appointments/%s/service", req.AppointmentID)
	if err := c.do(ctx, http.MethodPut, path, accountID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *SystemOfRecordClient) FetchAppointments(ctx context.Context, accountID string) ([]models.Appointment, error) {
	var resp struct {
		Appointments []models.Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/appointments", accountID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

func (c *SystemOfRecordClient) FetchAppointment(ctx context.Context, accountID, appointmentID string) (*models.Appointment, error) {
	var resp struct {
		Appointment models.Appointment `json:"appointment"`
	}
	path := fmt.Sprintf("/appointments/%s", appointmentID)
	if err := c.do(ctx, http.MethodGet, path, accountID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Appointment, nil
}
