package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/api"
	"glowbook/middleware"
	"glowbook/services/appointment"
	"glowbook/utils"
)

// AppointmentHandler exposes the lifecycle orchestrator over HTTP.
type AppointmentHandler struct {
	Service appointment.AppointmentService
	Logger  *zap.Logger
}

func NewAppointmentHandler(svc appointment.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// respondLifecycleError maps the error taxonomy onto HTTP statuses. Policy
// violations and remote rejections are conflicts the user can understand;
// transport failures are retryable gateway errors.
func respondLifecycleError(c *gin.Context, err error) {
	var policyErr *appointment.PolicyViolationError
	if errors.As(err, &policyErr) {
		utils.JSONError(c, http.StatusConflict, "action not permitted", policyErr.Message)
		return
	}
	var rejectedErr *api.RemoteRejectedError
	if errors.As(err, &rejectedErr) {
		utils.JSONError(c, http.StatusConflict, "request declined", rejectedErr.Message)
		return
	}
	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		utils.JSONError(c, http.StatusBadGateway, "booking service unavailable", transportErr.Message)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "operation failed", err.Error())
}

// ListAppointments returns the cached appointment projection.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.Service.Appointments(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// RefreshAppointments forces a re-fetch from the system of record.
func (h *AppointmentHandler) RefreshAppointments(c *gin.Context) {
	appointments, err := h.Service.RefreshAppointments(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// CancelAppointment cancels an appointment, crediting the wallet when the
// payment method is refund-eligible. Other methods get a manual-refund
// notice in the response rather than a claimed refund.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointmentID := c.Param("appointmentID")
	var input struct {
		Reason string `json:"cancellation_reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Cancel(c.Request.Context(), middleware.AccountID(c), appointmentID, input.Reason)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	resp := gin.H{
		"appointment":     result.Appointment,
		"wallet_refunded": result.WalletRefunded,
	}
	if result.WalletRefunded {
		resp["refund_amount"] = result.RefundAmount
	} else {
		resp["notice"] = "No wallet refund was issued for this payment method. Contact the salon for a manual refund."
	}
	c.JSON(http.StatusOK, resp)
}

// RescheduleAppointment moves an appointment to a new date and time.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	appointmentID := c.Param("appointmentID")
	var input struct {
		AppointmentDate string `json:"appointment_date" binding:"required"`
		AppointmentTime string `json:"appointment_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Reschedule(c.Request.Context(), middleware.AccountID(c),
		appointmentID, input.AppointmentDate, input.AppointmentTime)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": result.Appointment})
}

// ModifyAppointmentService swaps the appointment's service, charging or
// refunding the wallet for the price difference.
func (h *AppointmentHandler) ModifyAppointmentService(c *gin.Context) {
	appointmentID := c.Param("appointmentID")
	var input struct {
		ServiceID    string  `json:"service_id" binding:"required"`
		ServicePrice float64 `json:"service_price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.ModifyService(c.Request.Context(), middleware.AccountID(c),
		appointmentID, input.ServiceID, input.ServicePrice)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"appointment":      result.Appointment,
		"price_difference": result.PriceDifference,
		"wallet_adjusted":  result.WalletAdjusted,
		"preview":          result.Preview,
	})
}

// GetBookingPolicy returns the cancellation/reschedule policy reference data.
func (h *AppointmentHandler) GetBookingPolicy(c *gin.Context) {
	policy, err := h.Service.Policy(c.Request.Context())
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, policy)
}
