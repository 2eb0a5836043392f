package appointment

import (
	"context"

	"glowbook/models"
)

// AppointmentService composes state-machine validation and policy-engine
// decisions into single units of work against the system of record. Cancel
// and ModifyService may each append exactly one ledger transaction server
// side; Reschedule never touches the ledger. None of the three mutates local
// state before the server confirms.
type AppointmentService interface {
	// Cancel cancels an appointment, crediting the wallet when the payment
	// method is refund-eligible.
	Cancel(ctx context.Context, accountID, appointmentID, reason string) (*models.CancelResult, error)
	// Reschedule moves an appointment to a new date and time.
	Reschedule(ctx context.Context, accountID, appointmentID, date, timeOfDay string) (*models.RescheduleResult, error)
	// ModifyService swaps the appointment's service, charging or refunding
	// the price difference through the wallet. newServicePrice is the quoted
	// price of the new service, used only for the user-facing preview.
	ModifyService(ctx context.Context, accountID, appointmentID, newServiceID string, newServicePrice float64) (*models.ModifyServiceResult, error)
	// Appointments returns the cached appointment list, refreshing from the
	// remote when no projection exists yet.
	Appointments(ctx context.Context, accountID string) ([]models.Appointment, error)
	// RefreshAppointments replaces the cached list with the remote's.
	RefreshAppointments(ctx context.Context, accountID string) ([]models.Appointment, error)
	// Policy returns the cancellation/reschedule policy reference data.
	Policy(ctx context.Context) (*models.BookingPolicy, error)
}
