package appointment

import (
	"fmt"
	"time"

	"glowbook/models"
)

// The appointment lifecycle: pending -> confirmed -> completed, with
// pending|confirmed -> cancelled and confirmed -> no_show (staff action).
// cancelled, completed and no_show are terminal. Window flags (can_cancel,
// can_reschedule) are computed by the system of record and trusted as-is;
// the client never re-derives the time-window math.

// ValidateCancel checks whether the appointment may be cancelled. Returns a
// PolicyViolationError naming the failed check, never a silent no-op.
func ValidateCancel(a *models.Appointment) error {
	if a.Status != models.StatusPending && a.Status != models.StatusConfirmed {
		return NewPolicyViolationError("status",
			fmt.Sprintf("appointment %s cannot be cancelled from status %q", a.BookingReference, a.Status))
	}
	if !a.CanCancel {
		return NewPolicyViolationError("can_cancel",
			fmt.Sprintf("appointment %s is past its cancellation window", a.BookingReference))
	}
	return nil
}

// ValidateReschedule checks whether the appointment may be rescheduled.
func ValidateReschedule(a *models.Appointment) error {
	if a.Status != models.StatusConfirmed {
		return NewPolicyViolationError("status",
			fmt.Sprintf("appointment %s cannot be rescheduled from status %q", a.BookingReference, a.Status))
	}
	if !a.CanReschedule {
		return NewPolicyViolationError("can_reschedule",
			fmt.Sprintf("appointment %s is past its reschedule window", a.BookingReference))
	}
	return nil
}

// ValidateModifyService checks whether the appointment's service may be
// swapped. Service changes share the reschedule window policy.
func ValidateModifyService(a *models.Appointment) error {
	if a.Status != models.StatusConfirmed {
		return NewPolicyViolationError("status",
			fmt.Sprintf("service on appointment %s cannot be changed from status %q", a.BookingReference, a.Status))
	}
	if !a.CanReschedule {
		return NewPolicyViolationError("can_reschedule",
			fmt.Sprintf("appointment %s is past its modification window", a.BookingReference))
	}
	return nil
}

// ApplyCancel mutates the appointment into its cancelled state. Callers must
// have passed ValidateCancel first.
func ApplyCancel(a *models.Appointment, reason string, now time.Time) {
	a.Status = models.StatusCancelled
	a.CancelledAt = &now
	a.CancellationReason = reason
	a.CanCancel = false
	a.CanReschedule = false
}

// ApplyReschedule updates date and time only; status is unchanged.
func ApplyReschedule(a *models.Appointment, date, timeOfDay string) {
	a.AppointmentDate = date
	a.AppointmentTime = timeOfDay
}

// ApplyModifyService swaps in the new service's snapshot, repricing the
// appointment to it.
func ApplyModifyService(a *models.Appointment, svc models.ServiceSnapshot) {
	a.Service = svc
	a.Price = svc.Price
	a.TotalPrice = svc.Price
	a.DurationMinutes = svc.DurationMinutes
}
