package favorites

import "fmt"

// ToggleInFlightError rejects a second toggle on an item whose previous
// toggle has not settled yet. The UI is expected to disable the control
// while a toggle is in flight; this is the backstop.
type ToggleInFlightError struct {
	Code      string
	ServiceID string
}

func (e *ToggleInFlightError) Error() string {
	return fmt.Sprintf("%s: a toggle for service %s is already in flight", e.Code, e.ServiceID)
}

func NewToggleInFlightError(serviceID string) error {
	return &ToggleInFlightError{
		Code:      "toggleInFlight",
		ServiceID: serviceID,
	}
}
