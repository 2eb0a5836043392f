package appointment

import "fmt"

// PolicyViolationError means a requested transition is not permitted given
// the appointment's current state or its server-computed window flags.
// Check names the exact check that failed so the UI can explain it.
type PolicyViolationError struct {
	Code    string
	Check   string
	Message string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Check, e.Message)
}

func NewPolicyViolationError(check, msg string) error {
	return &PolicyViolationError{
		Code:    "policyViolation",
		Check:   check,
		Message: msg,
	}
}
