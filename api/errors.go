package api

import "fmt"

// RemoteRejectedError means the system of record declined the operation for
// a reason the client did not anticipate (concurrent modification,
// insufficient funds on a wallet debit, and so on). The server's message is
// carried verbatim and no local state may be mutated.
type RemoteRejectedError struct {
	Code    string
	Message string
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewRemoteRejectedError(msg string) error {
	return &RemoteRejectedError{
		Code:    "remoteRejected",
		Message: msg,
	}
}

// TransportError is a network or timeout failure. It is retryable; nothing
// was mutated locally.
type TransportError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func NewTransportError(cause error) error {
	return &TransportError{
		Code:    "transportFailure",
		Message: "could not reach the booking service, please try again",
		Cause:   cause,
	}
}
