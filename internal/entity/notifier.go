package entity

import "fmt"

// DeliveryError wraps a transport failure (auth, connection, rejected
// recipient) from either mail backend.
type DeliveryError struct {
	Cause error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %v", e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// NotifierInterface is the single polymorphic capability over the two
// interchangeable delivery backends. Exactly one implementation is active per
// deployment, selected at startup by which credential set is configured.
// Send performs no retries; retries, if any, belong to the caller.
type NotifierInterface interface {
	Send(body string, lead *Lead) error
	Verify() error
}
