package payments

import (
	"errors"
	"fmt"
)

var (
	ErrPaymentExists   = errors.New("payment already exists for this booking")
	ErrBookingNotFound = errors.New("booking not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrForbidden       = errors.New("forbidden")
	ErrNotInitialized  = errors.New("payment has no gateway transaction")
)

// GatewayError is a non-success response or transport failure from the
// payment provider. Body preserves the raw response for diagnostics.
type GatewayError struct {
	Op         string // "initialize" or "verify"
	StatusCode int    // 0 on transport failure
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chapa %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("chapa %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Detail is the raw provider text recorded as failure_reason and returned
// to the caller.
func (e *GatewayError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Error()
}
