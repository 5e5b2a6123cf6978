package v1

import "fmt"

// InvalidOrderError rejects a whole batch when any order in it is malformed.
type InvalidOrderError struct {
	OrderID string
	Reason  string
}

// NewInvalidOrderError creates a new InvalidOrderError.
func NewInvalidOrderError(orderID, reason string) *InvalidOrderError {
	return &InvalidOrderError{
		OrderID: orderID,
		Reason:  reason,
	}
}

// Error implements the error interface.
func (e *InvalidOrderError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("invalid order: %s", e.Reason)
	}
	return fmt.Sprintf("invalid order %s: %s", e.OrderID, e.Reason)
}
