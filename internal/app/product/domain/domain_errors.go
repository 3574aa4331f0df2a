package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("product category is not recognized")

	// View state errors
	ErrInvalidViewMode   = errors.New("view mode is not recognized")
	ErrInvalidTransition = errors.New("operation is not allowed in the current view mode")

	// Remote errors
	ErrRemoteFailure     = errors.New("remote product service request failed")
	ErrOperationInFlight = errors.New("another catalog write is still in progress")
	ErrNotAuthenticated  = errors.New("session is not authenticated")
)
