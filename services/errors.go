package services

import "errors"

// Business-rule failures the booking workflow can report. Handlers map
// these to response statuses; anything else is an internal store failure.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrCarNotFound     = errors.New("car not found")
	ErrCarUnavailable  = errors.New("car is not available")
	ErrQuotaExceeded   = errors.New("booking limit reached")
	ErrNotOwner        = errors.New("not authorized for this booking")
)
