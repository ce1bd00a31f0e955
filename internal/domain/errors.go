package domain

import (
	"errors"
	"fmt"
)

// Transport failures. The API client classifies every failed call as one of these
// before collapsing it to a default result.
var (
	ErrNetworkFailure = errors.New("network failure")
	ErrDecodeFailure  = errors.New("decode failure")
)

// Validation failures raised by controllers before any request is made.
var (
	ErrEmptyEmail         = errors.New("email cannot be empty")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrTermsNotAccepted   = errors.New("you must agree to the terms and conditions")
	ErrInvalidAgeGroup    = errors.New("unknown age group")
	ErrInvalidLocation    = errors.New("unknown location")
	ErrInsufficientQuota  = errors.New("insufficient quota")
)

// Server outcomes surfaced by controllers.
var (
	ErrJoinRejected         = errors.New("join rejected")
	ErrLeaveRejected        = errors.New("leave rejected")
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrLoginRejected        = errors.New("user not found")
)

// ErrBusy is returned when a controller already has a request in flight.
var ErrBusy = errors.New("request already in progress")

// ServerRejectionError is a non-success HTTP response.
type ServerRejectionError struct {
	StatusCode int
	Body       string
}

func (e *ServerRejectionError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// IsValidationFailure reports whether err was raised locally before any request.
func IsValidationFailure(err error) bool {
	return errors.Is(err, ErrEmptyEmail) ||
		errors.Is(err, ErrInvalidEmailFormat) ||
		errors.Is(err, ErrTermsNotAccepted) ||
		errors.Is(err, ErrInvalidAgeGroup) ||
		errors.Is(err, ErrInvalidLocation) ||
		errors.Is(err, ErrInsufficientQuota)
}
