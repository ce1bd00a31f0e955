package services

import (
	"errors"

	"eventsmanagement/internal/domain"
)

var userMessages = []struct {
	err error
	msg string
}{
	{domain.ErrEmptyEmail, "Email cannot be empty."},
	{domain.ErrInvalidEmailFormat, "Invalid email format."},
	{domain.ErrTermsNotAccepted, "You must agree to the terms and conditions."},
	{domain.ErrInvalidAgeGroup, "Please select a valid age group."},
	{domain.ErrInvalidLocation, "Please select a valid location."},
	{domain.ErrInsufficientQuota, "Join failed: Insufficient Quota."},
	{domain.ErrJoinRejected, "Join failed"},
	{domain.ErrLeaveRejected, "Unregister failed"},
	{domain.ErrRegistrationRejected, "Registration failed, please try again."},
	{domain.ErrLoginRejected, "Login failed: User Not Found"},
	{domain.ErrBusy, "Please wait for the current request to finish."},
}

// UserMessage returns the text shown to the user for a controller error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Something went wrong"
}
