package services

import (
	"context"
	"log/slog"
	"sync"

	"eventsmanagement/internal/domain"
)

// Registration submits the volunteer sign-up form.
type Registration struct {
	api    domain.EventsAPI
	logger *slog.Logger

	mu         sync.Mutex
	busy       bool
	registered bool
	message    string
}

// NewRegistration returns a sign-up controller.
func NewRegistration(api domain.EventsAPI, logger *slog.Logger) *Registration {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registration{api: api, logger: logger}
}

// Submit validates v and, if it passes, sends it to the server. Validation stops at
// the first failing check: empty email, missing "@", terms not accepted, unknown
// age group. A server rejection is reported as domain.ErrRegistrationRejected.
func (r *Registration) Submit(ctx context.Context, v domain.Volunteer) error {
	if err := v.Validate(); err != nil {
		r.setMessage(UserMessage(err))
		return err
	}

	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return domain.ErrBusy
	}
	r.busy = true
	r.mu.Unlock()

	ok := r.api.RegisterVolunteer(ctx, v)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = false
	if !ok {
		r.message = UserMessage(domain.ErrRegistrationRejected)
		return domain.ErrRegistrationRejected
	}
	r.registered = true
	r.message = "Congratulations for becoming a volunteer!"
	r.logger.Info("volunteer signed up", "email", v.Email)
	return nil
}

func (r *Registration) setMessage(msg string) {
	r.mu.Lock()
	r.message = msg
	r.mu.Unlock()
}

// NavigateToLogin reports whether sign-up succeeded and the login view should open.
func (r *Registration) NavigateToLogin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered
}

// Busy reports whether a submission is in flight.
func (r *Registration) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Message returns the last user-visible message.
func (r *Registration) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}
