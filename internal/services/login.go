package services

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"eventsmanagement/internal/domain"
)

// Profile is what the user view shows right after login.
type Profile struct {
	User          domain.UserInfo
	RegisteredIDs []string
	// Events is the first page of the user's events.
	Events []domain.Event
}

// Login owns the login and logout flow for the process-wide session.
type Login struct {
	api     domain.EventsAPI
	session domain.SessionStore
	logger  *slog.Logger

	mu   sync.Mutex
	busy bool
}

// NewLogin returns a login controller. api must write successful tokens to session.
func NewLogin(api domain.EventsAPI, session domain.SessionStore, logger *slog.Logger) *Login {
	if logger == nil {
		logger = slog.Default()
	}
	return &Login{api: api, session: session, logger: logger}
}

// Login exchanges credentials for a session token.
func (l *Login) Login(ctx context.Context, email, password string) error {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return domain.ErrBusy
	}
	l.busy = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.busy = false
		l.mu.Unlock()
	}()

	if !l.api.Login(ctx, email, password) {
		return domain.ErrLoginRejected
	}
	return nil
}

// Logout forgets the session token.
func (l *Login) Logout() {
	l.session.Clear()
	l.logger.Info("logged out")
}

// LoggedIn reports whether a session token is held.
func (l *Login) LoggedIn() bool {
	return l.session.Authenticated()
}

// LoadProfile fetches the user's profile and first page of events concurrently.
func (l *Login) LoadProfile(ctx context.Context) (Profile, error) {
	var p Profile
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.User = l.api.GetProfile(ctx)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.Events = l.api.GetUserEvents(ctx, domain.FirstPage)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Profile{}, err
	}
	p.RegisteredIDs = p.User.Events
	if p.RegisteredIDs == nil {
		p.RegisteredIDs = []string{}
	}
	return p, nil
}
