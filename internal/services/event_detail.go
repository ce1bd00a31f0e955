package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"eventsmanagement/internal/domain"
)

// DetailState is the outcome shown by the event detail view.
type DetailState int

const (
	DetailViewing DetailState = iota
	DetailJoined
	DetailLeft
)

// EventDetail drives the join and leave actions for one event.
// Membership only changes after the server confirms an action.
type EventDetail struct {
	api      domain.EventsAPI
	logger   *slog.Logger
	id       string
	loggedIn bool

	mu            sync.Mutex
	event         domain.Event
	registeredIDs []string
	state         DetailState
	busy          bool
	message       string
}

// NewEventDetail returns a controller for event id. registeredIDs seeds the
// membership check until Load refreshes it.
func NewEventDetail(api domain.EventsAPI, logger *slog.Logger, id string, loggedIn bool, registeredIDs []string) *EventDetail {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventDetail{
		api:           api,
		logger:        logger.With("event_id", id),
		id:            id,
		loggedIn:      loggedIn,
		registeredIDs: slices.Clone(registeredIDs),
	}
}

// Load fetches the event and, for a logged-in user, the ids of their events.
func (d *EventDetail) Load(ctx context.Context) error {
	if err := d.acquire(); err != nil {
		return err
	}
	defer d.release()

	event := d.api.GetEvent(ctx, d.id)
	var ids []string
	if d.loggedIn {
		ids = d.api.GetRegisteredEventIDs(ctx)
	}

	d.mu.Lock()
	d.event = event
	if d.loggedIn {
		d.registeredIDs = ids
	}
	d.mu.Unlock()
	return nil
}

// Join registers the user for the event. With no quota left it fails with
// domain.ErrInsufficientQuota without contacting the server.
func (d *EventDetail) Join(ctx context.Context) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return domain.ErrBusy
	}
	if !d.event.CanJoin() {
		quota := d.event.Quota
		d.message = UserMessage(domain.ErrInsufficientQuota)
		d.mu.Unlock()
		d.logger.Info("join refused locally", "quota", quota)
		return domain.ErrInsufficientQuota
	}
	d.busy = true
	d.mu.Unlock()
	defer d.release()

	if !d.api.JoinEvent(ctx, d.id) {
		d.setMessage(UserMessage(domain.ErrJoinRejected))
		return domain.ErrJoinRejected
	}

	d.mu.Lock()
	if !slices.Contains(d.registeredIDs, d.id) {
		d.registeredIDs = append(d.registeredIDs, d.id)
	}
	d.state = DetailJoined
	d.message = "Joined successfully"
	d.mu.Unlock()
	return nil
}

// Leave unregisters the user from the event.
func (d *EventDetail) Leave(ctx context.Context) error {
	if err := d.acquire(); err != nil {
		return err
	}
	defer d.release()

	if !d.api.LeaveEvent(ctx, d.id) {
		d.setMessage(UserMessage(domain.ErrLeaveRejected))
		return domain.ErrLeaveRejected
	}

	d.mu.Lock()
	d.registeredIDs = slices.DeleteFunc(d.registeredIDs, func(id string) bool { return id == d.id })
	d.state = DetailLeft
	d.message = "Unregistered successfully"
	d.mu.Unlock()
	return nil
}

func (d *EventDetail) acquire() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return domain.ErrBusy
	}
	d.busy = true
	return nil
}

func (d *EventDetail) release() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

func (d *EventDetail) setMessage(msg string) {
	d.mu.Lock()
	d.message = msg
	d.mu.Unlock()
}

// Event returns the loaded event, or the zero Event before Load.
func (d *EventDetail) Event() domain.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.event
}

// Registered reports whether the user is registered for the event.
func (d *EventDetail) Registered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Contains(d.registeredIDs, d.id)
}

// CanAct reports whether join or leave should be offered at all.
func (d *EventDetail) CanAct() bool {
	return d.loggedIn
}

// State returns the outcome of the last successful action.
func (d *EventDetail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// NavigateAway reports whether the view should return to the home feed.
func (d *EventDetail) NavigateAway() bool {
	return d.State() != DetailViewing
}

// Busy reports whether a request is in flight.
func (d *EventDetail) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Message returns the last user-visible message.
func (d *EventDetail) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}
