package domain

import "context"

// EventsAPI is the remote events service as seen by the controllers.
//
// Read operations never fail: on any error they return an empty slice or a zero
// value. Write operations report only whether the server accepted the request.
type EventsAPI interface {
	ListEvents(ctx context.Context, page int) []Event
	ListEventsByLocation(ctx context.Context, page, location int) []Event
	SearchEvents(ctx context.Context, query string, page int) []Event
	GetEvent(ctx context.Context, id string) Event
	GetRegisteredEventIDs(ctx context.Context) []string
	GetUserEvents(ctx context.Context, page int) []Event
	GetProfile(ctx context.Context) UserInfo

	RegisterVolunteer(ctx context.Context, v Volunteer) bool
	JoinEvent(ctx context.Context, id string) bool
	LeaveEvent(ctx context.Context, id string) bool
	// Login stores the returned token in the session on success and leaves it
	// untouched on failure.
	Login(ctx context.Context, email, password string) bool
}
