package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Event represents a single event as returned by the events API.
type Event struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Organiser   string   `json:"organiser"`
	Description string   `json:"description"`
	EventDate   string   `json:"event_date"`
	Location    Location `json:"location"`
	Image       string   `json:"image"`
	// Quota is the remaining capacity. Joining is not allowed at zero or below.
	Quota      int      `json:"quota"`
	Highlight  bool     `json:"highlight"`
	CreatedAt  string   `json:"createdAt"`
	ModifiedAt string   `json:"modifiedAt"`
	Volunteers []string `json:"volunteers"`
}

// IsZero reports whether e is the placeholder returned when an event could not be loaded.
func (e Event) IsZero() bool {
	return e.ID == ""
}

// CanJoin reports whether the event has capacity left.
func (e Event) CanJoin() bool {
	return e.Quota > 0
}

// Date parses EventDate as an RFC 3339 timestamp.
func (e Event) Date() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, e.EventDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse event_date %q: %w", e.EventDate, err)
	}
	return t, nil
}

// Location is a zone code. The server sends it either as a JSON number or a string.
type Location string

// UnmarshalJSON accepts a JSON string, number or null.
func (l *Location) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Location(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	*l = Location(n.String())
	return nil
}

// Code returns the location as an integer zone code.
func (l Location) Code() (int, error) {
	return strconv.Atoi(string(l))
}

// Locations returns the zone codes a user can browse by.
func Locations() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
}

// CheckLocation returns ErrInvalidLocation unless code is one of Locations.
func CheckLocation(code int) error {
	if !slices.Contains(Locations(), code) {
		return fmt.Errorf("%w: %d", ErrInvalidLocation, code)
	}
	return nil
}

// EventPage is the envelope returned by GET /events/.
type EventPage struct {
	Events  []Event `json:"events"`
	Total   int     `json:"total"`
	PerPage int     `json:"perPage"`
	Page    int     `json:"page"`
}

// UserEventPage is the envelope returned by GET /volunteers/{self}/events.
type UserEventPage struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}
