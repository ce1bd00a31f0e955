package services

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"eventsmanagement/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventsAPI implements domain.EventsAPI for controller tests.
type fakeEventsAPI struct {
	mu sync.Mutex

	home     map[int][]domain.Event
	location map[int]map[int][]domain.Event // location -> page -> events
	search   map[string]map[int][]domain.Event
	user     map[int][]domain.Event

	event         domain.Event
	registeredIDs []string
	profile       domain.UserInfo

	joinOK     bool
	leaveOK    bool
	registerOK bool
	loginOK    bool
	loginToken string
	session    domain.SessionStore

	calls         map[string]int
	pagesFetched  []int
	queries       []string
	lastVolunteer domain.Volunteer

	// When gate is set, every call signals started and then waits for gate.
	gate    chan struct{}
	started chan struct{}
}

func newFakeEventsAPI() *fakeEventsAPI {
	return &fakeEventsAPI{calls: map[string]int{}}
}

// pageOf builds n events with ids prefix-1..prefix-n.
func pageOf(prefix string, n int) []domain.Event {
	out := make([]domain.Event, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Event{ID: prefix + "-" + strconv.Itoa(i), Title: prefix})
	}
	return out
}

func (f *fakeEventsAPI) enter(op string) {
	f.mu.Lock()
	f.calls[op]++
	gate, started := f.gate, f.started
	f.mu.Unlock()
	if gate != nil {
		started <- struct{}{}
		<-gate
	}
}

func (f *fakeEventsAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// hold makes subsequent calls block until the returned release func is called.
func (f *fakeEventsAPI) hold() (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gate = gate
	f.started = make(chan struct{}, 16)
	var once sync.Once
	return f.started, func() {
		once.Do(func() {
			f.mu.Lock()
			f.gate = nil
			f.mu.Unlock()
			close(gate)
		})
	}
}

func (f *fakeEventsAPI) recordPage(page int) {
	f.mu.Lock()
	f.pagesFetched = append(f.pagesFetched, page)
	f.mu.Unlock()
}

func (f *fakeEventsAPI) fetched() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pagesFetched...)
}

func (f *fakeEventsAPI) ListEvents(ctx context.Context, page int) []domain.Event {
	f.enter("ListEvents")
	f.recordPage(page)
	return append([]domain.Event{}, f.home[page]...)
}

func (f *fakeEventsAPI) ListEventsByLocation(ctx context.Context, page, location int) []domain.Event {
	f.enter("ListEventsByLocation")
	f.recordPage(page)
	return append([]domain.Event{}, f.location[location][page]...)
}

func (f *fakeEventsAPI) SearchEvents(ctx context.Context, query string, page int) []domain.Event {
	f.enter("SearchEvents")
	f.recordPage(page)
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return append([]domain.Event{}, f.search[query][page]...)
}

func (f *fakeEventsAPI) GetEvent(ctx context.Context, id string) domain.Event {
	f.enter("GetEvent")
	if f.event.ID != id {
		return domain.Event{}
	}
	return f.event
}

func (f *fakeEventsAPI) GetRegisteredEventIDs(ctx context.Context) []string {
	f.enter("GetRegisteredEventIDs")
	return append([]string{}, f.registeredIDs...)
}

func (f *fakeEventsAPI) GetUserEvents(ctx context.Context, page int) []domain.Event {
	f.enter("GetUserEvents")
	f.recordPage(page)
	return append([]domain.Event{}, f.user[page]...)
}

func (f *fakeEventsAPI) GetProfile(ctx context.Context) domain.UserInfo {
	f.enter("GetProfile")
	return f.profile
}

func (f *fakeEventsAPI) RegisterVolunteer(ctx context.Context, v domain.Volunteer) bool {
	f.enter("RegisterVolunteer")
	f.mu.Lock()
	f.lastVolunteer = v
	f.mu.Unlock()
	return f.registerOK
}

func (f *fakeEventsAPI) JoinEvent(ctx context.Context, id string) bool {
	f.enter("JoinEvent")
	return f.joinOK
}

func (f *fakeEventsAPI) LeaveEvent(ctx context.Context, id string) bool {
	f.enter("LeaveEvent")
	return f.leaveOK
}

func (f *fakeEventsAPI) Login(ctx context.Context, email, password string) bool {
	f.enter("Login")
	if !f.loginOK {
		return false
	}
	if f.session != nil {
		f.session.SetToken(f.loginToken)
	}
	return true
}
