package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"eventsmanagement/internal/domain"
)

// FeedKind selects which listing endpoint a Feed pages through.
type FeedKind int

const (
	HomeFeed FeedKind = iota
	LocationFeed
	SearchFeed
	UserEventsFeed
)

func (k FeedKind) String() string {
	switch k {
	case HomeFeed:
		return "home"
	case LocationFeed:
		return "location"
	case SearchFeed:
		return "search"
	case UserEventsFeed:
		return "user events"
	default:
		return "unknown"
	}
}

// Feed accumulates pages of events for one screen.
//
// A Feed is Idle or Loading. Load and LoadMore move it to Loading and back; at most
// one fetch is outstanding at a time and a second trigger while Loading returns
// domain.ErrBusy. Page 1 always replaces the accumulated events; later pages append.
type Feed struct {
	api      domain.EventsAPI
	logger   *slog.Logger
	kind     FeedKind
	location int

	mu      sync.Mutex
	events  []domain.Event
	page    int
	loading bool
	query   string
	// gen changes whenever the accumulated events are discarded, so a fetch that
	// started before the reset can tell its result is stale.
	gen uint64
}

func newFeed(api domain.EventsAPI, logger *slog.Logger, kind FeedKind, initial []domain.Event) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		api:    api,
		logger: logger.With("feed", kind.String()),
		kind:   kind,
		events: slices.Clone(initial),
		page:   domain.FirstPage,
	}
}

// NewHomeFeed returns a feed over all events.
func NewHomeFeed(api domain.EventsAPI, logger *slog.Logger) *Feed {
	return newFeed(api, logger, HomeFeed, nil)
}

// NewLocationFeed returns a feed over the events in one location zone.
// LoadMore is ignored while the feed holds no events.
func NewLocationFeed(api domain.EventsAPI, logger *slog.Logger, location int) *Feed {
	f := newFeed(api, logger, LocationFeed, nil)
	f.location = location
	return f
}

// NewSearchFeed returns a search feed seeded with initial, typically the home feed's first page.
func NewSearchFeed(api domain.EventsAPI, logger *slog.Logger, initial []domain.Event) *Feed {
	return newFeed(api, logger, SearchFeed, initial)
}

// NewUserEventsFeed returns a feed over the logged-in volunteer's events, seeded with initial.
func NewUserEventsFeed(api domain.EventsAPI, logger *slog.Logger, initial []domain.Event) *Feed {
	return newFeed(api, logger, UserEventsFeed, initial)
}

// Kind returns which endpoint the feed pages through.
func (f *Feed) Kind() FeedKind { return f.kind }

// Load fetches page 1 and replaces the accumulated events.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return domain.ErrBusy
	}
	f.loading = true
	f.page = domain.FirstPage
	query, gen := f.query, f.gen
	f.mu.Unlock()

	return f.fetchLoop(ctx, domain.FirstPage, query, gen)
}

// LoadMore fetches the next page and appends it.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return domain.ErrBusy
	}
	if f.kind == LocationFeed && len(f.events) == 0 {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	f.page++
	page, query, gen := f.page, f.query, f.gen
	f.mu.Unlock()

	return f.fetchLoop(ctx, page, query, gen)
}

// SetQuery replaces the search text, resets the page to 1, discards the accumulated
// events and fetches page 1. If a fetch is already in flight, that fetch notices the
// reset on completion and fetches page 1 for the new query instead.
func (f *Feed) SetQuery(ctx context.Context, query string) error {
	f.mu.Lock()
	f.query = query
	f.page = domain.FirstPage
	f.events = nil
	f.gen++
	if f.loading {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	gen := f.gen
	f.mu.Unlock()

	return f.fetchLoop(ctx, domain.FirstPage, query, gen)
}

// fetchLoop runs with the loading flag held and clears it before returning.
func (f *Feed) fetchLoop(ctx context.Context, page int, query string, gen uint64) error {
	for {
		f.logger.Debug("fetching page", "page", page, "query", query)
		events := f.fetch(ctx, page, query)

		f.mu.Lock()
		if f.gen != gen {
			// Reset while in flight: drop this result and fetch page 1 for the current query.
			page, query, gen = domain.FirstPage, f.query, f.gen
			f.mu.Unlock()
			continue
		}
		if page == domain.FirstPage {
			f.events = events
		} else {
			f.events = append(f.events, events...)
		}
		f.loading = false
		total := len(f.events)
		f.mu.Unlock()

		f.logger.Debug("page loaded", "page", page, "fetched", len(events), "total", total)
		return nil
	}
}

func (f *Feed) fetch(ctx context.Context, page int, query string) []domain.Event {
	switch f.kind {
	case LocationFeed:
		return f.api.ListEventsByLocation(ctx, page, f.location)
	case SearchFeed:
		return f.api.SearchEvents(ctx, query, page)
	case UserEventsFeed:
		return f.api.GetUserEvents(ctx, page)
	default:
		return f.api.ListEvents(ctx, page)
	}
}

// Events returns a copy of the accumulated events, highlighted events first.
// Order among events with the same highlight flag is fetch order.
func (f *Feed) Events() []domain.Event {
	f.mu.Lock()
	out := slices.Clone(f.events)
	f.mu.Unlock()
	SortByHighlight(out)
	return out
}

// Page returns the last page requested.
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Loading reports whether a fetch is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Query returns the current search text.
func (f *Feed) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// SortByHighlight stably sorts events so highlighted ones come first.
func SortByHighlight(events []domain.Event) {
	slices.SortStableFunc(events, func(a, b domain.Event) int {
		switch {
		case a.Highlight == b.Highlight:
			return 0
		case a.Highlight:
			return -1
		default:
			return 1
		}
	})
}
