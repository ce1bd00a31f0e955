package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventsmanagement/internal/domain"
)

// maxRejectionBody caps how much of a non-success response body is kept for logging.
const maxRejectionBody = 512

// Config holds the endpoint settings for the events API.
type Config struct {
	BaseURL string
	// SelfAlias is used for the {self} path segment when the session token carries no subject.
	SelfAlias string
}

type client struct {
	http      *http.Client
	baseURL   string
	selfAlias string
	session   domain.SessionStore
	logger    *slog.Logger
}

// NewClient returns an EventsAPI backed by the REST service at cfg.BaseURL.
// The session is read on every request and written only by Login.
func NewClient(httpClient *http.Client, cfg Config, session domain.SessionStore, logger *slog.Logger) domain.EventsAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &client{
		http:      httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		selfAlias: cfg.SelfAlias,
		session:   session,
		logger:    logger,
	}
}

func (c *client) ListEvents(ctx context.Context, page int) []domain.Event {
	return c.listEvents(ctx, "list events", pageQuery(page))
}

func (c *client) ListEventsByLocation(ctx context.Context, page, location int) []domain.Event {
	q := pageQuery(page)
	q.Set("location", strconv.Itoa(location))
	return c.listEvents(ctx, "list events by location", q)
}

func (c *client) SearchEvents(ctx context.Context, query string, page int) []domain.Event {
	q := pageQuery(page)
	q.Set("search", query)
	return c.listEvents(ctx, "search events", q)
}

func (c *client) listEvents(ctx context.Context, op string, q url.Values) []domain.Event {
	var resp domain.EventPage
	if err := c.getJSON(ctx, "/events/", q, &resp); err != nil {
		c.logFailure(op, err)
		return []domain.Event{}
	}
	c.logger.Debug("events page loaded",
		"op", op,
		"page", resp.Page,
		"count", len(resp.Events),
		"total_pages", resp.TotalPages(),
	)
	return nonNil(resp.Events)
}

func (c *client) GetEvent(ctx context.Context, id string) domain.Event {
	var event domain.Event
	if err := c.getJSON(ctx, "/events/"+url.PathEscape(id), nil, &event); err != nil {
		c.logFailure("get event", err, "event_id", id)
		return domain.Event{}
	}
	return event
}

func (c *client) GetRegisteredEventIDs(ctx context.Context) []string {
	var info domain.UserInfo
	if err := c.getJSON(ctx, "/volunteers/"+c.self(), nil, &info); err != nil {
		c.logFailure("get registered events", err)
		return []string{}
	}
	if info.Events == nil {
		return []string{}
	}
	return info.Events
}

func (c *client) GetProfile(ctx context.Context) domain.UserInfo {
	var info domain.UserInfo
	if err := c.getJSON(ctx, "/volunteers/"+c.self(), nil, &info); err != nil {
		c.logFailure("get profile", err)
		return domain.UserInfo{}
	}
	return info
}

func (c *client) GetUserEvents(ctx context.Context, page int) []domain.Event {
	var resp domain.UserEventPage
	if err := c.getJSON(ctx, "/volunteers/"+c.self()+"/events", pageQuery(page), &resp); err != nil {
		c.logFailure("get user events", err)
		return []domain.Event{}
	}
	return nonNil(resp.Events)
}

func (c *client) RegisterVolunteer(ctx context.Context, v domain.Volunteer) bool {
	resp, err := c.send(ctx, http.MethodPost, "/volunteers/", v, http.StatusCreated)
	if err != nil {
		c.logFailure("register volunteer", err, "email", v.Email)
		return false
	}
	closeBody(resp)
	c.logger.Info("volunteer registered", "email", v.Email)
	return true
}

func (c *client) JoinEvent(ctx context.Context, id string) bool {
	return c.eventMembership(ctx, http.MethodPost, "join event", id)
}

func (c *client) LeaveEvent(ctx context.Context, id string) bool {
	return c.eventMembership(ctx, http.MethodDelete, "leave event", id)
}

func (c *client) eventMembership(ctx context.Context, method, op, id string) bool {
	resp, err := c.send(ctx, method, "/events/"+url.PathEscape(id)+"/volunteers", nil, http.StatusOK)
	if err != nil {
		c.logFailure(op, err, "event_id", id)
		return false
	}
	closeBody(resp)
	c.logger.Info(op+" succeeded", "event_id", id)
	return true
}

func (c *client) Login(ctx context.Context, email, password string) bool {
	resp, err := c.send(ctx, http.MethodPost, "/login/", domain.LoginRequest{Email: email, Password: password}, http.StatusOK)
	if err != nil {
		c.logFailure("login", err, "email", email)
		return false
	}
	defer closeBody(resp)

	var tok domain.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		c.logFailure("login", fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err), "email", email)
		return false
	}
	if tok.Token == "" {
		c.logFailure("login", fmt.Errorf("%w: empty token", domain.ErrDecodeFailure), "email", email)
		return false
	}
	c.session.SetToken(tok.Token)
	c.logger.Info("logged in", "email", email)
	return true
}

// getJSON issues a GET and decodes a 200 response into dest.
func (c *client) getJSON(ctx context.Context, path string, q url.Values, dest any) error {
	resp, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return rejection(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
	}
	return nil
}

// send issues a write request and returns the response only if its status is want.
// The caller closes the returned body with closeBody.
func (c *client) send(ctx context.Context, method, path string, body any, want int) (*http.Response, error) {
	resp, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != want {
		defer closeBody(resp)
		return nil, rejection(resp)
	}
	return resp, nil
}

func (c *client) do(ctx context.Context, method, path string, q url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	// Without a session the header is left out rather than sent as an empty
	// "Bearer " value; the server treats both as unauthenticated.
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrNetworkFailure, method, path, err)
	}
	c.logger.Debug("events api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	)
	return resp, nil
}

func (c *client) self() string {
	if sub, ok := c.session.Subject(); ok {
		return url.PathEscape(sub)
	}
	return url.PathEscape(c.selfAlias)
}

func (c *client) logFailure(op string, err error, args ...any) {
	c.logger.Warn("events api call failed", append([]any{"op", op, "error", err}, args...)...)
}

// closeBody drains what is left of the body so the connection can be reused.
func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func rejection(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxRejectionBody))
	return &domain.ServerRejectionError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	}
}

func pageQuery(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(domain.NormalizePage(page))}}
}

func nonNil(events []domain.Event) []domain.Event {
	if events == nil {
		return []domain.Event{}
	}
	return events
}
