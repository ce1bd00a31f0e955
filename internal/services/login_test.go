package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventsmanagement/internal/adapters/session"
	"eventsmanagement/internal/domain"
)

func TestLogin_LoginAndLogout(t *testing.T) {
	store := session.NewStore()
	api := newFakeEventsAPI()
	api.session = store
	api.loginOK = true
	api.loginToken = "T123"
	l := NewLogin(api, store, testLogger)

	assert.False(t, l.LoggedIn())
	require.NoError(t, l.Login(context.Background(), "a@b.com", "pw"))
	assert.True(t, l.LoggedIn())
	assert.Equal(t, "T123", store.Token())

	l.Logout()
	assert.False(t, l.LoggedIn())
	assert.Empty(t, store.Token())
}

func TestLogin_Rejected(t *testing.T) {
	store := session.NewStore()
	store.SetToken("OLD")
	api := newFakeEventsAPI()
	api.session = store
	l := NewLogin(api, store, testLogger)

	err := l.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrLoginRejected)
	assert.Equal(t, "Login failed: User Not Found", UserMessage(err))
	assert.Equal(t, "OLD", store.Token())
}

func TestLogin_BusyGuard(t *testing.T) {
	store := session.NewStore()
	api := newFakeEventsAPI()
	api.session = store
	api.loginOK = true
	api.loginToken = "T123"
	l := NewLogin(api, store, testLogger)
	ctx := context.Background()

	started, release := api.hold()
	defer release()
	done := make(chan error, 1)
	go func() { done <- l.Login(ctx, "a@b.com", "pw") }()
	<-started

	assert.ErrorIs(t, l.Login(ctx, "a@b.com", "pw"), domain.ErrBusy)
	release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.callCount("Login"))
}

func TestLogin_LoadProfile(t *testing.T) {
	api := newFakeEventsAPI()
	api.profile = domain.UserInfo{ID: "vol-1", Name: "Alice", Events: []string{"e1", "e2"}}
	api.user = map[int][]domain.Event{1: pageOf("mine", 2)}
	l := NewLogin(api, session.NewStore(), testLogger)

	p, err := l.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.User.Name)
	assert.Equal(t, []string{"e1", "e2"}, p.RegisteredIDs)
	assert.Equal(t, []string{"mine-1", "mine-2"}, eventIDs(p.Events))
	assert.Equal(t, 1, api.callCount("GetProfile"))
	assert.Equal(t, 1, api.callCount("GetUserEvents"))
}

func TestLogin_LoadProfileEmpty(t *testing.T) {
	l := NewLogin(newFakeEventsAPI(), session.NewStore(), testLogger)

	p, err := l.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, p.RegisteredIDs)
	assert.Empty(t, p.RegisteredIDs)
	assert.Empty(t, p.Events)
}

func TestLogin_LoadProfileCanceled(t *testing.T) {
	api := newFakeEventsAPI()
	l := NewLogin(api, session.NewStore(), testLogger)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.LoadProfile(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, api.callCount("GetProfile"))
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Join failed: Insufficient Quota.", UserMessage(domain.ErrInsufficientQuota))
	assert.Equal(t, "Please wait for the current request to finish.", UserMessage(domain.ErrBusy))
	assert.Equal(t, "Something went wrong", UserMessage(assert.AnError))
}
