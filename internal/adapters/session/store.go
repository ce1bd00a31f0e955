package session

import (
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"eventsmanagement/internal/domain"
)

// subjectClaims are checked in order when looking for the user id in a token.
var subjectClaims = []string{"sub", "_id", "id"}

type store struct {
	mu    sync.RWMutex
	token string
}

// NewStore returns an empty, in-memory SessionStore. Nothing is persisted.
func NewStore() domain.SessionStore {
	return &store{}
}

func (s *store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *store) Clear() {
	s.SetToken("")
}

func (s *store) Authenticated() bool {
	return s.Token() != ""
}

// Subject reads the user id from the token without verifying its signature;
// the client never holds the signing key. Opaque tokens yield false.
func (s *store) Subject() (string, bool) {
	token := s.Token()
	if token == "" {
		return "", false
	}
	sub, err := subjectFromToken(token)
	if err != nil {
		return "", false
	}
	return sub, true
}

func subjectFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	for _, name := range subjectClaims {
		if v, ok := claims[name].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("token has no subject claim")
}
