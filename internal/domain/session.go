package domain

// SessionStore holds the bearer token for the running process.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	Token() string
	SetToken(token string)
	Clear()
	Authenticated() bool
	// Subject returns the user id carried by the token, if any.
	Subject() (string, bool)
}
