package domain

import (
	"slices"
	"strings"
)

// AgeGroups is the fixed set of age groups a volunteer can pick from.
var AgeGroups = []string{"Under 18", "18-24", "25-34", "35-44", "45-54", "55+"}

// UserInfo is the authenticated volunteer's profile.
type UserInfo struct {
	ID         string   `json:"_id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Contact    string   `json:"contact"`
	AgeGroup   string   `json:"age_group"`
	About      string   `json:"about"`
	Terms      bool     `json:"terms"`
	CreatedAt  string   `json:"createdAt"`
	ModifiedAt string   `json:"modifiedAt"`
	IsAdmin    bool     `json:"isAdmin"`
	Events     []string `json:"events"`
}

// Volunteer is the sign-up form submitted to POST /volunteers/.
type Volunteer struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	AgeGroup string `json:"ageGroup"`
	About    string `json:"about"`
	Terms    bool   `json:"terms"`
}

// Validate runs the client-side checks in order and returns the first failure.
// An empty age group is accepted; the server applies its own default.
func (v Volunteer) Validate() error {
	switch {
	case strings.TrimSpace(v.Email) == "":
		return ErrEmptyEmail
	case !strings.Contains(v.Email, "@"):
		return ErrInvalidEmailFormat
	case !v.Terms:
		return ErrTermsNotAccepted
	case v.AgeGroup != "" && !slices.Contains(AgeGroups, v.AgeGroup):
		return ErrInvalidAgeGroup
	}
	return nil
}

// LoginRequest is the request body for POST /login/
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the response body for a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
