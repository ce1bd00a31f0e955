package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_DecodeLocation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Location
	}{
		{"string", `{"_id":"e1","location":"3"}`, "3"},
		{"number", `{"_id":"e1","location":7}`, "7"},
		{"null", `{"_id":"e1","location":null}`, ""},
		{"missing", `{"_id":"e1"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Event
			require.NoError(t, json.Unmarshal([]byte(tt.body), &e))
			assert.Equal(t, tt.want, e.Location)
		})
	}

	var e Event
	assert.Error(t, json.Unmarshal([]byte(`{"location":true}`), &e))
}

func TestLocation_Code(t *testing.T) {
	code, err := Location("4").Code()
	require.NoError(t, err)
	assert.Equal(t, 4, code)

	_, err = Location("harbour").Code()
	assert.Error(t, err)
}

func TestEvent_Helpers(t *testing.T) {
	assert.True(t, Event{}.IsZero())
	assert.False(t, Event{ID: "e1"}.IsZero())
	assert.False(t, Event{Quota: 0}.CanJoin())
	assert.False(t, Event{Quota: -2}.CanJoin())
	assert.True(t, Event{Quota: 1}.CanJoin())

	d, err := Event{EventDate: "2024-05-01T10:00:00Z"}.Date()
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	_, err = Event{EventDate: "tomorrow"}.Date()
	assert.Error(t, err)
}

func TestVolunteer_Validate(t *testing.T) {
	valid := Volunteer{Email: "a@b.com", Terms: true, AgeGroup: "18-24"}

	tests := []struct {
		name    string
		mutate  func(v *Volunteer)
		wantErr error
	}{
		{"valid", func(v *Volunteer) {}, nil},
		{"empty age group accepted", func(v *Volunteer) { v.AgeGroup = "" }, nil},
		{"empty email", func(v *Volunteer) { v.Email = "" }, ErrEmptyEmail},
		{"blank email", func(v *Volunteer) { v.Email = "   " }, ErrEmptyEmail},
		{"empty email wins over terms", func(v *Volunteer) { v.Email = ""; v.Terms = false }, ErrEmptyEmail},
		{"no at sign", func(v *Volunteer) { v.Email = "ab.com" }, ErrInvalidEmailFormat},
		{"format wins over terms", func(v *Volunteer) { v.Email = "ab.com"; v.Terms = false }, ErrInvalidEmailFormat},
		{"terms not accepted", func(v *Volunteer) { v.Terms = false }, ErrTermsNotAccepted},
		{"unknown age group", func(v *Volunteer) { v.AgeGroup = "99+" }, ErrInvalidAgeGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid
			tt.mutate(&v)
			err := v.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationFailure(err))
		})
	}
}

func TestCheckLocation(t *testing.T) {
	for _, code := range Locations() {
		assert.NoError(t, CheckLocation(code))
	}
	for _, code := range []int{0, 10, 42, -1} {
		err := CheckLocation(code)
		assert.ErrorIs(t, err, ErrInvalidLocation)
		assert.True(t, IsValidationFailure(err))
	}
}

func TestEventPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, EventPage{Total: 10}.TotalPages())
	assert.Equal(t, 1, EventPage{Total: 6, PerPage: 6}.TotalPages())
	assert.Equal(t, 2, EventPage{Total: 7, PerPage: 6}.TotalPages())
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 3, NormalizePage(3))
}

func TestServerRejectionError(t *testing.T) {
	assert.Equal(t, "server returned status 404", (&ServerRejectionError{StatusCode: 404}).Error())
	assert.Equal(t, "server returned status 400: bad", (&ServerRejectionError{StatusCode: 400, Body: "bad"}).Error())
	assert.False(t, IsValidationFailure(ErrJoinRejected))
}
