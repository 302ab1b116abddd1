package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() BookingRequest {
	age := Age(30)
	return BookingRequest{
		FullName:     "  Asha Rao ",
		AadharNumber: "123412341234",
		PhoneNumber:  "9876543210",
		Gender:       "female",
		Address:      "12 Lake Road",
		Age:          &age,
		Email:        " Asha@Example.COM ",
		EventDate:    "2025-12-24",
		Event:        "Wedding",
		Hall:         "hall-a",
	}
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar date", raw: "2025-12-24", want: time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", raw: "2025-12-24T18:30:00+05:30", want: time.Date(2025, 12, 24, 13, 0, 0, 0, time.UTC)},
		{name: "surrounding spaces", raw: " 2025-01-02 ", want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", raw: "next tuesday", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDate(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestBookingRequest_ToBooking(t *testing.T) {
	req := validBookingRequest()

	booking, err := req.ToBooking()
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", booking.FullName)
	assert.Equal(t, "asha@example.com", booking.Email)
	assert.Equal(t, 30, *booking.Age)
	assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), booking.EventDate)
	_, err = uuid.Parse(booking.BID)
	assert.NoError(t, err, "a BID is generated when none is supplied")
	assert.True(t, booking.ID.IsZero())
}

func TestBookingRequest_ToBookingKeepsSuppliedBID(t *testing.T) {
	req := validBookingRequest()
	req.BID = " B-1001 "

	booking, err := req.ToBooking()
	require.NoError(t, err)
	assert.Equal(t, "B-1001", booking.BID)
}

func TestBookingRequest_Validation(t *testing.T) {
	negative := Age(-1)
	tests := []struct {
		name      string
		mutate    func(r *BookingRequest)
		wantField string
	}{
		{name: "missing full name", mutate: func(r *BookingRequest) { r.FullName = "" }, wantField: "fullName"},
		{name: "bad email", mutate: func(r *BookingRequest) { r.Email = "not-an-email" }, wantField: "email"},
		{name: "missing event date", mutate: func(r *BookingRequest) { r.EventDate = "" }, wantField: "eventDate"},
		{name: "missing hall", mutate: func(r *BookingRequest) { r.Hall = "" }, wantField: "hall"},
		{name: "non numeric national id", mutate: func(r *BookingRequest) { r.AadharNumber = "12AB" }, wantField: "aadharNumber"},
		{name: "negative age", mutate: func(r *BookingRequest) { r.Age = &negative }, wantField: "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBookingRequest()
			tt.mutate(&req)
			req.Normalize()

			err := ValidateStruct(&req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, ValidationDetails(err), tt.wantField)
		})
	}

	t.Run("valid request", func(t *testing.T) {
		req := validBookingRequest()
		req.Normalize()
		assert.NoError(t, ValidateStruct(&req))
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		req := validBookingRequest()
		req.Age = nil
		req.AadharNumber = ""
		req.PhoneNumber = ""
		req.Normalize()
		assert.NoError(t, ValidateStruct(&req))
	})

	t.Run("padded email is rejected until normalized", func(t *testing.T) {
		req := validBookingRequest()
		assert.Error(t, ValidateStruct(&req))
		req.Normalize()
		assert.NoError(t, ValidateStruct(&req))
	})
}

func TestBookingRequest_Normalize(t *testing.T) {
	req := validBookingRequest()
	req.BID = " B-7 "
	req.EventDate = " 2025-12-24 "

	req.Normalize()

	assert.Equal(t, "Asha Rao", req.FullName)
	assert.Equal(t, "asha@example.com", req.Email)
	assert.Equal(t, "B-7", req.BID)
	assert.Equal(t, "2025-12-24", req.EventDate)
}

func TestAge_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *Age
		wantErr bool
	}{
		{name: "number", body: `{"age":30}`, want: agePtr(30)},
		{name: "numeric string", body: `{"age":"30"}`, want: agePtr(30)},
		{name: "padded string", body: `{"age":" 41 "}`, want: agePtr(41)},
		{name: "null", body: `{"age":null}`},
		{name: "absent", body: `{}`},
		{name: "word", body: `{"age":"thirty"}`, wantErr: true},
		{name: "fraction", body: `{"age":30.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req BookingRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, map[string]string{"age": "type=models.Age"}, BindDetails(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Age)
		})
	}
}

func agePtr(n int) *Age {
	a := Age(n)
	return &a
}

func TestBindDetails(t *testing.T) {
	var req BookingRequest
	err := json.Unmarshal([]byte(`{"fullName":`), &req)
	require.Error(t, err)
	assert.NotEmpty(t, BindDetails(err))

	err = json.Unmarshal([]byte(`{"fullName":42}`), &req)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"fullName": "type=string"}, BindDetails(err))

	assert.Equal(t, map[string]string{"body": "invalid"}, BindDetails(errors.New("boom")))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "store_unavailable", ErrorKind(fmt.Errorf("insert: %w", ErrStoreUnavailable)))
	assert.Equal(t, "serialization", ErrorKind(fmt.Errorf("decode: %w", ErrSerialization)))
	assert.Equal(t, "duplicate", ErrorKind(ErrDuplicateEmail))
	assert.Equal(t, "validation", ErrorKind(ErrValidation))
	assert.Equal(t, "internal", ErrorKind(errors.New("boom")))
}

func TestValidationDetailsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("boom")))
}
