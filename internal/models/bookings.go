package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const eventDateLayout = "2006-01-02"

type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	AadharNumber string             `bson:"aadharNumber,omitempty" json:"aadharNumber,omitempty"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Gender       string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Age          *int               `bson:"age,omitempty" json:"age,omitempty"`
	Email        string             `bson:"email" json:"email"`
	EventDate    time.Time          `bson:"eventDate" json:"eventDate"`
	Event        string             `bson:"event" json:"event"`
	Hall         string             `bson:"hall" json:"hall"`
	BID          string             `bson:"BID" json:"BID"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// BookingRequest is the accepted shape of a booking submission, JSON or form encoded.
type BookingRequest struct {
	FullName     string `json:"fullName" form:"fullName" validate:"required,max=120"`
	AadharNumber string `json:"aadharNumber" form:"aadharNumber" validate:"omitempty,numeric,max=16"`
	PhoneNumber  string `json:"phoneNumber" form:"phoneNumber" validate:"omitempty,max=20"`
	Gender       string `json:"gender" form:"gender" validate:"omitempty,max=32"`
	Address      string `json:"address" form:"address" validate:"omitempty,max=300"`
	Age          *Age   `json:"age" form:"age" validate:"omitempty,min=0,max=150"`
	Email        string `json:"email" form:"email" validate:"required,email,max=254"`
	EventDate    string `json:"eventDate" form:"eventDate" validate:"required"`
	Event        string `json:"event" form:"event" validate:"required,max=120"`
	Hall         string `json:"hall" form:"hall" validate:"required,max=120"`
	BID          string `json:"BID" form:"BID" validate:"omitempty,max=64"`
}

// Age decodes from a JSON number or a numeric string such as "30".
type Age int

func (a *Age) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(Age(0))}
	}
	*a = Age(n)
	return nil
}

type BookingsQuery struct {
	Email string `json:"email" form:"email"`
}

// ParseEventDate accepts a calendar date or an RFC 3339 timestamp.
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(eventDateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("eventDate %q is not a date: %w", raw, ErrValidation)
}

// Normalize trims every text field and lower-cases the email. Run it before validation.
func (r *BookingRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.AadharNumber = strings.TrimSpace(r.AadharNumber)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Gender = strings.TrimSpace(r.Gender)
	r.Address = strings.TrimSpace(r.Address)
	r.Email = NormalizeEmail(r.Email)
	r.EventDate = strings.TrimSpace(r.EventDate)
	r.Event = strings.TrimSpace(r.Event)
	r.Hall = strings.TrimSpace(r.Hall)
	r.BID = strings.TrimSpace(r.BID)
}

// ToBooking normalizes the request and builds the document. It assumes the request already passed Validate.
func (r *BookingRequest) ToBooking() (*Booking, error) {
	r.Normalize()
	date, err := ParseEventDate(r.EventDate)
	if err != nil {
		return nil, err
	}

	bid := r.BID
	if bid == "" {
		bid = uuid.New().String()
	}

	var age *int
	if r.Age != nil {
		v := int(*r.Age)
		age = &v
	}

	return &Booking{
		FullName:     r.FullName,
		AadharNumber: r.AadharNumber,
		PhoneNumber:  r.PhoneNumber,
		Gender:       r.Gender,
		Address:      r.Address,
		Age:          age,
		Email:        r.Email,
		EventDate:    date,
		Event:        r.Event,
		Hall:         r.Hall,
		BID:          bid,
	}, nil
}

func (b *Booking) BeforeCreate() {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
}
