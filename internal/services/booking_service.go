package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventhall/internal/events"
	"github.com/joshua-takyi/eventhall/internal/helpers"
	"github.com/joshua-takyi/eventhall/internal/models"
)

type BookingService struct {
	bookingRepo models.BookingRepo
	publisher   events.Publisher
	logger      *slog.Logger
}

func NewBookingService(bookingRepo models.BookingRepo, publisher events.Publisher, logger *slog.Logger) *BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Submit validates and stores a booking, then announces it. A failed announcement does not fail the booking.
func (bs *BookingService) Submit(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	req.Normalize()
	if err := models.ValidateStruct(req); err != nil {
		return nil, err
	}
	booking, err := req.ToBooking()
	if err != nil {
		return nil, err
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := bs.publisher.PublishBookingCreated(ctx, bookingCreatedEvent(created)); err != nil {
		bs.logger.Warn("Failed to publish booking event",
			"bid", created.BID,
			"error", err,
		)
	}
	return created, nil
}

// ListForSession returns the bookings for email, provided the session belongs to that email.
func (bs *BookingService) ListForSession(ctx context.Context, session *helpers.SessionClaims, email string) ([]*models.Booking, error) {
	email = models.NormalizeEmail(email)
	if !session.IsOwner(email) {
		return nil, models.ErrUnauthorized
	}

	bookings, err := bs.bookingRepo.GetBookingsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

func bookingCreatedEvent(b *models.Booking) events.BookingCreated {
	return events.BookingCreated{
		BookingID: b.ID.Hex(),
		BID:       b.BID,
		Email:     b.Email,
		FullName:  b.FullName,
		Event:     b.Event,
		Hall:      b.Hall,
		EventDate: b.EventDate.Format("2006-01-02"),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
