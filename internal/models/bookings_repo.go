package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingsByEmail(ctx context.Context, email string) ([]*Booking, error)
}

func (mdb *MongodbRepo) ensureBookingIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return err
	}
	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "eventDate", Value: 1},
			},
			Options: options.Index().SetName("email_event_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "BID", Value: 1}},
			Options: options.Index().SetName("bid_idx"),
		},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return classify("error creating booking indexes", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return nil, err
	}
	booking.BeforeCreate()

	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()

	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, classify("error inserting booking", err)
	}
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingsByEmail(ctx context.Context, email string) ([]*Booking, error) {
	col, err := mdb.GetCollection(BookingsColName)
	if err != nil {
		return nil, err
	}
	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "eventDate", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, classify("error finding bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var booking Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v: %w", err, ErrSerialization)
		}
		bookings = append(bookings, &booking)
	}
	if err := cursor.Err(); err != nil {
		return nil, classify("cursor error", err)
	}

	return bookings, nil
}
