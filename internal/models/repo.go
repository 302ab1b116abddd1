package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var Validate = validator.New()

const (
	UsersColName    = "users"
	BookingsColName = "bookings"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
	timeout       time.Duration
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string, timeout time.Duration) *MongodbRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
		timeout:       timeout,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized: %w", ErrStoreUnavailable)
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// withTimeout bounds a single store operation by the repo timeout.
func (mdb *MongodbRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, mdb.timeout)
}

func (mdb *MongodbRepo) Ping(ctx context.Context) error {
	if mdb.mongodbClient == nil {
		return fmt.Errorf("mongodb client is not initialized: %w", ErrStoreUnavailable)
	}
	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()
	if err := mdb.mongodbClient.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongodb: %v: %w", err, ErrStoreUnavailable)
	}
	return nil
}

// EnsureIndexes creates the unique email index on users and the lookup index on bookings.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	if err := mdb.ensureUserIndexes(ctx); err != nil {
		return err
	}
	return mdb.ensureBookingIndexes(ctx)
}

// classify wraps a driver error with the matching domain error kind.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %v: %w", op, err, ErrDuplicateKey)
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%s: %v: %w", op, err, ErrStoreUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
