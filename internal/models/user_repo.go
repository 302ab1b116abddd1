package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

func (mdb *MongodbRepo) ensureUserIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return err
	}
	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()

	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return classify("error creating user indexes", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, err
	}
	user.BeforeCreate()

	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()

	if _, err := col.InsertOne(ctx, user); err != nil {
		err = classify("error inserting user", err)
		if errors.Is(err, ErrDuplicateKey) {
			return nil, fmt.Errorf("%v: %w", err, ErrDuplicateEmail)
		}
		return nil, err
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, err
	}
	ctx, cancel := mdb.withTimeout(ctx)
	defer cancel()

	res := col.FindOne(ctx, bson.M{"email": email})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, classify("error finding user by email", err)
	}

	var user User
	if err := res.Decode(&user); err != nil {
		return nil, fmt.Errorf("error decoding user: %v: %w", err, ErrSerialization)
	}
	return &user, nil
}
