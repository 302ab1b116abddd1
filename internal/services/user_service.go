package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshua-takyi/eventhall/internal/helpers"
	"github.com/joshua-takyi/eventhall/internal/models"
)

type UserService struct {
	userRepo       models.UserRepo
	verifyPassword func(hash, plain string) bool
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo:       userRepo,
		verifyPassword: helpers.VerifyPassword,
	}
}

// Signup registers a user unless the email is already taken. Usernames are not checked for collisions.
func (us *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := models.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := us.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, models.ErrDuplicateEmail
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.CreateUser(ctx, &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and a wrong password.
func (us *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			us.verifyPassword(helpers.DummyHash(), password)
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !us.verifyPassword(user.Password, password) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}
