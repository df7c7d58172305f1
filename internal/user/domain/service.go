package domain

import (
	"context"
	"errors"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate checks the password for the account behind email. It
	// returns ErrBadCredentials for unknown accounts and wrong passwords
	// alike so callers cannot probe which emails exist.
	Authenticate(ctx context.Context, email, plainPassword string) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

var (
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrEmailTaken      = errors.New("email_taken")
	ErrUserNotFound    = errors.New("user_not_found")
	ErrBadCredentials  = errors.New("bad_credentials")
)
