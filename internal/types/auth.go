// Package types provides the data types shared across the career guidance service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest is the body of an account registration.
type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required,min=1,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginRequest is the body of a login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is an account as exposed over the API. The password hash never leaves the store.
type User struct {
	ID        int64      `json:"id"`
	UID       uuid.UUID  `json:"uid"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// LoginResponse carries the user and a bearer token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// AccountResult reports the outcome of an account creation attempt.
// UserID is nil whenever OK is false.
type AccountResult struct {
	OK      bool   `json:"ok"`
	UserID  *int64 `json:"user_id"`
	Message string `json:"message"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}
