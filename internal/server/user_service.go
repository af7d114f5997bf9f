package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/directionwise/internal/config"
	"github.com/jonathan/directionwise/internal/db"
	"github.com/jonathan/directionwise/internal/types"
)

// Account outcome messages.
const (
	msgUserCreated = "User created successfully"
	msgUserExists  = "User already exists with this email"
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, fullName, email, passwordHash string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.UserRecord, error)
	GetUserByID(ctx context.Context, id int64) (*types.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// UserService provides account creation and credential checks.
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{store: store, passwordConfig: passwordConfig}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. A taken email yields ErrEmailAlreadyExists.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	email := normalizeEmail(req.Email)
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, strings.TrimSpace(req.FullName), email, hash)
	if errors.Is(err, db.ErrDuplicate) {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// CreateAccount is Register reported as an outcome rather than an error.
func (s *UserService) CreateAccount(ctx context.Context, fullName, email, password string) types.AccountResult {
	user, err := s.Register(ctx, &types.RegisterRequest{FullName: fullName, Email: email, Password: password})
	var exists *ErrEmailAlreadyExists
	switch {
	case errors.As(err, &exists):
		return types.AccountResult{OK: false, Message: msgUserExists}
	case err != nil:
		return types.AccountResult{OK: false, Message: fmt.Sprintf("Error creating user: %v", err)}
	}
	id := user.ID
	return types.AccountResult{OK: true, UserID: &id, Message: msgUserCreated}
}

// Login checks credentials, records the login time and returns the user.
// Unknown emails and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	rec, err := s.store.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if rec == nil || !rec.IsActive || !s.passwordConfig.VerifyPassword(req.Password, rec.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	if err := s.store.TouchLastLogin(ctx, rec.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user, err := s.store.GetUserByID(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: rec.ID}
	}
	return user, nil
}

// VerifyCredentials returns the user id for valid credentials and nil
// otherwise.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*int64, error) {
	user, err := s.Login(ctx, &types.LoginRequest{Email: email, Password: password})
	var bad *ErrInvalidCredentials
	if errors.As(err, &bad) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user.ID, nil
}

// GetUser returns an account by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*types.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return user, nil
}
