package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/config"
	"github.com/jonathan/directionwise/internal/db"
	"github.com/jonathan/directionwise/internal/types"
)

// fakeUserStore keeps users in memory.
type fakeUserStore struct {
	users     map[string]*db.UserRecord
	nextID    int64
	createErr error
	lookupErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*db.UserRecord{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, fullName, email, hash string) (*types.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	rec := &db.UserRecord{
		User: types.User{
			ID: f.nextID, UID: uuid.New(), Email: email, FullName: fullName,
			CreatedAt: time.Now().UTC(), IsActive: true,
		},
		PasswordHash: hash,
	}
	f.users[email] = rec
	u := rec.User
	return &u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.UserRecord, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.users[email], nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*types.User, error) {
	for _, rec := range f.users {
		if rec.ID == id {
			u := rec.User
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserStore) TouchLastLogin(_ context.Context, id int64) error {
	for _, rec := range f.users {
		if rec.ID == id {
			now := time.Now().UTC()
			rec.LastLogin = &now
		}
	}
	return nil
}

func newTestUserService(store UserStore) *UserService {
	return NewUserService(store, &config.PasswordConfig{BcryptCost: 4})
}

func TestUserService_Register(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{FullName: " Ann ", Email: " Ann@Example.COM ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "Ann", user.FullName)
	assert.NotEqual(t, "secret1", store.users["ann@example.com"].PasswordHash)

	_, err = svc.Register(ctx, &types.RegisterRequest{FullName: "Ann", Email: "ANN@example.com", Password: "secret1"})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)
}

func TestUserService_Register_DuplicateRace(t *testing.T) {
	store := newFakeUserStore()
	store.createErr = db.ErrDuplicate
	_, err := newTestUserService(store).Register(context.Background(),
		&types.RegisterRequest{FullName: "Ann", Email: "ann@example.com", Password: "secret1"})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)
}

func TestUserService_CreateAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	res := svc.CreateAccount(ctx, "Ann", "ann@example.com", "secret1")
	assert.True(t, res.OK)
	require.NotNil(t, res.UserID)
	assert.Equal(t, "User created successfully", res.Message)

	res = svc.CreateAccount(ctx, "Ann", "ann@example.com", "secret1")
	assert.False(t, res.OK)
	assert.Nil(t, res.UserID)
	assert.Equal(t, "User already exists with this email", res.Message)

	store.lookupErr = errors.New("disk on fire")
	res = svc.CreateAccount(ctx, "Bob", "bob@example.com", "secret1")
	assert.False(t, res.OK)
	assert.Nil(t, res.UserID)
	assert.Contains(t, res.Message, "Error creating user: ")
	assert.Contains(t, res.Message, "disk on fire")
}

func TestUserService_Login(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()
	_, err := svc.Register(ctx, &types.RegisterRequest{FullName: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Login(ctx, &types.LoginRequest{Email: "ANN@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)

	var bad *ErrInvalidCredentials
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &bad)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorAs(t, err, &bad)

	store.users["ann@example.com"].IsActive = false
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	assert.ErrorAs(t, err, &bad)
}

func TestUserService_VerifyCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(store)
	ctx := context.Background()
	res := svc.CreateAccount(ctx, "Ann", "ann@example.com", "secret1")
	require.True(t, res.OK)

	id, err := svc.VerifyCredentials(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, *res.UserID, *id)

	id, err = svc.VerifyCredentials(ctx, "ann@example.com", "nope")
	require.NoError(t, err)
	assert.Nil(t, id)

	store.lookupErr = errors.New("down")
	_, err = svc.VerifyCredentials(ctx, "ann@example.com", "secret1")
	assert.Error(t, err)
}

func TestUserService_GetUser(t *testing.T) {
	svc := newTestUserService(newFakeUserStore())
	_, err := svc.GetUser(context.Background(), 99)
	var missing *ErrUserNotFound
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, int64(99), missing.UserID)
}
