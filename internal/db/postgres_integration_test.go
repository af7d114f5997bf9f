package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to a local PostgreSQL for integration testing.
// Skipped if TEST_DATABASE_URL is not set or the connection fails.
func setupTestDB(t *testing.T) *PostgresStore {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := ConnectPostgres(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	return s
}

func TestIntegration_PostgresUsers(t *testing.T) {
	s := setupTestDB(t)
	defer s.Close()
	ctx := context.Background()

	email := "test-" + uuid.New().String() + "@example.com"
	u, err := s.CreateUser(ctx, "Test User", email, "hash")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = s.CreateUser(ctx, "Dup", email, "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	rec, err := s.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "hash", rec.PasswordHash)

	require.NoError(t, s.TouchLastLogin(ctx, u.ID))
	got, err := s.GetUserByUID(ctx, u.UID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)

	missing, err := s.GetUserByEmail(ctx, "nonexistent-"+uuid.New().String()+"@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_PostgresCatalog(t *testing.T) {
	s := setupTestDB(t)
	defer s.Close()
	ctx := context.Background()

	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	got, err := s.RandomCareers(ctx, 6)
	require.NoError(t, err)
	assert.Len(t, got, 6)

	points, err := s.CareerTrendSeries(ctx, "Astronaut-"+uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, points)
}
