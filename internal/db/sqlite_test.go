package db

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/types"
)

func newMemoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_UserLifecycle(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Jane", "jane@x.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, [16]byte{}, [16]byte(u.UID))
	assert.True(t, u.IsActive)
	assert.Nil(t, u.LastLogin)

	_, err = s.CreateUser(ctx, "Jane Again", "jane@x.com", "hash2")
	assert.ErrorIs(t, err, ErrDuplicate)

	exists, err := s.EmailExists(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	rec, err := s.GetUserByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "hash", rec.PasswordHash)
	assert.Equal(t, u.UID, rec.UID)

	require.NoError(t, s.TouchLastLogin(ctx, u.ID))
	byID, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.LastLogin)

	byUID, err := s.GetUserByUID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byUID.ID)
}

func TestSQLite_MissingUser(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	rec, err := s.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, rec)

	u, err := s.GetUserByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)

	exists, err := s.EmailExists(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLite_SeedIdempotent(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := s.CountCareers(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(starterCareers), n)

	skills, err := s.ListSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, len(starterSkills))

	careers, err := s.ListCareers(ctx)
	require.NoError(t, err)
	require.Len(t, careers, 10)
	assert.Equal(t, "Data Scientist", careers[0].Name)
	assert.Equal(t, "Financial Analyst", careers[9].Name)
}

func TestSQLite_RandomCareersDistinct(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)

	catalog := make(map[string]bool)
	for _, c := range starterCareers {
		catalog[c.Name] = true
	}

	for i := 0; i < 10; i++ {
		got, err := s.RandomCareers(ctx, 6)
		require.NoError(t, err)
		require.Len(t, got, 6)
		seen := make(map[int64]bool)
		for _, c := range got {
			assert.False(t, seen[c.ID], "duplicate career %s", c.Name)
			seen[c.ID] = true
			assert.True(t, catalog[c.Name])
		}
	}

	all, err := s.RandomCareers(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 10)

	none, err := s.RandomCareers(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLite_CareerTrendSeries(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)

	points, err := s.CareerTrendSeries(ctx, "Software Engineer")
	require.NoError(t, err)
	require.Len(t, points, trendMonths)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Date.After(points[i-1].Date))
		assert.Greater(t, points[i].DemandIndex, points[i-1].DemandIndex)
	}

	unknown, err := s.CareerTrendSeries(ctx, "Astronaut")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	all, err := s.CareerTrendSeries(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, trendMonths*len(starterCareers))
}

func TestSQLite_CareerLookupAndSkills(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)

	c, err := s.GetCareerByName(ctx, "Data Analyst")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Technology", c.Field)
	assert.Equal(t, 75000.0, c.AvgSalary)

	missing, err := s.GetCareerByName(ctx, "Astronaut")
	require.NoError(t, err)
	assert.Nil(t, missing)

	skills, err := s.CareerSkills(ctx, "Data Analyst")
	require.NoError(t, err)
	require.Len(t, skills, 3)
	assert.Equal(t, "Data Analysis", skills[0].Name)
	assert.Equal(t, "SQL", skills[1].Name)
}

func TestSQLite_AssessmentsAndInteractions(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Sam", "sam@x.com", "hash")
	require.NoError(t, err)

	id, err := s.SaveAssessment(ctx, &types.Assessment{
		UserID:         u.ID,
		AssessmentType: types.AssessmentQuiz,
		Answers:        json.RawMessage(`[{"category":"work_style"}]`),
		Results:        json.RawMessage(`{"top_field":"business"}`),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	list, err := s.ListAssessments(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"top_field":"business"}`, string(list[0].Results))
	assert.WithinDuration(t, time.Now(), list[0].CreatedAt, time.Minute)

	_, err = s.RecordInteraction(ctx, &types.Interaction{UserID: u.ID, InteractionType: types.InteractionSaveCareer, Content: "Data Scientist"})
	require.NoError(t, err)
	_, err = s.RecordInteraction(ctx, &types.Interaction{UserID: u.ID, InteractionType: "view", Content: "Nurse", Data: json.RawMessage(`{"source":"search"}`)})
	require.NoError(t, err)

	saved, err := s.ListInteractions(ctx, u.ID, types.InteractionSaveCareer)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Data Scientist", saved[0].Content)
	assert.Nil(t, saved[0].Data)

	all, err := s.ListInteractions(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOpen_DispatchesSQLite(t *testing.T) {
	s, err := Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	defer s.Close()
	_, ok := s.(*SQLiteStore)
	assert.True(t, ok)
}

func TestTrendSeries_Shape(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	points := trendSeries(types.Career{GrowthRate: 22, AvgSalary: 100000}, now)
	require.Len(t, points, 12)
	assert.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), points[11].Date)
	assert.InDelta(t, 100.0, points[0].DemandIndex, 1e-9)
	assert.InDelta(t, 122.0, points[11].DemandIndex, 1e-9)
}
