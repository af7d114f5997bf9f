package recommend

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/db"
	"github.com/jonathan/directionwise/internal/types"
)

type fakeSampler struct {
	careers []types.Career
	err     error
}

func (f fakeSampler) RandomCareers(_ context.Context, k int) ([]types.Career, error) {
	if k < len(f.careers) {
		return f.careers[:k], f.err
	}
	return f.careers, f.err
}

func TestRandom_EmptyCatalogFallsBack(t *testing.T) {
	r := New(fakeSampler{}, nil)
	got, err := r.Random(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Data Scientist", got[0].Name)
	assert.Equal(t, "Marketing Specialist", got[4].Name)
	assert.Zero(t, got[0].CFConfidence)
}

func TestRandom_ScoresInRange(t *testing.T) {
	careers := []types.Career{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	r := New(fakeSampler{careers: careers}, rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 50; i++ {
		got, err := r.Random(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, g := range got {
			assert.GreaterOrEqual(t, g.CFConfidence, 0.7)
			assert.Less(t, g.CFConfidence, 0.95)
			assert.GreaterOrEqual(t, g.UserSimilarity, 0.6)
			assert.Less(t, g.UserSimilarity, 0.9)
		}
	}
}

func TestRandom_SamplerError(t *testing.T) {
	r := New(fakeSampler{err: errors.New("boom")}, nil)
	_, err := r.Random(context.Background(), 3)
	assert.Error(t, err)
}

func TestRandom_SeededCatalogReturnsSixDistinct(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SeedIfEmpty(ctx)
	require.NoError(t, err)

	got, err := New(store, nil).Random(ctx, 6)
	require.NoError(t, err)
	require.Len(t, got, 6)

	seen := make(map[string]bool)
	for _, g := range got {
		assert.False(t, seen[g.Name])
		seen[g.Name] = true
	}
}
