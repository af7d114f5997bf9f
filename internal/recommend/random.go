// Package recommend produces catalog recommendations that do not depend on
// a user's quiz answers.
package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/jonathan/directionwise/internal/types"
)

// CareerSampler draws distinct careers from the catalog.
type CareerSampler interface {
	RandomCareers(ctx context.Context, k int) ([]types.Career, error)
}

// sampleCareers is returned when the catalog is empty.
var sampleCareers = []types.RandomRecommendation{
	{Name: "Data Scientist", Field: "Technology", Description: "Analyze data to help organizations make decisions", AvgSalary: 95000, GrowthRate: 15.0},
	{Name: "UX Designer", Field: "Design", Description: "Create user-friendly digital experiences", AvgSalary: 85000, GrowthRate: 12.0},
	{Name: "Product Manager", Field: "Business", Description: "Lead product development and strategy", AvgSalary: 110000, GrowthRate: 18.0},
	{Name: "Cybersecurity Analyst", Field: "Technology", Description: "Protect systems from digital threats", AvgSalary: 90000, GrowthRate: 20.0},
	{Name: "Marketing Specialist", Field: "Marketing", Description: "Develop and execute marketing campaigns", AvgSalary: 65000, GrowthRate: 10.0},
}

// Recommender stands in for collaborative filtering: it samples the catalog
// and attaches placeholder confidence scores.
type Recommender struct {
	sampler CareerSampler

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New creates a Recommender. A nil rng uses a randomly seeded source.
func New(sampler CareerSampler, rng *rand.Rand) *Recommender {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Recommender{sampler: sampler, rng: rng}
}

// Random returns up to k distinct catalog careers with cf_confidence in
// [0.7, 0.95) and user_similarity in [0.6, 0.9). An empty catalog yields
// the fixed sample careers without scores.
func (r *Recommender) Random(ctx context.Context, k int) ([]types.RandomRecommendation, error) {
	if k <= 0 {
		return []types.RandomRecommendation{}, nil
	}
	careers, err := r.sampler.RandomCareers(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("failed to sample careers: %w", err)
	}
	if len(careers) == 0 {
		return append([]types.RandomRecommendation(nil), sampleCareers...), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.RandomRecommendation, len(careers))
	for i, c := range careers {
		out[i] = types.RandomRecommendation{
			Name:           c.Name,
			Field:          c.Field,
			Description:    c.Description,
			AvgSalary:      c.AvgSalary,
			GrowthRate:     c.GrowthRate,
			CFConfidence:   uniform(r.rng, 0.7, 0.95),
			UserSimilarity: uniform(r.rng, 0.6, 0.9),
		}
	}
	return out, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
