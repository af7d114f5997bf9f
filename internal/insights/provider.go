package insights

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed data/market.json
var marketDocument []byte

const (
	stampFormat  = "2006-01-02 15:04"
	dateFormat   = "2006-01-02"
	demandSource = "Live Market Data"
)

// Provider supplies the individual market datasets.
type Provider interface {
	DemandTrends(ctx context.Context) ([]DemandPoint, error)
	JobMarket(ctx context.Context) (map[string]JobMarket, error)
	Salaries(ctx context.Context) (map[string]SalaryLevels, error)
	IndustryTrends(ctx context.Context) (map[string]IndustryTrend, error)
	Geographic(ctx context.Context) (Geographic, error)
	Sources() []string
}

type demandSeries struct {
	Field  string    `json:"field"`
	Scores []float64 `json:"scores"`
}

type countryMarket struct {
	Country string       `json:"country"`
	Cities  []CityMarket `json:"cities"`
}

type marketData struct {
	DemandSeries []demandSeries  `json:"demand_series"`
	JobMarket    []JobMarket     `json:"job_market"`
	Salaries     []SalaryLevels  `json:"salaries"`
	Industry     []IndustryTrend `json:"industry"`
	Geographic   []countryMarket `json:"geographic"`
	Sources      []string        `json:"sources"`
}

// StaticProvider serves the bundled market snapshot, stamped with the
// current time as if freshly fetched.
type StaticProvider struct {
	data marketData
	now  func() time.Time
}

// NewStaticProvider decodes the bundled snapshot.
func NewStaticProvider() (*StaticProvider, error) {
	var data marketData
	if err := json.Unmarshal(marketDocument, &data); err != nil {
		return nil, fmt.Errorf("failed to decode market snapshot: %w", err)
	}
	return &StaticProvider{data: data, now: time.Now}, nil
}

// MustStaticProvider is NewStaticProvider for package-level wiring.
func MustStaticProvider() *StaticProvider {
	p, err := NewStaticProvider()
	if err != nil {
		panic(err)
	}
	return p
}

// DemandTrends returns twelve points per segment dated 30 days apart,
// oldest first, ending 30 days before now.
func (p *StaticProvider) DemandTrends(ctx context.Context) ([]DemandPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now()
	var points []DemandPoint
	for _, series := range p.data.DemandSeries {
		n := len(series.Scores)
		for i, score := range series.Scores {
			points = append(points, DemandPoint{
				Date:        now.AddDate(0, 0, -30*(n-i)).Format(dateFormat),
				Field:       series.Field,
				DemandScore: score,
				Source:      demandSource,
			})
		}
	}
	return points, nil
}

func (p *StaticProvider) JobMarket(ctx context.Context) (map[string]JobMarket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stamp := p.now().Format(stampFormat)
	out := make(map[string]JobMarket, len(p.data.JobMarket))
	for _, j := range p.data.JobMarket {
		j.TopSkills = append([]string(nil), j.TopSkills...)
		j.LastUpdated = stamp
		out[j.Field] = j
	}
	return out, nil
}

func (p *StaticProvider) Salaries(ctx context.Context) (map[string]SalaryLevels, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stamp := p.now().Format(stampFormat)
	out := make(map[string]SalaryLevels, len(p.data.Salaries))
	for _, s := range p.data.Salaries {
		s.LastUpdated = stamp
		out[s.Field] = s
	}
	return out, nil
}

func (p *StaticProvider) IndustryTrends(ctx context.Context) (map[string]IndustryTrend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stamp := p.now().Format(stampFormat)
	out := make(map[string]IndustryTrend, len(p.data.Industry))
	for _, t := range p.data.Industry {
		t.TrendingSkills = append([]string(nil), t.TrendingSkills...)
		t.EmergingRoles = append([]string(nil), t.EmergingRoles...)
		t.LastUpdated = stamp
		out[t.Field] = t
	}
	return out, nil
}

func (p *StaticProvider) Geographic(ctx context.Context) (Geographic, error) {
	if err := ctx.Err(); err != nil {
		return Geographic{}, err
	}
	geo := Geographic{
		Countries:   make(map[string]map[string]CityMarket, len(p.data.Geographic)),
		LastUpdated: p.now().Format(stampFormat),
	}
	for _, country := range p.data.Geographic {
		cities := make(map[string]CityMarket, len(country.Cities))
		for _, c := range country.Cities {
			cities[c.City] = c
		}
		geo.Countries[country.Country] = cities
	}
	return geo, nil
}

func (p *StaticProvider) Sources() []string {
	return append([]string(nil), p.data.Sources...)
}
