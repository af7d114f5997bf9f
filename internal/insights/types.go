// Package insights assembles labour-market data for the career fields:
// demand trends, open roles, salary bands, industry momentum and regional
// job counts.
package insights

// DemandPoint is one monthly demand observation for a market segment.
type DemandPoint struct {
	Date        string  `json:"date"`
	Field       string  `json:"field"`
	DemandScore float64 `json:"demand_score"`
	Source      string  `json:"source"`
}

// JobMarket summarises open roles in a career field.
type JobMarket struct {
	Field       string   `json:"field"`
	ActiveJobs  int      `json:"active_jobs"`
	GrowthRate  string   `json:"growth_rate"`
	TopSkills   []string `json:"top_skills"`
	SalaryTrend string   `json:"salary_trend"`
	LastUpdated string   `json:"last_updated"`
}

// SalaryBand is a pay range for one seniority level.
type SalaryBand struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
	Source   string `json:"source"`
}

// SalaryLevels holds the bands of a field by seniority.
type SalaryLevels struct {
	Field       string     `json:"field"`
	EntryLevel  SalaryBand `json:"entry_level"`
	MidLevel    SalaryBand `json:"mid_level"`
	SeniorLevel SalaryBand `json:"senior_level"`
	LastUpdated string     `json:"last_updated"`
}

// IndustryTrend captures where a field is heading.
type IndustryTrend struct {
	Field           string   `json:"field"`
	TrendingSkills  []string `json:"trending_skills"`
	EmergingRoles   []string `json:"emerging_roles"`
	MarketSentiment string   `json:"market_sentiment"`
	InvestmentTrend string   `json:"investment_trend"`
	LastUpdated     string   `json:"last_updated"`
}

// CityMarket is the job picture of one city.
type CityMarket struct {
	City           string `json:"city"`
	TechJobs       int    `json:"tech_jobs"`
	HealthcareJobs int    `json:"healthcare_jobs"`
	BusinessJobs   int    `json:"business_jobs"`
	GrowthRate     string `json:"growth_rate"`
	AvgSalary      int    `json:"avg_salary"`
}

// Geographic maps country -> city -> market.
type Geographic struct {
	Countries   map[string]map[string]CityMarket `json:"countries"`
	LastUpdated string                           `json:"last_updated"`
}

// Report is the combined market snapshot.
type Report struct {
	JobMarket      map[string]JobMarket     `json:"job_market"`
	SalaryData     map[string]SalaryLevels  `json:"salary_data"`
	IndustryTrends map[string]IndustryTrend `json:"industry_trends"`
	Geographic     Geographic               `json:"geographic_data"`
	DataFreshness  string                   `json:"data_freshness"`
	LastUpdated    string                   `json:"last_updated"`
	DataSources    []string                 `json:"data_sources"`
}

// FieldComparison is one row of the side-by-side field chart.
type FieldComparison struct {
	Field         string  `json:"field"`
	DisplayName   string  `json:"display_name"`
	DemandScore   float64 `json:"demand_score"`
	GrowthPercent float64 `json:"growth_percent"`
	AvgSalaryK    float64 `json:"avg_salary_k"`
}

// FieldTrend is the monthly demand series of a knowledge-base field.
type FieldTrend struct {
	Field       string    `json:"field"`
	DisplayName string    `json:"display_name"`
	Months      []string  `json:"months"`
	Values      []float64 `json:"values"`
}
