//nolint:revive // types is a standard Go package name pattern
package types

// DemandLevel is the labour-market demand band of a career field.
type DemandLevel string

const (
	DemandVeryHigh   DemandLevel = "Very High"
	DemandHigh       DemandLevel = "High"
	DemandMediumHigh DemandLevel = "Medium-High"
	DemandMedium     DemandLevel = "Medium"
	DemandLow        DemandLevel = "Low"
)

// Rank orders demand levels from Low (1) to Very High (5). Unknown levels rank 0.
func (d DemandLevel) Rank() int {
	switch d {
	case DemandVeryHigh:
		return 5
	case DemandHigh:
		return 4
	case DemandMediumHigh:
		return 3
	case DemandMedium:
		return 2
	case DemandLow:
		return 1
	default:
		return 0
	}
}

// CareerRecord is a career described inside a knowledge field.
type CareerRecord struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ExperienceBand string   `json:"experience_band"`
	SalaryBand     string   `json:"salary_band"`
	RequiredSkills []string `json:"required_skills"`
}

// FieldComparison holds the headline numbers used to compare fields side by side.
type FieldComparison struct {
	DemandScore   float64 `json:"demand_score"`
	GrowthPercent float64 `json:"growth_percent"`
	AvgSalaryK    float64 `json:"avg_salary_k"`
}

// KnowledgeField is one career field of the knowledge base.
type KnowledgeField struct {
	ID                   string          `json:"id"`
	Skills               []string        `json:"skills"`
	PersonalityTraits    []string        `json:"personality_traits"`
	Careers              []CareerRecord  `json:"careers"`
	GrowthAreas          []string        `json:"growth_areas"`
	SalaryRange          string          `json:"salary_range"`
	DemandLevel          DemandLevel     `json:"demand_level"`
	WorkEnvironment      string          `json:"work_environment"`
	MarketTrends         []float64       `json:"market_trends"`
	GrowthRate           string          `json:"growth_rate"`
	EmergingTechnologies []string        `json:"emerging_technologies,omitempty"`
	Comparison           FieldComparison `json:"comparison"`
}

// Career looks up a career record by exact name.
func (f *KnowledgeField) Career(name string) (CareerRecord, bool) {
	for _, c := range f.Careers {
		if c.Name == name {
			return c, true
		}
	}
	return CareerRecord{}, false
}

// StoryLink is an external profile link attached to a mentorship story.
type StoryLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// MentorshipStory is a career journey told by a mentor in a given field.
type MentorshipStory struct {
	Field      string      `json:"field,omitempty"`
	Career     string      `json:"career,omitempty"`
	Mentor     string      `json:"mentor"`
	Role       string      `json:"role"`
	Company    string      `json:"company,omitempty"`
	Experience string      `json:"experience,omitempty"`
	Story      string      `json:"story"`
	Advice     string      `json:"advice"`
	Challenges string      `json:"challenges,omitempty"`
	Resources  string      `json:"resources,omitempty"`
	Links      []StoryLink `json:"links,omitempty"`
}
