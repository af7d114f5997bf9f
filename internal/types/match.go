//nolint:revive // types is a standard Go package name pattern
package types

// MatchScore is the weighted overlap between a user profile and one field.
type MatchScore struct {
	FieldID               string   `json:"field"`
	Score                 float64  `json:"score"`
	SkillMatchCount       int      `json:"skill_match"`
	PersonalityMatchCount int      `json:"personality_match"`
	MatchedSkills         []string `json:"matched_skills,omitempty"`
	MatchedTraits         []string `json:"matched_traits,omitempty"`
	Notes                 string   `json:"notes,omitempty"`
}

// Insights summarises the best matching field for a profile.
type Insights struct {
	TopField            string         `json:"top_field"`
	TopScore            float64        `json:"top_score"`
	RecommendedCareers  []CareerRecord `json:"recommended_careers"`
	SkillGaps           []string       `json:"skill_gaps"`
	GrowthOpportunities []string       `json:"growth_opportunities"`
	Rankings            []MatchScore   `json:"rankings"`
}

// CareerRecommendation is a quiz-driven career suggestion.
type CareerRecommendation struct {
	Name             string      `json:"name"`
	Field            string      `json:"field"`
	Description      string      `json:"description"`
	DemandLevel      DemandLevel `json:"demand_level"`
	SalaryRange      string      `json:"salary_range"`
	Score            float64     `json:"similarity_score"`
	SkillMatch       int         `json:"skill_match"`
	PersonalityMatch int         `json:"personality_match"`
}
