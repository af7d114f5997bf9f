//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"
)

// Career is a row of the persisted career catalog.
type Career struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Field       string    `json:"field"`
	Description string    `json:"description"`
	AvgSalary   float64   `json:"avg_salary"`
	GrowthRate  float64   `json:"growth_rate"`
	Level       string    `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
}

// Skill is a row of the persisted skill catalog.
type Skill struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// TrendPoint is one market trend observation for a career.
type TrendPoint struct {
	ID          int64     `json:"id"`
	CareerID    int64     `json:"career_id"`
	Date        time.Time `json:"date"`
	DemandIndex float64   `json:"demand_index"`
	SalaryIndex float64   `json:"salary_index"`
}

// CareerMatch is a free-text search hit.
type CareerMatch struct {
	Career
	Similarity float64 `json:"similarity_score"`
}

// RandomRecommendation is a sampled career with placeholder filtering scores.
type RandomRecommendation struct {
	Name           string  `json:"name"`
	Field          string  `json:"field"`
	Description    string  `json:"description"`
	AvgSalary      float64 `json:"avg_salary"`
	GrowthRate     float64 `json:"growth_rate"`
	CFConfidence   float64 `json:"cf_confidence,omitempty"`
	UserSimilarity float64 `json:"user_similarity,omitempty"`
}

// Assessment is a stored quiz outcome.
type Assessment struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	AssessmentType string          `json:"assessment_type"`
	Answers        json.RawMessage `json:"answers"`
	Results        json.RawMessage `json:"results"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Interaction is a recorded user action such as saving a career.
type Interaction struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	InteractionType string          `json:"interaction_type"`
	Content         string          `json:"content"`
	Data            json.RawMessage `json:"interaction_data,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Interaction types.
const (
	InteractionSaveCareer = "save_career"
	AssessmentQuiz        = "career_quiz"
)
