package resume

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/ranking"
	"github.com/jonathan/directionwise/internal/types"
)

const (
	keywordLimit   = 30
	topFieldLimit  = 3
	similarLimit   = 5
	maxSearchChars = 4000
)

var ErrEmptyDocument = errors.New("no text could be extracted from the document")

// Searcher finds catalog careers similar to free text.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]types.CareerMatch, error)
}

// Analysis is the outcome of analysing one resume.
type Analysis struct {
	WordCount      int                 `json:"word_count"`
	Keywords       []string            `json:"keywords"`
	DetectedSkills []string            `json:"detected_skills"`
	DetectedTraits []string            `json:"detected_traits"`
	TopField       string              `json:"top_field"`
	TopScore       float64             `json:"top_score"`
	MatchLabel     string              `json:"match_label"`
	Rankings       []types.MatchScore  `json:"rankings"`
	SkillGaps      []string            `json:"skill_gaps"`
	SimilarCareers []types.CareerMatch `json:"similar_careers"`
}

// Analyzer matches resume text against the knowledge base and, when a
// searcher is configured, the persisted career catalog.
type Analyzer struct {
	base     *knowledge.Base
	searcher Searcher
}

// NewAnalyzer creates an analyzer. searcher may be nil.
func NewAnalyzer(base *knowledge.Base, searcher Searcher) *Analyzer {
	return &Analyzer{base: base, searcher: searcher}
}

// AnalyzeDocument extracts the text of an upload and analyses it.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, contentType string, data []byte) (*Analysis, error) {
	text, err := ExtractText(contentType, data)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, text)
}

// Analyze detects knowledge-base skill and trait tags mentioned in text
// and ranks the fields against them as if they were quiz answers.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptyDocument
	}

	profile := a.detectProfile(cleaned)
	result := &Analysis{
		WordCount:      WordCount(cleaned),
		Keywords:       Keywords(cleaned, keywordLimit),
		DetectedSkills: profile.Skills,
		DetectedTraits: profile.PersonalityTraits,
		Rankings:       []types.MatchScore{},
		SkillGaps:      []string{},
		SimilarCareers: []types.CareerMatch{},
	}

	rankings := ranking.RankFields(profile, a.base)
	if len(rankings) > 0 {
		top := rankings[0]
		result.TopField = top.FieldID
		result.TopScore = top.Score
		result.MatchLabel = ranking.MatchLabel(top.Score)
		if field, ok := a.base.Field(top.FieldID); ok {
			result.SkillGaps = ranking.SkillGaps(profile, field)
		}
		if len(rankings) > topFieldLimit {
			rankings = rankings[:topFieldLimit]
		}
		result.Rankings = rankings
	}

	if a.searcher != nil {
		query := cleaned
		if r := []rune(query); len(r) > maxSearchChars {
			query = string(r[:maxSearchChars])
		}
		similar, err := a.searcher.Search(ctx, query, similarLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to search similar careers: %w", err)
		}
		result.SimilarCareers = similar
	}

	slog.Debug("resume: analysed",
		slog.Int("words", result.WordCount),
		slog.Int("skills", len(result.DetectedSkills)),
		slog.Int("traits", len(result.DetectedTraits)),
		slog.String("top_field", result.TopField))
	return result, nil
}

// detectProfile collects every knowledge-base tag whose words appear as a
// phrase in the text, in knowledge-base order without duplicates.
func (a *Analyzer) detectProfile(text string) types.UserProfile {
	haystack := fold(text)
	profile := types.UserProfile{Skills: []string{}, PersonalityTraits: []string{}}
	seenSkills := map[string]bool{}
	seenTraits := map[string]bool{}

	contains := func(tag string) (string, bool) {
		needle := fold(tag)
		if strings.TrimSpace(needle) == "" {
			return "", false
		}
		return needle, strings.Contains(haystack, needle)
	}

	for _, field := range a.base.Fields() {
		for _, s := range field.Skills {
			if key, ok := contains(s); ok && !seenSkills[key] {
				seenSkills[key] = true
				profile.Skills = append(profile.Skills, s)
			}
		}
		for _, t := range field.PersonalityTraits {
			if key, ok := contains(t); ok && !seenTraits[key] {
				seenTraits[key] = true
				profile.PersonalityTraits = append(profile.PersonalityTraits, t)
			}
		}
	}
	return profile
}
