package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/types"
)

const (
	recommendedCareerLimit = 5
	skillGapWindow         = 10
	skillGapLimit          = 5
)

// RankFields scores every field and sorts them by descending score.
// Fields with equal scores keep their knowledge-base order.
func RankFields(profile types.UserProfile, base *knowledge.Base) []types.MatchScore {
	fields := base.Fields()
	scores := make([]types.MatchScore, 0, len(fields))
	for i := range fields {
		scores = append(scores, ScoreField(profile, &fields[i]))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// Insights summarises the top-ranked field for a profile: its leading
// careers, growth areas and the skills the user does not yet have.
// An empty profile yields the first declared field with a zero score.
func Insights(profile types.UserProfile, base *knowledge.Base) types.Insights {
	rankings := RankFields(profile, base)
	if len(rankings) == 0 {
		return types.Insights{
			RecommendedCareers:  []types.CareerRecord{},
			SkillGaps:           []string{},
			GrowthOpportunities: []string{},
			Rankings:            rankings,
		}
	}

	top := rankings[0]
	field, _ := base.Field(top.FieldID)

	careers := field.Careers
	if len(careers) > recommendedCareerLimit {
		careers = careers[:recommendedCareerLimit]
	}

	return types.Insights{
		TopField:            top.FieldID,
		TopScore:            top.Score,
		RecommendedCareers:  append([]types.CareerRecord(nil), careers...),
		SkillGaps:           SkillGaps(profile, field),
		GrowthOpportunities: append([]string{}, field.GrowthAreas...),
		Rankings:            rankings,
	}
}

// SkillGaps lists up to five of the field's first ten declared skills that
// the profile lacks, in declaration order.
func SkillGaps(profile types.UserProfile, field *types.KnowledgeField) []string {
	have := lookupSet(profile.Skills)

	window := field.Skills
	if len(window) > skillGapWindow {
		window = window[:skillGapWindow]
	}

	gaps := make([]string, 0, skillGapLimit)
	for _, s := range window {
		if have[NormalizeTag(s)] {
			continue
		}
		gaps = append(gaps, s)
		if len(gaps) == skillGapLimit {
			break
		}
	}
	return gaps
}

// RecommendFromQuiz turns the top-ranked field into career suggestions,
// each carrying the field's score, demand level and salary range.
// A non-positive limit means the default of five.
func RecommendFromQuiz(profile types.UserProfile, base *knowledge.Base, limit int) []types.CareerRecommendation {
	if limit <= 0 {
		limit = recommendedCareerLimit
	}
	rankings := RankFields(profile, base)
	if len(rankings) == 0 {
		return []types.CareerRecommendation{}
	}
	top := rankings[0]
	field, _ := base.Field(top.FieldID)

	recs := make([]types.CareerRecommendation, 0, limit)
	for _, c := range field.Careers {
		if len(recs) == limit {
			break
		}
		recs = append(recs, types.CareerRecommendation{
			Name:             c.Name,
			Field:            field.ID,
			Description:      c.Description,
			DemandLevel:      field.DemandLevel,
			SalaryRange:      field.SalaryRange,
			Score:            top.Score,
			SkillMatch:       top.SkillMatchCount,
			PersonalityMatch: top.PersonalityMatchCount,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return recs
}

// Field scores are divided by the size of the field's skill list, so a
// handful of matches is already a good fit.
const (
	strongMatchThreshold   = 0.2
	moderateMatchThreshold = 0.08
)

// MatchLabel describes a field score in words.
func MatchLabel(score float64) string {
	switch {
	case score >= strongMatchThreshold:
		return "Strong match"
	case score >= moderateMatchThreshold:
		return "Moderate match"
	case score > 0:
		return "Weak match"
	default:
		return "No match"
	}
}

// generateNotes creates a brief explanation of a field score.
func generateNotes(score float64, matchedSkills, matchedTraits []string) string {
	var parts []string

	if len(matchedSkills) > 0 {
		parts = append(parts, fmt.Sprintf("%s (%s)", MatchLabel(score), strings.Join(matchedSkills, ", ")))
	} else {
		parts = append(parts, "No skill matches")
	}

	if len(matchedTraits) > 0 {
		parts = append(parts, fmt.Sprintf("Personality fit: %s", strings.Join(matchedTraits, ", ")))
	}

	return strings.Join(parts, ". ")
}
