// Package ranking scores user profiles against knowledge-base career fields.
package ranking

import (
	"github.com/jonathan/directionwise/internal/types"
)

// Weights for scoring components
const (
	skillWeight       = 0.7
	personalityWeight = 0.3
)

// ScoreField computes how well a profile fits a field.
//
// The score is (0.7*skills matched + 0.3*traits matched) divided by the
// number of skills the field declares (at least 1), capped at 1.0.
func ScoreField(profile types.UserProfile, field *types.KnowledgeField) types.MatchScore {
	fieldSkills := lookupSet(field.Skills)
	fieldTraits := lookupSet(field.PersonalityTraits)

	matchedSkills := make([]string, 0)
	for _, s := range normalizeSet(profile.Skills) {
		if fieldSkills[s] {
			matchedSkills = append(matchedSkills, s)
		}
	}
	matchedTraits := make([]string, 0)
	for _, p := range normalizeSet(profile.PersonalityTraits) {
		if fieldTraits[p] {
			matchedTraits = append(matchedTraits, p)
		}
	}

	denominator := len(field.Skills)
	if denominator < 1 {
		denominator = 1
	}
	score := (skillWeight*float64(len(matchedSkills)) + personalityWeight*float64(len(matchedTraits))) / float64(denominator)
	if score > 1.0 {
		score = 1.0
	}

	return types.MatchScore{
		FieldID:               field.ID,
		Score:                 score,
		SkillMatchCount:       len(matchedSkills),
		PersonalityMatchCount: len(matchedTraits),
		MatchedSkills:         matchedSkills,
		MatchedTraits:         matchedTraits,
		Notes:                 generateNotes(score, matchedSkills, matchedTraits),
	}
}
