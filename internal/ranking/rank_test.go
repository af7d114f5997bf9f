package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/types"
)

func TestRankFields_EmptyProfile(t *testing.T) {
	base := knowledge.MustLoad()
	rankings := RankFields(types.UserProfile{}, base)

	require.Len(t, rankings, len(base.Fields()))
	assert.Equal(t, base.FieldIDs()[0], rankings[0].FieldID)
	for i, r := range rankings {
		assert.Equal(t, 0.0, r.Score)
		assert.Equal(t, base.FieldIDs()[i], r.FieldID, "ties keep declaration order")
		assert.Equal(t, "No skill matches", r.Notes)
	}
}

func TestRankFields_SortedDescending(t *testing.T) {
	base := knowledge.MustLoad()
	profile := quiz.ProcessAnswers([]types.QuizAnswer{
		{Category: quiz.CategoryWorkStyle, SelectedOption: "Leadership role"},
		{Category: quiz.CategoryInterests, SelectedOption: "Solving complex problems"},
	})
	rankings := RankFields(profile, base)

	for i := 1; i < len(rankings); i++ {
		assert.GreaterOrEqual(t, rankings[i-1].Score, rankings[i].Score)
	}
	assert.Equal(t, "science_research", rankings[0].FieldID)
	assert.Equal(t, "business", rankings[1].FieldID)
}

func TestInsights_EmptyProfile(t *testing.T) {
	base := knowledge.MustLoad()
	ins := Insights(types.UserProfile{}, base)

	assert.Equal(t, "technology", ins.TopField)
	assert.Equal(t, 0.0, ins.TopScore)
	require.Len(t, ins.RecommendedCareers, 5)
	assert.Equal(t, "Software Engineer", ins.RecommendedCareers[0].Name)
	assert.Equal(t, []string{"programming", "coding", "software", "computer", "digital"}, ins.SkillGaps)
	assert.NotEmpty(t, ins.GrowthOpportunities)
}

func TestSkillGaps_SkipsOwnedSkills(t *testing.T) {
	base := knowledge.MustLoad()
	tech, _ := base.Field("technology")

	gaps := SkillGaps(types.UserProfile{Skills: []string{"Programming", "software", "problem solving"}}, tech)
	assert.Equal(t, []string{"coding", "computer", "digital", "technical", "analytical"}, gaps)
}

func TestSkillGaps_OnlyFirstTenConsidered(t *testing.T) {
	tech, _ := knowledge.MustLoad().Field("technology")
	gaps := SkillGaps(types.UserProfile{Skills: tech.Skills[:8]}, tech)
	assert.Equal(t, []string{"logic", "mathematics"}, gaps)
}

func TestRecommendFromQuiz(t *testing.T) {
	base := knowledge.MustLoad()
	profile := types.UserProfile{Skills: []string{"leadership", "marketing", "sales"}}

	recs := RecommendFromQuiz(profile, base, 0)
	require.Len(t, recs, 5)
	for _, r := range recs {
		assert.Equal(t, "business", r.Field)
		assert.Equal(t, 3, r.SkillMatch)
		assert.Greater(t, r.Score, 0.0)
		assert.NotEmpty(t, r.SalaryRange)
		assert.NotEmpty(t, r.DemandLevel)
	}
	assert.Equal(t, "Business Manager", recs[0].Name)

	assert.Len(t, RecommendFromQuiz(profile, base, 2), 2)
}
