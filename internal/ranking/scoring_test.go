package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/types"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Problem-Solving", "problem solving"},
		{"  decision_making ", "decision making"},
		{"machine   learning", "machine learning"},
		{"node.js", "node.js"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTag(tt.in), tt.in)
	}
}

func TestScoreField_TechnologyPositiveForQuizSkills(t *testing.T) {
	base := knowledge.MustLoad()
	profile := quiz.ProcessAnswers([]types.QuizAnswer{
		{Category: quiz.CategoryWorkStyle, SelectedOption: "Leadership role"},
		{Category: quiz.CategoryInterests, SelectedOption: "Solving complex problems"},
	})

	tech, ok := base.Field("technology")
	require.True(t, ok)
	score := ScoreField(profile, tech)

	assert.Greater(t, score.Score, 0.0)
	assert.Equal(t, 1, score.SkillMatchCount)
	assert.Equal(t, []string{"problem solving"}, score.MatchedSkills)
	assert.InDelta(t, 0.7/float64(len(tech.Skills)), score.Score, 1e-9)
}

func TestScoreField_Formula(t *testing.T) {
	field := &types.KnowledgeField{
		ID:                "toy",
		Skills:            []string{"a", "b", "c", "d"},
		PersonalityTraits: []string{"x", "y"},
	}
	score := ScoreField(types.UserProfile{
		Skills:            []string{"a", "b", "z"},
		PersonalityTraits: []string{"y"},
	}, field)

	assert.Equal(t, 2, score.SkillMatchCount)
	assert.Equal(t, 1, score.PersonalityMatchCount)
	assert.InDelta(t, (0.7*2+0.3*1)/4, score.Score, 1e-9)
}

func TestScoreField_CappedAtOne(t *testing.T) {
	field := &types.KnowledgeField{
		ID:                "tiny",
		Skills:            []string{"a"},
		PersonalityTraits: []string{"x", "y", "z"},
	}
	score := ScoreField(types.UserProfile{
		Skills:            []string{"a"},
		PersonalityTraits: []string{"x", "y", "z"},
	}, field)
	assert.Equal(t, 1.0, score.Score)
}

func TestScoreField_NoSkillsDeclared(t *testing.T) {
	field := &types.KnowledgeField{ID: "empty", PersonalityTraits: []string{"calm"}}
	score := ScoreField(types.UserProfile{PersonalityTraits: []string{"calm"}}, field)
	assert.InDelta(t, 0.3, score.Score, 1e-9)
}

func TestScoreField_DuplicateUserTagsCountOnce(t *testing.T) {
	field := &types.KnowledgeField{ID: "f", Skills: []string{"decision-making", "other"}}
	score := ScoreField(types.UserProfile{
		Skills: []string{"decision making", "Decision-Making", "decision_making"},
	}, field)
	assert.Equal(t, 1, score.SkillMatchCount)
	assert.InDelta(t, 0.35, score.Score, 1e-9)
}

func TestScoreField_Bounds(t *testing.T) {
	base := knowledge.MustLoad()
	var answers []types.QuizAnswer
	for _, q := range quiz.Questions() {
		for _, opt := range q.Options {
			answers = append(answers, types.QuizAnswer{Category: q.Category, SelectedOption: opt})
		}
	}
	profile := quiz.ProcessAnswers(answers)
	for _, f := range base.Fields() {
		f := f
		s := ScoreField(profile, &f)
		assert.GreaterOrEqual(t, s.Score, 0.0, f.ID)
		assert.LessOrEqual(t, s.Score, 1.0, f.ID)
	}
}

func TestScoreField_Monotonic(t *testing.T) {
	base := knowledge.MustLoad()
	for _, f := range base.Fields() {
		f := f
		prev := 0.0
		var skills []string
		for _, s := range f.Skills {
			skills = append(skills, s)
			cur := ScoreField(types.UserProfile{Skills: skills}, &f).Score
			assert.GreaterOrEqual(t, cur, prev, "%s skills", f.ID)
			prev = cur
		}
		var traits []string
		for _, p := range f.PersonalityTraits {
			traits = append(traits, p)
			cur := ScoreField(types.UserProfile{Skills: skills, PersonalityTraits: traits}, &f).Score
			assert.GreaterOrEqual(t, cur, prev, "%s traits", f.ID)
			prev = cur
		}
	}
}

func TestMatchLabel(t *testing.T) {
	assert.Equal(t, "Strong match", MatchLabel(0.5))
	assert.Equal(t, "Moderate match", MatchLabel(0.1))
	assert.Equal(t, "Weak match", MatchLabel(0.01))
	assert.Equal(t, "No match", MatchLabel(0))
}
