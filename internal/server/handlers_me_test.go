package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/types"
)

func TestSavedCareers(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "saver@example.com")

	w := env.do(t, http.MethodGet, "/me/saved-careers", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[struct {
		SavedCareers []types.Interaction `json:"saved_careers"`
	}](t, w).SavedCareers)

	w = env.do(t, http.MethodPost, "/me/saved-careers", saveCareerRequest{Career: " Data Scientist ", Notes: "look into MSc"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[types.Interaction](t, w)
	assert.Positive(t, saved.ID)
	assert.Equal(t, userID, saved.UserID)
	assert.Equal(t, "Data Scientist", saved.Content)
	assert.Equal(t, types.InteractionSaveCareer, saved.InteractionType)
	assert.Contains(t, string(saved.Data), "look into MSc")

	w = env.do(t, http.MethodGet, "/me/saved-careers", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		SavedCareers []types.Interaction `json:"saved_careers"`
	}](t, w).SavedCareers
	require.Len(t, list, 1)
	assert.Equal(t, "Data Scientist", list[0].Content)

	var savedEvents int
	for _, e := range env.events.Events() {
		if e.Type == events.TypeCareerSaved {
			savedEvents++
			assert.Equal(t, userID, e.UserID)
		}
	}
	assert.Equal(t, 1, savedEvents)
}

func TestSaveCareer_Rejects(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "saver@example.com")

	w := env.do(t, http.MethodPost, "/me/saved-careers", saveCareerRequest{Career: "Astronaut"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/me/saved-careers", saveCareerRequest{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/me/saved-careers", saveCareerRequest{Career: "Data Scientist"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssessmentsAreScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := env.register(t, "alice@example.com")
	bob, _ := env.register(t, "bob@example.com")

	w := env.do(t, http.MethodPost, "/quiz/evaluate", quizSubmission{Answers: allAnswers()}, alice)
	require.Equal(t, http.StatusOK, w.Code)

	type assessments struct {
		Assessments []types.Assessment `json:"assessments"`
	}
	w = env.do(t, http.MethodGet, "/me/assessments", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[assessments](t, w).Assessments
	require.Len(t, list, 1)
	assert.Equal(t, types.AssessmentQuiz, list[0].AssessmentType)
	assert.Contains(t, string(list[0].Results), "top_field")

	w = env.do(t, http.MethodGet, "/me/assessments", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[assessments](t, w).Assessments)
}
