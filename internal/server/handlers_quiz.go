package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/ranking"
	"github.com/jonathan/directionwise/internal/server/middleware"
	"github.com/jonathan/directionwise/internal/types"
)

const quizRecommendationLimit = 5

type quizSubmission struct {
	Answers []types.QuizAnswer `json:"answers" validate:"required,min=1,dive"`
}

type evaluation struct {
	Profile         types.UserProfile            `json:"profile"`
	Insights        types.Insights               `json:"insights"`
	MatchLabel      string                       `json:"match_label"`
	Recommendations []types.CareerRecommendation `json:"recommendations"`
	Complete        bool                         `json:"complete"`
	AssessmentID    *int64                       `json:"assessment_id,omitempty"`
}

func (s *Server) handleQuizQuestions(w http.ResponseWriter, _ *http.Request) {
	questions := quiz.Questions()
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions, "count": len(questions)})
}

func (s *Server) handleQuizEvaluate(w http.ResponseWriter, r *http.Request) {
	var sub quizSubmission
	if err := s.decodeJSON(r, &sub); err != nil {
		writeError(w, r, err)
		return
	}
	for _, a := range sub.Answers {
		if err := quiz.CheckAnswer(a); err != nil {
			writeError(w, r, &ErrValidation{Field: "answers", Message: err.Error()})
			return
		}
	}
	result, err := s.evaluate(r, sub.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateQuizSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.Sessions.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": id, "questions": quiz.Len()})
}

func (s *Server) handleAnswerQuizSession(w http.ResponseWriter, r *http.Request) {
	var answer types.QuizAnswer
	if err := s.decodeJSON(r, &answer); err != nil {
		writeError(w, r, err)
		return
	}
	if err := quiz.CheckAnswer(answer); err != nil {
		writeError(w, r, &ErrValidation{Field: "answer", Message: err.Error()})
		return
	}
	n, err := s.Sessions.Append(r.Context(), r.PathValue("id"), answer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answered": n, "remaining": quiz.Len() - n, "complete": n >= quiz.Len()})
}

// handleCompleteQuizSession consumes the session and evaluates whatever
// was answered.
func (s *Server) handleCompleteQuizSession(w http.ResponseWriter, r *http.Request) {
	answers, err := s.Sessions.Take(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.evaluate(r, answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var profile types.UserProfile
	if err := s.decodeJSON(r, &profile); err != nil {
		writeError(w, r, err)
		return
	}
	ins := ranking.Insights(profile, s.Knowledge)
	writeJSON(w, http.StatusOK, map[string]any{
		"insights":    ins,
		"match_label": ranking.MatchLabel(ins.TopScore),
	})
}

// evaluate scores the answers and, for signed-in users, stores the
// assessment and announces it.
func (s *Server) evaluate(r *http.Request, answers []types.QuizAnswer) (*evaluation, error) {
	answers = quiz.WithQuestionText(answers)
	profile := quiz.ProcessAnswers(answers)
	ins := ranking.Insights(profile, s.Knowledge)
	result := &evaluation{
		Profile:         profile,
		Insights:        ins,
		MatchLabel:      ranking.MatchLabel(ins.TopScore),
		Recommendations: ranking.RecommendFromQuiz(profile, s.Knowledge, quizRecommendationLimit),
		Complete:        quiz.Complete(answers),
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		return result, nil
	}
	id, err := s.saveAssessment(r.Context(), userID, answers, result)
	if err != nil {
		return nil, err
	}
	result.AssessmentID = &id
	return result, nil
}

func (s *Server) saveAssessment(ctx context.Context, userID int64, answers []types.QuizAnswer, result *evaluation) (int64, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return 0, fmt.Errorf("failed to encode answers: %w", err)
	}
	resultsJSON, err := json.Marshal(result.Insights)
	if err != nil {
		return 0, fmt.Errorf("failed to encode results: %w", err)
	}
	id, err := s.Store.SaveAssessment(ctx, &types.Assessment{
		UserID:         userID,
		AssessmentType: types.AssessmentQuiz,
		Answers:        answersJSON,
		Results:        resultsJSON,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save assessment: %w", err)
	}
	slog.Info("assessment saved", slog.Int64("user_id", userID), slog.Int64("assessment_id", id))
	publish(ctx, s.Events, events.New(events.TypeAssessmentCompleted, userID, map[string]any{
		"assessment_id": id,
		"top_field":     result.Insights.TopField,
		"top_score":     result.Insights.TopScore,
		"complete":      result.Complete,
	}))
	return id, nil
}
