package quiz

import (
	"context"
	"errors"

	"github.com/jonathan/directionwise/internal/types"
)

// ErrSessionNotFound is returned for unknown, expired or already completed sessions.
var ErrSessionNotFound = errors.New("quiz session not found")

// SessionStore keeps the in-progress answer sequence of each quiz taker.
// A sequence is consumed exactly once by Take.
type SessionStore interface {
	// Create opens an empty session and returns its id.
	Create(ctx context.Context) (string, error)
	// Append records an answer and returns how many categories are answered.
	// Answering a category again replaces the earlier answer in place.
	Append(ctx context.Context, id string, answer types.QuizAnswer) (int, error)
	// Take returns the answers and deletes the session.
	Take(ctx context.Context, id string) ([]types.QuizAnswer, error)
	Close() error
}

// upsertAnswer replaces an existing answer for the same category or appends.
func upsertAnswer(answers []types.QuizAnswer, a types.QuizAnswer) []types.QuizAnswer {
	for i := range answers {
		if answers[i].Category == a.Category {
			answers[i] = a
			return answers
		}
	}
	return append(answers, a)
}
