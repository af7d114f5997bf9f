package quiz

import (
	"fmt"
	"sort"

	"github.com/jonathan/directionwise/internal/types"
)

// ProcessAnswers derives the skill and personality tag sets from a sequence
// of answers. Unknown categories and options contribute nothing. The result
// is independent of answer order.
func ProcessAnswers(answers []types.QuizAnswer) types.UserProfile {
	skills := make(map[string]struct{})
	traits := make(map[string]struct{})

	for _, a := range answers {
		tags, ok := answerTags[a.Category][a.SelectedOption]
		if !ok {
			continue
		}
		dst := skills
		if categoryKinds[a.Category] == personalityTags {
			dst = traits
		}
		for _, tag := range tags {
			dst[tag] = struct{}{}
		}
	}

	return types.UserProfile{
		Skills:            sortedKeys(skills),
		PersonalityTraits: sortedKeys(traits),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CheckAnswer reports whether an answer names a known category and one of
// its options. Processing never requires this; it is used to reject bad
// input at the edges.
func CheckAnswer(a types.QuizAnswer) error {
	options, ok := answerTags[a.Category]
	if !ok {
		return fmt.Errorf("unknown quiz category %q", a.Category)
	}
	if _, ok := options[a.SelectedOption]; !ok {
		return fmt.Errorf("unknown option %q for category %s", a.SelectedOption, a.Category)
	}
	return nil
}

// Complete reports whether every question has been answered.
func Complete(answers []types.QuizAnswer) bool {
	seen := make(map[string]bool, len(questions))
	for _, a := range answers {
		if CheckAnswer(a) == nil {
			seen[a.Category] = true
		}
	}
	return len(seen) == len(questions)
}

// WithQuestionText fills in the question text for answers that omit it.
func WithQuestionText(answers []types.QuizAnswer) []types.QuizAnswer {
	out := make([]types.QuizAnswer, len(answers))
	for i, a := range answers {
		if a.QuestionText == "" {
			if q, ok := Question(a.Category); ok {
				a.QuestionText = q.Text
			}
		}
		out[i] = a
	}
	return out
}
