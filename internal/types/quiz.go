//nolint:revive // types is a standard Go package name pattern
package types

// Question is one of the fixed quiz questions.
type Question struct {
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

// QuizAnswer records the option chosen for a question.
type QuizAnswer struct {
	QuestionText   string `json:"question_text,omitempty"`
	SelectedOption string `json:"selected_option"`
	Category       string `json:"category"`
}

// UserProfile is the tag vocabulary derived from a user's answers.
// Both slices are sorted and free of duplicates.
type UserProfile struct {
	Skills            []string `json:"skills"`
	PersonalityTraits []string `json:"personality_traits"`
}

// IsEmpty reports whether the profile carries no tags at all.
func (p UserProfile) IsEmpty() bool {
	return len(p.Skills) == 0 && len(p.PersonalityTraits) == 0
}
