// Package quiz holds the career assessment questionnaire and turns answers
// into skill and personality tags.
package quiz

import "github.com/jonathan/directionwise/internal/types"

// Categories in the order the questions are asked.
const (
	CategoryWorkStyle          = "work_style"
	CategoryInterests          = "interests"
	CategoryLearningStyle      = "learning_style"
	CategoryStressManagement   = "stress_management"
	CategoryMotivation         = "motivation"
	CategoryProblemSolving     = "problem_solving"
	CategoryCommunicationStyle = "communication_style"
	CategoryChallengeApproach  = "challenge_approach"
	CategoryTeamRole           = "team_role"
	CategorySuccessMeasure     = "success_measure"
	CategoryWorkSchedule       = "work_schedule"
	CategoryLearningApproach   = "learning_approach"
)

var questions = []types.Question{
	{
		Text:     "What type of work environment do you prefer?",
		Options:  []string{"Team collaboration", "Independent work", "Leadership role", "Creative freedom"},
		Category: CategoryWorkStyle,
	},
	{
		Text:     "Which of these activities interests you most?",
		Options:  []string{"Solving complex problems", "Helping others", "Creating new things", "Analyzing data"},
		Category: CategoryInterests,
	},
	{
		Text:     "What's your preferred learning method?",
		Options:  []string{"Hands-on experience", "Reading and research", "Visual learning", "Group discussions"},
		Category: CategoryLearningStyle,
	},
	{
		Text:     "How do you handle stress and deadlines?",
		Options:  []string{"Plan ahead and organize", "Work under pressure", "Adapt and adjust", "Seek support"},
		Category: CategoryStressManagement,
	},
	{
		Text:     "What motivates you most in a job?",
		Options:  []string{"Financial rewards", "Making a difference", "Personal growth", "Recognition"},
		Category: CategoryMotivation,
	},
	{
		Text:     "What type of problems do you enjoy solving?",
		Options:  []string{"Technical/Mathematical", "Human/Emotional", "Creative/Artistic", "Strategic/Business"},
		Category: CategoryProblemSolving,
	},
	{
		Text:     "How do you prefer to communicate?",
		Options:  []string{"Written communication", "Verbal presentations", "Visual demonstrations", "One-on-one discussions"},
		Category: CategoryCommunicationStyle,
	},
	{
		Text:     "What's your approach to new challenges?",
		Options:  []string{"Research and plan thoroughly", "Jump in and learn by doing", "Seek expert advice", "Collaborate with others"},
		Category: CategoryChallengeApproach,
	},
	{
		Text:     "What role do you typically take in group projects?",
		Options:  []string{"Leader/Coordinator", "Creative contributor", "Technical specialist", "Support/Helper"},
		Category: CategoryTeamRole,
	},
	{
		Text:     "How do you measure success?",
		Options:  []string{"Achieving goals and targets", "Helping others succeed", "Learning new skills", "Recognition from peers"},
		Category: CategorySuccessMeasure,
	},
	{
		Text:     "What type of work schedule do you prefer?",
		Options:  []string{"Regular 9-5 schedule", "Flexible hours", "Project-based deadlines", "Shift work"},
		Category: CategoryWorkSchedule,
	},
	{
		Text:     "How do you stay updated in your field?",
		Options:  []string{"Reading industry publications", "Attending conferences", "Online courses", "Networking with professionals"},
		Category: CategoryLearningApproach,
	},
}

// Questions returns a copy of the fixed questionnaire in asking order.
func Questions() []types.Question {
	out := make([]types.Question, len(questions))
	for i, q := range questions {
		out[i] = types.Question{
			Text:     q.Text,
			Options:  append([]string(nil), q.Options...),
			Category: q.Category,
		}
	}
	return out
}

// Question returns the question for a category.
func Question(category string) (types.Question, bool) {
	for _, q := range questions {
		if q.Category == category {
			return q, true
		}
	}
	return types.Question{}, false
}

// Len is the number of questions in a complete quiz.
func Len() int {
	return len(questions)
}
