package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/ranking"
	"github.com/jonathan/directionwise/internal/schemas"
	"github.com/jonathan/directionwise/internal/types"
	bundled "github.com/jonathan/directionwise/schemas"
)

const quizRecommendationLimit = 5

// quizResult is the JSON output of the quiz and match commands.
type quizResult struct {
	Profile         types.UserProfile            `json:"profile"`
	Insights        types.Insights               `json:"insights"`
	MatchLabel      string                       `json:"match_label"`
	Recommendations []types.CareerRecommendation `json:"recommendations,omitempty"`
	Complete        bool                         `json:"complete"`
}

func newQuizCmd(a *app) *cobra.Command {
	var answersPath string
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the career quiz and see matching fields",
		Long:  "Asks the 12 quiz questions on stdin, or reads answers from a JSON file with --answers, then ranks the career fields against the resulting profile.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := a.knowledgeBase()
			if err != nil {
				return err
			}

			var answers []types.QuizAnswer
			if answersPath != "" {
				answers, err = loadAnswers(cmd, answersPath)
			} else {
				answers, err = askQuestions(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			result := evaluateAnswers(answers, base)
			if p := a.printer(cmd); p != nil {
				p.PrintProfile(result.Profile)
				p.PrintInsights(result.Insights, result.MatchLabel)
				p.PrintRecommendations(result.Recommendations)
				return nil
			}
			return writeJSONOut(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", `JSON answer file {"answers":[{"category","selected_option"}]} ("-" for stdin)`)
	return cmd
}

func evaluateAnswers(answers []types.QuizAnswer, base *knowledge.Base) quizResult {
	answers = quiz.WithQuestionText(answers)
	profile := quiz.ProcessAnswers(answers)
	ins := ranking.Insights(profile, base)
	return quizResult{
		Profile:         profile,
		Insights:        ins,
		MatchLabel:      ranking.MatchLabel(ins.TopScore),
		Recommendations: ranking.RecommendFromQuiz(profile, base, quizRecommendationLimit),
		Complete:        quiz.Complete(answers),
	}
}

func loadAnswers(cmd *cobra.Command, path string) ([]types.QuizAnswer, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(bundled.QuizSubmission, data); err != nil {
		return nil, err
	}
	var file struct {
		Answers []types.QuizAnswer `json:"answers"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse answers JSON: %w", err)
	}
	answers := file.Answers
	for _, ans := range answers {
		if err := quiz.CheckAnswer(ans); err != nil {
			return nil, err
		}
	}
	return answers, nil
}

// askQuestions prompts for each question on out and reads the chosen
// option number from in. A blank line skips the question.
//
//nolint:errcheck // prompts go to the terminal
func askQuestions(in io.Reader, out io.Writer) ([]types.QuizAnswer, error) {
	scanner := bufio.NewScanner(in)
	var answers []types.QuizAnswer
	for i, q := range quiz.Questions() {
		fmt.Fprintf(out, "\n%d/%d  %s\n", i+1, quiz.Len(), q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, opt)
		}
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("failed to read answer: %w", err)
				}
				return answers, nil
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Fprintf(out, "Enter a number from 1 to %d\n", len(q.Options))
				continue
			}
			answers = append(answers, types.QuizAnswer{Category: q.Category, SelectedOption: q.Options[n-1]})
			break
		}
	}
	return answers, nil
}
