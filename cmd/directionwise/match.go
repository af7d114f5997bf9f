package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/ranking"
	"github.com/jonathan/directionwise/internal/types"
)

func newMatchCmd(a *app) *cobra.Command {
	var skills, traits []string
	cmd := &cobra.Command{
		Use:     "match",
		Short:   "Rank career fields against skill and trait tags",
		Example: `  directionwise match --skills programming,"data analysis" --traits analytical`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := a.knowledgeBase()
			if err != nil {
				return err
			}
			profile := types.UserProfile{Skills: skills, PersonalityTraits: traits}
			ins := ranking.Insights(profile, base)
			result := quizResult{Profile: profile, Insights: ins, MatchLabel: ranking.MatchLabel(ins.TopScore)}

			if p := a.printer(cmd); p != nil {
				p.PrintInsights(result.Insights, result.MatchLabel)
				return nil
			}
			return writeJSONOut(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVarP(&skills, "skills", "s", nil, "Comma-separated skill tags")
	cmd.Flags().StringSliceVarP(&traits, "traits", "t", nil, "Comma-separated personality traits")
	return cmd
}
