package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/insights"
)

func newInsightsCmd(a *app) *cobra.Command {
	var compare bool
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show the market insights report",
		Long:  "Aggregates job market, salary, industry and regional data into one report. --compare prints the side-by-side field comparison instead.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if compare {
				base, err := a.knowledgeBase()
				if err != nil {
					return err
				}
				return writeJSONOut(cmd.OutOrStdout(), insights.FieldComparisons(base))
			}

			provider, err := insights.NewStaticProvider()
			if err != nil {
				return err
			}
			report, err := insights.Aggregate(cmd.Context(), provider)
			if err != nil {
				return err
			}
			if p := a.printer(cmd); p != nil {
				p.PrintMarketReport(report)
				return nil
			}
			return writeJSONOut(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&compare, "compare", false, "Print the field comparison table")
	return cmd
}
