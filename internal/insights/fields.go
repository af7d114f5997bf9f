package insights

import (
	"github.com/jonathan/directionwise/internal/knowledge"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FieldComparisons returns the headline demand, growth and salary numbers
// of every field in knowledge-base order.
func FieldComparisons(base *knowledge.Base) []FieldComparison {
	fields := base.Fields()
	out := make([]FieldComparison, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldComparison{
			Field:         f.ID,
			DisplayName:   knowledge.DisplayName(f.ID),
			DemandScore:   f.Comparison.DemandScore,
			GrowthPercent: f.Comparison.GrowthPercent,
			AvgSalaryK:    f.Comparison.AvgSalaryK,
		})
	}
	return out
}

// FieldTrends returns the monthly demand series of each field. With ids
// given only those fields are returned, in the order asked; unknown ids
// are skipped.
func FieldTrends(base *knowledge.Base, ids ...string) []FieldTrend {
	if len(ids) == 0 {
		ids = base.FieldIDs()
	}
	out := make([]FieldTrend, 0, len(ids))
	for _, id := range ids {
		f, ok := base.Field(id)
		if !ok || len(f.MarketTrends) == 0 {
			continue
		}
		months := monthLabels
		if len(f.MarketTrends) < len(months) {
			months = months[:len(f.MarketTrends)]
		}
		out = append(out, FieldTrend{
			Field:       f.ID,
			DisplayName: knowledge.DisplayName(f.ID),
			Months:      append([]string(nil), months...),
			Values:      append([]float64(nil), f.MarketTrends...),
		})
	}
	return out
}
