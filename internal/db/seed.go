package db

import (
	"time"

	"github.com/jonathan/directionwise/internal/types"
)

// starterCareers is the catalog written into an empty careers table.
var starterCareers = []types.Career{
	{Name: "Data Scientist", Field: "Technology", Description: "Analyze data to help organizations make decisions", AvgSalary: 95000, GrowthRate: 15.0},
	{Name: "UX Designer", Field: "Design", Description: "Create user-friendly digital experiences", AvgSalary: 85000, GrowthRate: 12.0},
	{Name: "Product Manager", Field: "Business", Description: "Lead product development and strategy", AvgSalary: 110000, GrowthRate: 18.0},
	{Name: "Cybersecurity Analyst", Field: "Technology", Description: "Protect systems from digital threats", AvgSalary: 90000, GrowthRate: 20.0},
	{Name: "Marketing Specialist", Field: "Marketing", Description: "Develop and execute marketing campaigns", AvgSalary: 65000, GrowthRate: 10.0},
	{Name: "Software Engineer", Field: "Technology", Description: "Develop software applications and systems", AvgSalary: 100000, GrowthRate: 22.0},
	{Name: "Data Analyst", Field: "Technology", Description: "Collect and analyze data to support business decisions", AvgSalary: 75000, GrowthRate: 14.0},
	{Name: "Project Manager", Field: "Business", Description: "Plan and execute projects to achieve goals", AvgSalary: 90000, GrowthRate: 16.0},
	{Name: "Graphic Designer", Field: "Design", Description: "Create visual content for various media", AvgSalary: 60000, GrowthRate: 8.0},
	{Name: "Financial Analyst", Field: "Finance", Description: "Analyze financial data and provide insights", AvgSalary: 80000, GrowthRate: 12.0},
}

var starterSkills = []types.Skill{
	{Name: "Python", Category: "Programming"},
	{Name: "JavaScript", Category: "Programming"},
	{Name: "Data Analysis", Category: "Analytics"},
	{Name: "Machine Learning", Category: "AI/ML"},
	{Name: "UI/UX Design", Category: "Design"},
	{Name: "Project Management", Category: "Management"},
	{Name: "Communication", Category: "Soft Skills"},
	{Name: "Problem Solving", Category: "Soft Skills"},
	{Name: "SQL", Category: "Database"},
	{Name: "Marketing Strategy", Category: "Marketing"},
}

type skillLink struct {
	skill      string
	importance float64
}

// starterLinks maps career name to its skills.
var starterLinks = map[string][]skillLink{
	"Data Scientist":        {{"Python", 0.9}, {"Machine Learning", 0.9}, {"Data Analysis", 0.8}, {"SQL", 0.6}},
	"UX Designer":           {{"UI/UX Design", 0.9}, {"Communication", 0.7}, {"Problem Solving", 0.6}},
	"Product Manager":       {{"Project Management", 0.8}, {"Communication", 0.9}, {"Marketing Strategy", 0.5}},
	"Cybersecurity Analyst": {{"Python", 0.6}, {"Problem Solving", 0.9}, {"SQL", 0.5}},
	"Marketing Specialist":  {{"Marketing Strategy", 0.9}, {"Communication", 0.8}, {"Data Analysis", 0.5}},
	"Software Engineer":     {{"Python", 0.8}, {"JavaScript", 0.8}, {"Problem Solving", 0.9}, {"SQL", 0.6}},
	"Data Analyst":          {{"SQL", 0.9}, {"Data Analysis", 0.9}, {"Python", 0.6}},
	"Project Manager":       {{"Project Management", 0.9}, {"Communication", 0.9}, {"Problem Solving", 0.6}},
	"Graphic Designer":      {{"UI/UX Design", 0.7}, {"Communication", 0.5}},
	"Financial Analyst":     {{"Data Analysis", 0.9}, {"SQL", 0.5}, {"Communication", 0.6}},
}

const trendMonths = 12

// trendSeries builds monthly demand and salary indices for the twelve
// months ending with the month of now. Demand grows with the career's
// annual growth rate; salary tracks its average salary in thousands.
func trendSeries(c types.Career, now time.Time) []types.TrendPoint {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)
	points := make([]types.TrendPoint, trendMonths)
	for i := range points {
		progress := float64(i) / float64(trendMonths-1)
		points[i] = types.TrendPoint{
			Date:        start.AddDate(0, i, 0),
			DemandIndex: 100 * (1 + c.GrowthRate/100*progress),
			SalaryIndex: c.AvgSalary / 1000 * (1 + 0.03*progress),
		}
	}
	return points
}
