// Package comparison puts two catalog careers side by side using the
// knowledge field each one belongs to.
package comparison

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/types"
)

var (
	// ErrSameCareer is returned when both sides name the same career.
	ErrSameCareer = errors.New("select two different careers to compare")
	// ErrCareerNotFound is returned when a career is missing from the catalog.
	ErrCareerNotFound = errors.New("career not found")
)

// Aspect rows in display order.
const (
	AspectName                 = "Name"
	AspectField                = "Field"
	AspectDescription          = "Description"
	AspectSalaryRange          = "Salary Range"
	AspectExperienceLevel      = "Experience Level"
	AspectDemandLevel          = "Demand Level"
	AspectWorkEnvironment      = "Work Environment"
	AspectGrowthRate           = "Growth Rate"
	AspectTopSkills            = "Top Skills Required"
	AspectPersonalityTraits    = "Personality Traits"
	AspectEmergingTechnologies = "Emerging Technologies"
)

// Fallbacks for missing field data.
const (
	defaultSalary     = "PKR 50,000 - 200,000+"
	defaultExperience = "0-2 years entry, 2-5 years mid, 5+ years senior"
	defaultDemand     = "Medium-High"
	defaultWorkEnv    = "Office/Remote, Collaborative"
	defaultGrowth     = "12% annually"
	defaultSkills     = "Problem Solving, Communication, Teamwork"
	defaultTraits     = "Adaptable, Collaborative, Detail-oriented"
	defaultEmerging   = "AI/ML, Digital Transformation, Automation"
	descriptionLimit  = 140
	topSkillLimit     = 8
	traitLimit        = 8
	emergingLimit     = 6
	skillListLimit    = 10
	sparklineWindow   = 3
	minGrowthBase     = 1e-6
)

// AspectRow is one line of the comparison table.
type AspectRow struct {
	Aspect string    `json:"aspect"`
	Values [2]string `json:"values"`
}

// Metrics quantify how much two careers' skill sets overlap, in percent.
type Metrics struct {
	Jaccard        float64 `json:"jaccard"`
	CoverageFirst  float64 `json:"coverage_first"`
	CoverageSecond float64 `json:"coverage_second"`
}

// Sparkline is a smoothed demand series with its overall growth.
type Sparkline struct {
	Career        string    `json:"career"`
	Smoothed      []float64 `json:"smoothed"`
	GrowthPercent float64   `json:"growth_percent"`
}

// Result is a complete side-by-side comparison.
type Result struct {
	Careers      [2]string    `json:"careers"`
	Fields       [2]string    `json:"fields"`
	Aspects      []AspectRow  `json:"aspects"`
	CommonSkills []string     `json:"common_skills"`
	UniqueSkills [2][]string  `json:"unique_skills"`
	Metrics      Metrics      `json:"metrics"`
	Trends       [2]Sparkline `json:"trends"`
}

// CareerLookup finds catalog careers by name.
type CareerLookup interface {
	GetCareerByName(ctx context.Context, name string) (*types.Career, error)
}

// Compare loads both careers and builds their comparison.
func Compare(ctx context.Context, lookup CareerLookup, base *knowledge.Base, first, second string) (*Result, error) {
	if strings.EqualFold(strings.TrimSpace(first), strings.TrimSpace(second)) {
		return nil, ErrSameCareer
	}
	var careers [2]types.Career
	for i, name := range []string{first, second} {
		c, err := lookup.GetCareerByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load career %q: %w", name, err)
		}
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrCareerNotFound, name)
		}
		careers[i] = *c
	}
	return Build(base, careers[0], careers[1])
}

// Build compares two already loaded careers.
func Build(base *knowledge.Base, first, second types.Career) (*Result, error) {
	if first.Name == second.Name {
		return nil, ErrSameCareer
	}

	f1 := base.ResolveCareerField(first.Name, first.Field)
	f2 := base.ResolveCareerField(second.Name, second.Field)

	v1 := rowValues(base, first, f1)
	v2 := rowValues(base, second, f2)
	aspects := make([]AspectRow, len(aspectOrder))
	for i, a := range aspectOrder {
		aspects[i] = AspectRow{Aspect: a, Values: [2]string{v1[i], v2[i]}}
	}

	s1 := lowerSet(f1.Skills)
	s2 := lowerSet(f2.Skills)
	common, only1, only2, union := splitSets(s1, s2)

	return &Result{
		Careers:      [2]string{first.Name, second.Name},
		Fields:       [2]string{f1.ID, f2.ID},
		Aspects:      aspects,
		CommonSkills: capList(common, skillListLimit),
		UniqueSkills: [2][]string{capList(only1, skillListLimit), capList(only2, skillListLimit)},
		Metrics: Metrics{
			Jaccard:        percent(len(common), len(union)),
			CoverageFirst:  percent(len(common), len(s1)),
			CoverageSecond: percent(len(common), len(s2)),
		},
		Trends: [2]Sparkline{
			sparkline(first.Name, f1.MarketTrends),
			sparkline(second.Name, f2.MarketTrends),
		},
	}, nil
}

var aspectOrder = []string{
	AspectName, AspectField, AspectDescription, AspectSalaryRange, AspectExperienceLevel,
	AspectDemandLevel, AspectWorkEnvironment, AspectGrowthRate, AspectTopSkills,
	AspectPersonalityTraits, AspectEmergingTechnologies,
}

func rowValues(base *knowledge.Base, c types.Career, f *types.KnowledgeField) []string {
	record, _, hasRecord := base.FindCareer(c.Name)

	experience := defaultExperience
	if hasRecord && record.ExperienceBand != "" {
		experience = record.ExperienceBand
	}

	var careerSkills []string
	if hasRecord {
		careerSkills = record.RequiredSkills
	}

	return []string{
		orDefault(c.Name, "N/A"),
		orDefault(c.Field, "N/A"),
		truncateDescription(c.Description),
		orDefault(f.SalaryRange, defaultSalary),
		experience,
		orDefault(string(f.DemandLevel), defaultDemand),
		orDefault(f.WorkEnvironment, defaultWorkEnv),
		orDefault(f.GrowthRate, defaultGrowth),
		joinOr(mergeSkills(careerSkills, f.Skills), topSkillLimit, defaultSkills),
		joinOr(f.PersonalityTraits, traitLimit, defaultTraits),
		joinOr(f.EmergingTechnologies, emergingLimit, defaultEmerging),
	}
}

func truncateDescription(desc string) string {
	if desc == "" {
		return "No description"
	}
	if len(desc) > descriptionLimit {
		return desc[:descriptionLimit] + "..."
	}
	return desc
}

// mergeSkills lists career skills before field skills, dropping
// case-insensitive duplicates.
func mergeSkills(careerSkills, fieldSkills []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(careerSkills)+len(fieldSkills))
	for _, list := range [][]string{careerSkills, fieldSkills} {
		for _, s := range list {
			k := strings.ToLower(s)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, s)
		}
	}
	return out
}

func joinOr(items []string, limit int, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(capList(items, limit), ", ")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func capList(items []string, limit int) []string {
	if len(items) > limit {
		items = items[:limit]
	}
	return append([]string{}, items...)
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = true
	}
	return set
}

// splitSets returns sorted intersection, differences and union.
func splitSets(a, b map[string]bool) (common, onlyA, onlyB, union []string) {
	for k := range a {
		union = append(union, k)
		if b[k] {
			common = append(common, k)
		} else {
			onlyA = append(onlyA, k)
		}
	}
	for k := range b {
		if !a[k] {
			onlyB = append(onlyB, k)
			union = append(union, k)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	sort.Strings(union)
	return common, onlyA, onlyB, union
}

func percent(part, whole int) float64 {
	if whole < 1 {
		whole = 1
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// sparkline smooths a series with a trailing mean over up to three points
// and reports the change from the first to the last raw value.
func sparkline(career string, series []float64) Sparkline {
	out := Sparkline{Career: career, Smoothed: make([]float64, len(series))}
	if len(series) == 0 {
		return out
	}
	for i := range series {
		lo := i - sparklineWindow + 1
		if lo < 0 {
			lo = 0
		}
		var sum float64
		for _, v := range series[lo : i+1] {
			sum += v
		}
		out.Smoothed[i] = sum / float64(i+1-lo)
	}
	start, end := series[0], series[len(series)-1]
	out.GrowthPercent = round1((end - start) / math.Max(start, minGrowthBase) * 100)
	return out
}
