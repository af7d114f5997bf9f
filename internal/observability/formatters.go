// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/directionwise/internal/insights"
	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/resume"
	"github.com/jonathan/directionwise/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads by rune count so bullets and accents keep the box square.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintProfile outputs the skill and trait tags derived from quiz answers.
func (p *Printer) PrintProfile(profile types.UserProfile) {
	if profile.IsEmpty() {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills: %d   Traits: %d\n\n", len(profile.Skills), len(profile.PersonalityTraits))
	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)
	writeList(&sb, "Personality", profile.PersonalityTraits, 3)
	p.printBox("USER PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs the top field, its match label and the field ranking.
func (p *Printer) PrintInsights(ins types.Insights, label string) {
	if ins.TopField == "" {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Top field:  %s\n", knowledge.DisplayName(ins.TopField))
	fmt.Fprintf(&sb, "Score:      %.2f (%s)\n\n", ins.TopScore, label)

	for i, m := range ins.Rankings[:min(len(ins.Rankings), maxItemsToShow)] {
		fmt.Fprintf(&sb, "#%d  %-20s %.3f  skills %d  traits %d\n",
			i+1, knowledge.DisplayName(m.FieldID), m.Score, m.SkillMatchCount, m.PersonalityMatchCount)
	}
	if len(ins.Rankings) > 0 {
		sb.WriteString("\n")
	}

	names := make([]string, 0, len(ins.RecommendedCareers))
	for _, c := range ins.RecommendedCareers {
		names = append(names, c.Name)
	}
	writeList(&sb, "Careers", names, maxItemsToShow)
	writeList(&sb, "Skill gaps", ins.SkillGaps, maxItemsToShow)
	p.printBox("CAREER MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs quiz-driven career suggestions.
func (p *Printer) PrintRecommendations(recs []types.CareerRecommendation) {
	if len(recs) == 0 {
		return
	}
	var sb strings.Builder
	for i, r := range recs {
		fmt.Fprintf(&sb, "%s (%s)\n", r.Name, knowledge.DisplayName(r.Field))
		fmt.Fprintf(&sb, "    Score: %.2f  Demand: %s\n", r.Score, r.DemandLevel)
		if r.SalaryRange != "" {
			fmt.Fprintf(&sb, "    Salary: %s\n", r.SalaryRange)
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("RECOMMENDED CAREERS", sb.String())
}

// PrintSearchResults outputs free-text search hits.
func (p *Printer) PrintSearchResults(query string, hits []types.CareerMatch) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %q\n\n", query)
	if len(hits) == 0 {
		sb.WriteString("No matching careers")
	}
	for i, h := range hits {
		fmt.Fprintf(&sb, "#%d  %s  %.3f\n", i+1, h.Name, h.Similarity)
		if h.Description != "" {
			fmt.Fprintf(&sb, "    %s\n", h.Description)
		}
	}
	p.printBox("CAREER SEARCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMarketReport outputs the headline numbers of a market snapshot.
func (p *Printer) PrintMarketReport(report *insights.Report) {
	if report == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Freshness: %s   Updated: %s\n\n", report.DataFreshness, report.LastUpdated)

	fields := make([]string, 0, len(report.JobMarket))
	for f := range report.JobMarket {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		jm := report.JobMarket[f]
		fmt.Fprintf(&sb, "%-18s jobs %-7d growth %s\n", f, jm.ActiveJobs, jm.GrowthRate)
	}
	if len(report.DataSources) > 0 {
		fmt.Fprintf(&sb, "\nSources: %s", strings.Join(report.DataSources, ", "))
	}
	p.printBox("MARKET INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeAnalysis outputs what a resume analysis detected.
func (p *Printer) PrintResumeAnalysis(a *resume.Analysis) {
	if a == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Words: %d\n", a.WordCount)
	if a.TopField != "" {
		fmt.Fprintf(&sb, "Top field: %s (%.2f, %s)\n", knowledge.DisplayName(a.TopField), a.TopScore, a.MatchLabel)
	}
	sb.WriteString("\n")
	writeList(&sb, "Detected skills", a.DetectedSkills, maxItemsToShow)
	writeList(&sb, "Detected traits", a.DetectedTraits, 3)
	writeList(&sb, "Keywords", a.Keywords, maxItemsToShow)
	writeList(&sb, "Skill gaps", a.SkillGaps, maxItemsToShow)

	names := make([]string, 0, len(a.SimilarCareers))
	for _, c := range a.SimilarCareers {
		names = append(names, fmt.Sprintf("%s (%.2f)", c.Name, c.Similarity))
	}
	writeList(&sb, "Similar careers", names, maxItemsToShow)
	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
