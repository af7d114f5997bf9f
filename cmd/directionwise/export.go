package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/export"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/ranking"
	"github.com/jonathan/directionwise/internal/types"
)

type exportOptions struct {
	format      string
	out         string
	title       string
	answersPath string
	skills      []string
	traits      []string
	careers     []string
	field       string
}

func newExportCmd(a *app) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write career recommendations as CSV, PDF or DOCX",
		Long:  "Exports up to five careers: those named with --careers, or the top field's careers for quiz answers (--answers) or tags (--skills, --traits).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExport(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "Output format: csv, pdf or docx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default career_recommendations.<format>)")
	cmd.Flags().StringVar(&opts.title, "title", export.DefaultTitle, "Document title for pdf and docx")
	cmd.Flags().StringVarP(&opts.answersPath, "answers", "a", "", `Quiz answers JSON file ("-" for stdin)`)
	cmd.Flags().StringSliceVarP(&opts.skills, "skills", "s", nil, "Comma-separated skill tags")
	cmd.Flags().StringSliceVarP(&opts.traits, "traits", "t", nil, "Comma-separated personality traits")
	cmd.Flags().StringSliceVar(&opts.careers, "careers", nil, "Comma-separated career names to export as-is")
	cmd.Flags().StringVar(&opts.field, "field", "", "Knowledge field to describe --careers from")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, opts *exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	base, err := a.knowledgeBase()
	if err != nil {
		return err
	}

	var rows []export.Row
	switch {
	case len(opts.careers) > 0:
		var field *types.KnowledgeField
		if opts.field != "" {
			f, ok := base.Field(opts.field)
			if !ok {
				return fmt.Errorf("unknown field %q", opts.field)
			}
			field = f
		}
		rows = export.BuildRowsByName(opts.careers, field)
	default:
		profile := types.UserProfile{Skills: opts.skills, PersonalityTraits: opts.traits}
		if opts.answersPath != "" {
			answers, err := loadAnswers(cmd, opts.answersPath)
			if err != nil {
				return err
			}
			profile = quiz.ProcessAnswers(answers)
		}
		if profile.IsEmpty() {
			return fmt.Errorf("one of --careers, --answers, --skills or --traits is required")
		}
		rows = export.BuildRows(ranking.Insights(profile, base).RecommendedCareers)
	}

	path := opts.out
	if path == "" {
		path = "career_recommendations." + format.Extension()
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(f, format, opts.title, rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Debug("export written", slog.String("path", path), slog.Int("rows", len(rows)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d careers to %s\n", len(rows), path)
	return nil
}
