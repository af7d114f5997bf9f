package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/resume"
	"github.com/jonathan/directionwise/internal/similarity"
)

func newAnalyzeResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-resume <file>",
		Short: "Match a PDF, DOCX or text resume to career fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			base, err := a.knowledgeBase()
			if err != nil {
				return err
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			analyzer := resume.NewAnalyzer(base, similarity.NewEngine(store))
			analysis, err := analyzer.AnalyzeDocument(cmd.Context(), resume.DetectMIME(filepath.Base(args[0]), data), data)
			if err != nil {
				return err
			}
			if p := a.printer(cmd); p != nil {
				p.PrintResumeAnalysis(analysis)
				return nil
			}
			return writeJSONOut(cmd.OutOrStdout(), analysis)
		},
	}
}
