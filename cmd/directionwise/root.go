package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/directionwise/internal/config"
	"github.com/jonathan/directionwise/internal/db"
	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/observability"
)

// app carries the state shared by every command.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "directionwise",
		Short:         "DIRECTION WISE career guidance",
		Long:          "DIRECTION WISE matches quiz answers and resumes to career fields, searches the career catalog, and serves the REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServiceConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, a.verbose)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a JSON config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print formatted summaries and debug logs")

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newQuizCmd(a),
		newMatchCmd(a),
		newSearchCmd(a),
		newInsightsCmd(a),
		newExportCmd(a),
		newAnalyzeResumeCmd(a),
	)
	return root
}

func setupLogging(w io.Writer, level string, verbose bool) error {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return err
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// openStore connects to the configured database and seeds an empty catalog.
func (a *app) openStore(ctx context.Context) (db.Store, error) {
	store, err := db.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := store.SeedIfEmpty(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return store, nil
}

// knowledgeBase loads the configured knowledge base file, or the embedded one.
func (a *app) knowledgeBase() (*knowledge.Base, error) {
	if a.cfg.KnowledgeBasePath != "" {
		return knowledge.LoadFile(a.cfg.KnowledgeBasePath)
	}
	return knowledge.Load()
}

// printer returns a box printer in verbose mode and nil otherwise.
func (a *app) printer(cmd *cobra.Command) *observability.Printer {
	if !a.verbose {
		return nil
	}
	return observability.NewPrinter(cmd.OutOrStdout())
}

func writeJSONOut(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}

// readInput reads path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
