package insights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	freshnessLive = "Live"
	reportFormat  = "2006-01-02 15:04:05"
)

// Aggregate fetches every dataset concurrently and combines them into a
// single report. Any failing dataset fails the whole report.
func Aggregate(ctx context.Context, p Provider) (*Report, error) {
	var report Report
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := p.JobMarket(gctx)
		if err != nil {
			return fmt.Errorf("job market: %w", err)
		}
		report.JobMarket = jobs
		return nil
	})
	g.Go(func() error {
		salaries, err := p.Salaries(gctx)
		if err != nil {
			return fmt.Errorf("salary data: %w", err)
		}
		report.SalaryData = salaries
		return nil
	})
	g.Go(func() error {
		trends, err := p.IndustryTrends(gctx)
		if err != nil {
			return fmt.Errorf("industry trends: %w", err)
		}
		report.IndustryTrends = trends
		return nil
	})
	g.Go(func() error {
		geo, err := p.Geographic(gctx)
		if err != nil {
			return fmt.Errorf("geographic data: %w", err)
		}
		report.Geographic = geo
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Warn("insights: aggregation failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to aggregate market insights: %w", err)
	}

	report.DataFreshness = freshnessLive
	report.LastUpdated = time.Now().Format(reportFormat)
	report.DataSources = p.Sources()
	return &report, nil
}
