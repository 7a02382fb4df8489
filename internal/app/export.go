package app

import (
	"context"
	"fmt"

	"github.com/guttosm/pricemachine/internal/logger"
	"github.com/guttosm/pricemachine/internal/metrics"
	"github.com/guttosm/pricemachine/internal/report"
	"github.com/guttosm/pricemachine/internal/service"
	"github.com/guttosm/pricemachine/internal/storage"
)

// Exporter writes the full report to every configured destination: always the
// HTML file, plus the PostgreSQL table when a repository is set.
type Exporter struct {
	svc  service.PriceService
	repo storage.ReportRepository
}

// NewExporter builds an Exporter; repo may be nil.
func NewExporter(svc service.PriceService, repo storage.ReportRepository) *Exporter {
	return &Exporter{svc: svc, repo: repo}
}

// Export writes the HTML report to path and then replaces the PostgreSQL copy.
// The HTML file is kept even if the database step fails.
func (e *Exporter) Export(ctx context.Context, path string) error {
	records := e.svc.All(ctx)

	if err := report.ExportHTML(path, records); err != nil {
		return err
	}
	if e.repo == nil {
		return nil
	}

	err := e.repo.ReplacePrices(ctx, records)
	metrics.RecordExport("postgres", err)
	if err != nil {
		return fmt.Errorf("postgres export: %w", err)
	}
	logger.L().Info().Int("rows", len(records)).Msg("report mirrored to postgres")
	return nil
}

// Func adapts Export to the console driver's exporter signature.
func (e *Exporter) Func(ctx context.Context) func(path string) error {
	return func(path string) error { return e.Export(ctx, path) }
}
