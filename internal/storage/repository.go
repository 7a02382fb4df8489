package storage

import (
	"context"
	"database/sql"
	"slices"

	"github.com/guttosm/pricemachine/internal/domain/models"
	pq "github.com/lib/pq"
)

const reportTable = "price_report"

// ReportRepository mirrors the exported report into PostgreSQL.
//
// The table is a report target only: every export replaces its content and
// nothing reads it back into the aggregate.
type ReportRepository interface {
	ReplacePrices(ctx context.Context, records []models.PriceRecord) error
	Ping(ctx context.Context) error
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Ping checks database connectivity.
func (r *reportRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ReplacePrices deletes the previous report and COPYs records, numbered in
// ascending price-per-unit order, in a single transaction.
func (r *reportRepository) ReplacePrices(ctx context.Context, records []models.PriceRecord) error {
	sorted := slices.Clone(records)
	models.SortByPricePerUnit(sorted)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+reportTable); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		reportTable,
		"row_number",
		"product",
		"price",
		"weight",
		"source_file",
		"price_per_unit",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i, rec := range sorted {
		if _, err := stmt.ExecContext(ctx,
			i+1,
			rec.Product,
			rec.Price,
			rec.Weight,
			rec.SourceFile,
			rec.PricePerUnit,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
