package app

import (
	"context"
	"database/sql"

	"github.com/guttosm/pricemachine/config"
	"github.com/guttosm/pricemachine/internal/storage"
)

// ReportSink is the optional PostgreSQL mirror of the report.
// The zero value (sink disabled) is usable: Repo is nil and Close is a no-op.
type ReportSink struct {
	Repo storage.ReportRepository
	db   *sql.DB
}

// OpenReportSink connects to PostgreSQL when cfg.Export.Postgres is set.
func OpenReportSink(cfg config.Config) (*ReportSink, error) {
	if !cfg.Export.Postgres {
		return &ReportSink{}, nil
	}

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, err
	}
	return &ReportSink{Repo: storage.NewReportRepository(db), db: db}, nil
}

// Ping reports sink connectivity; nil when the sink is disabled.
func (s *ReportSink) Ping() error {
	if s.Repo == nil {
		return nil
	}
	return s.Repo.Ping(context.Background())
}

// Close releases the connection pool, if any.
func (s *ReportSink) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}
