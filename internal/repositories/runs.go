package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

// InsertRun records the outcome of one ingestion run.
func InsertRun(ctx context.Context, db bun.IDB, run *models.IngestRun) error {
	_, err := db.NewInsert().Model(run).Exec(ctx)
	return err
}

// RecentRuns returns the latest run records, newest first.
func RecentRuns(ctx context.Context, db bun.IDB, limit int) ([]*models.IngestRun, error) {
	var runs []*models.IngestRun
	err := db.NewSelect().
		Model(&runs).
		OrderExpr("start_time DESC").
		Limit(limit).
		Scan(ctx)
	return runs, err
}
