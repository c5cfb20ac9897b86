package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

// FindDistributorByName matches an existing distributor case-insensitively:
// exact name first, then substring in either direction, so "HBO" and
// "HBO Max" do not become near-identical rows. Returns nil when nothing
// matches.
func FindDistributorByName(ctx context.Context, db bun.IDB, name string) (*models.Distributor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	dist := new(models.Distributor)
	err := db.NewSelect().
		Model(dist).
		Where("LOWER(name) = LOWER(?)", name).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return dist, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	pattern := "%" + strings.ToLower(name) + "%"
	dist = new(models.Distributor)
	err = db.NewSelect().
		Model(dist).
		Where("LOWER(name) LIKE ? OR LOWER(?) LIKE '%' || LOWER(name) || '%'", pattern, name).
		OrderExpr("LENGTH(name)").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// CreateDistributor validates and inserts a new distributor. A duplicate
// name resolves to the stored row.
func CreateDistributor(ctx context.Context, db bun.IDB, dist *models.Distributor) (*models.Distributor, error) {
	if err := dist.Validate(); err != nil {
		return nil, err
	}

	res, err := db.NewInsert().
		Model(dist).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return FindDistributorByName(ctx, db, dist.Name)
	}
	return dist, nil
}
