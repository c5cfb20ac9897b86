package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

// FindDistribution returns the link between a show and a distributor in a
// region, or nil when no link exists.
func FindDistribution(ctx context.Context, db bun.IDB, showID, distributorID int64, region string) (*models.ShowDistribution, error) {
	link := new(models.ShowDistribution)
	err := db.NewSelect().
		Model(link).
		Where("tv_show_id = ?", showID).
		Where("distributor_id = ?", distributorID).
		Where("region = ?", region).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// CreateDistribution validates and inserts a show-distributor link. A
// duplicate triple resolves to the stored row.
func CreateDistribution(ctx context.Context, db bun.IDB, link *models.ShowDistribution) (*models.ShowDistribution, error) {
	if err := link.Validate(); err != nil {
		return nil, err
	}

	res, err := db.NewInsert().
		Model(link).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return FindDistribution(ctx, db, link.ShowID, link.DistributorID, link.Region)
	}
	return link, nil
}

// FindReleaseDate returns the release-date row for the natural key
// (show, distributor, date, region), or nil.
func FindReleaseDate(ctx context.Context, db bun.IDB, showID, distributorID int64, date time.Time, region string) (*models.ReleaseDate, error) {
	rd := new(models.ReleaseDate)
	err := db.NewSelect().
		Model(rd).
		Where("tv_show_id = ?", showID).
		Where("distributor_id = ?", distributorID).
		Where("release_date = ?", date).
		Where("region = ?", region).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rd, nil
}

// CreateReleaseDate validates and inserts a release-date row.
func CreateReleaseDate(ctx context.Context, db bun.IDB, rd *models.ReleaseDate) (*models.ReleaseDate, error) {
	if err := rd.Validate(); err != nil {
		return nil, err
	}
	if _, err := db.NewInsert().Model(rd).Exec(ctx); err != nil {
		return nil, err
	}
	return rd, nil
}
