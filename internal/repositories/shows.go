package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

// FindShowByTVMazeID returns the show with the given external catalog ID,
// or nil when none exists.
func FindShowByTVMazeID(ctx context.Context, db bun.IDB, tvmazeID int64) (*models.Show, error) {
	show := new(models.Show)
	err := db.NewSelect().
		Model(show).
		Where("tvmaze_id = ?", tvmazeID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return show, nil
}

// FindShowByTitle returns the show with the exact title, or nil. This is
// the legacy lookup path for records without an external ID.
func FindShowByTitle(ctx context.Context, db bun.IDB, title string) (*models.Show, error) {
	show := new(models.Show)
	err := db.NewSelect().
		Model(show).
		Where("title = ?", title).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return show, nil
}

// CreateShow validates and inserts a new show. A concurrent insert of the
// same external ID resolves to the already stored row instead of an error.
func CreateShow(ctx context.Context, db bun.IDB, show *models.Show) (*models.Show, error) {
	if err := show.Validate(); err != nil {
		return nil, err
	}

	res, err := db.NewInsert().
		Model(show).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 && show.HasExternalID() {
		return FindShowByTVMazeID(ctx, db, *show.TVMazeID)
	}
	return show, nil
}

// RefreshEpisodeRollups recomputes the per-show episode and season counts.
// These rollups are the only fields ingestion mutates on an existing show.
func RefreshEpisodeRollups(ctx context.Context, db bun.IDB, showID int64) error {
	var counts struct {
		Episodes int `bun:"episodes"`
		Seasons  int `bun:"seasons"`
	}
	err := db.NewSelect().
		Model((*models.Episode)(nil)).
		ColumnExpr("COUNT(*) AS episodes").
		ColumnExpr("COALESCE(MAX(season_number), 0) AS seasons").
		Where("tv_show_id = ?", showID).
		Scan(ctx, &counts)
	if err != nil {
		return err
	}

	_, err = db.NewUpdate().
		Model((*models.Show)(nil)).
		Set("total_episodes = ?", counts.Episodes).
		Set("total_seasons = ?", counts.Seasons).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("id = ?", showID).
		Exec(ctx)
	return err
}
