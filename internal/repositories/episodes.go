package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

// FindEpisode returns a show's episode with the given external catalog ID,
// or nil when none exists.
func FindEpisode(ctx context.Context, db bun.IDB, showID, tvmazeID int64) (*models.Episode, error) {
	ep := new(models.Episode)
	err := db.NewSelect().
		Model(ep).
		Where("tv_show_id = ?", showID).
		Where("tvmaze_id = ?", tvmazeID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ep, nil
}

// FindEpisodeByNumber returns a show's episode that carries no external
// ID and matches the given season and episode numbers, or nil when none
// exists. This is the lookup path for feeds that omit episode IDs.
func FindEpisodeByNumber(ctx context.Context, db bun.IDB, showID int64, season, number *int) (*models.Episode, error) {
	ep := new(models.Episode)
	q := db.NewSelect().
		Model(ep).
		Where("tv_show_id = ?", showID).
		Where("tvmaze_id IS NULL")
	if season != nil {
		q = q.Where("season_number = ?", *season)
	} else {
		q = q.Where("season_number IS NULL")
	}
	if number != nil {
		q = q.Where("episode_number = ?", *number)
	} else {
		q = q.Where("episode_number IS NULL")
	}
	err := q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ep, nil
}

// CreateEpisode validates and inserts a new episode. Duplicate external
// IDs resolve to the stored row.
func CreateEpisode(ctx context.Context, db bun.IDB, ep *models.Episode) (*models.Episode, error) {
	if err := ep.Validate(); err != nil {
		return nil, err
	}

	res, err := db.NewInsert().
		Model(ep).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 && ep.TVMazeID != nil {
		return FindEpisode(ctx, db, ep.ShowID, *ep.TVMazeID)
	}
	return ep, nil
}

// CountEpisodes returns how many episodes are stored for a show.
func CountEpisodes(ctx context.Context, db bun.IDB, showID int64) (int, error) {
	return db.NewSelect().
		Model((*models.Episode)(nil)).
		Where("tv_show_id = ?", showID).
		Count(ctx)
}
