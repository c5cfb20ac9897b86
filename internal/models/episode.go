package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Episode represents one episode of a show. Episodes are owned by their
// show and are never updated after ingestion.
type Episode struct {
	bun.BaseModel `bun:"table:episodes,alias:e"`

	ID int64 `bun:"id,pk,autoincrement" json:"id"`
	// tv_show_id and tvmaze_id share a unique group so the external ID is
	// scoped per show, not catalog-wide.
	ShowID        int64      `bun:"tv_show_id,notnull,unique:episode_show_external" json:"tv_show_id"`
	TVMazeID      *int64     `bun:"tvmaze_id,unique:episode_show_external" json:"tvmaze_id,omitempty"`
	Title         *string    `bun:"title" json:"title,omitempty"`
	SeasonNumber  *int       `bun:"season_number" json:"season_number,omitempty"`
	EpisodeNumber *int       `bun:"episode_number" json:"episode_number,omitempty"`
	AirDate       *time.Time `bun:"air_date" json:"air_date,omitempty"`
	Runtime       *int       `bun:"runtime" json:"runtime,omitempty"`
	Summary       *string    `bun:"summary" json:"summary,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	ShowRef *Show `bun:"rel:belongs-to,join:tv_show_id=id" json:"-"`
}

// Validate checks numbering constraints. Season and episode numbers are
// optional but must be positive when present.
func (e *Episode) Validate() error {
	if e.ShowID == 0 {
		return errors.New("episode must belong to a show")
	}
	if e.SeasonNumber != nil && *e.SeasonNumber <= 0 {
		return errors.New("season number must be positive")
	}
	if e.EpisodeNumber != nil && *e.EpisodeNumber <= 0 {
		return errors.New("episode number must be positive")
	}
	return nil
}
