package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ReleaseDate records one premiere event for a show through a distributor.
type ReleaseDate struct {
	bun.BaseModel `bun:"table:release_dates,alias:rd"`

	ID            int64       `bun:"id,pk,autoincrement" json:"id"`
	ShowID        int64       `bun:"tv_show_id,notnull" json:"tv_show_id"`
	DistributorID int64       `bun:"distributor_id,notnull" json:"distributor_id"`
	ReleaseDate   time.Time   `bun:"release_date,notnull" json:"release_date"`
	Region        string      `bun:"region,notnull" json:"region"`
	ReleaseType   ReleaseType `bun:"release_type" json:"release_type,omitempty"`
	SeasonNumber  *int        `bun:"season_number" json:"season_number,omitempty"`
	EpisodeNumber *int        `bun:"episode_number" json:"episode_number,omitempty"`
	Notes         *string     `bun:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	ShowRef     *Show        `bun:"rel:belongs-to,join:tv_show_id=id" json:"-"`
	Distributor *Distributor `bun:"rel:belongs-to,join:distributor_id=id" json:"-"`
}

// Validate checks parent references, region format and numbering.
func (rd *ReleaseDate) Validate() error {
	if rd.ShowID == 0 || rd.DistributorID == 0 {
		return errors.New("release date must reference a show and a distributor")
	}
	if rd.ReleaseDate.IsZero() {
		return errors.New("release date is required")
	}
	if !validRegion(rd.Region) {
		return errors.New("region must be a two-letter code or global")
	}
	if rd.SeasonNumber != nil && *rd.SeasonNumber <= 0 {
		return errors.New("season number must be positive")
	}
	if rd.EpisodeNumber != nil && *rd.EpisodeNumber <= 0 {
		return errors.New("episode number must be positive")
	}
	return nil
}

func validRegion(region string) bool {
	if region == RegionGlobal {
		return true
	}
	if len(region) != 2 {
		return false
	}
	for _, r := range region {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
