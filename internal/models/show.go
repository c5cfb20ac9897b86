package models

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/uptrace/bun"
)

// Show represents one TV show reconciled from the upstream catalog.
type Show struct {
	bun.BaseModel `bun:"table:tv_shows,alias:ts"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	Title           string     `bun:"title,notnull" json:"title"`
	Description     *string    `bun:"description" json:"description,omitempty"`
	Genre           *string    `bun:"genre" json:"genre,omitempty"`
	Status          ShowStatus `bun:"status,notnull,default:'upcoming'" json:"status"`
	Rating          *float64   `bun:"rating" json:"rating,omitempty"`
	Language        *string    `bun:"language" json:"language,omitempty"`
	RuntimeMinutes  *int       `bun:"runtime_minutes" json:"runtime_minutes,omitempty"`
	OriginalAirDate *time.Time `bun:"original_air_date" json:"original_air_date,omitempty"`
	CountryOfOrigin *string    `bun:"country_of_origin" json:"country_of_origin,omitempty"`
	TVMazeID        *int64     `bun:"tvmaze_id,unique" json:"tvmaze_id,omitempty"`
	PremieredAt     *time.Time `bun:"premiered_at" json:"premiered_at,omitempty"`
	ImageURL        *string    `bun:"image_url" json:"image_url,omitempty"`
	Summary         *string    `bun:"summary" json:"summary,omitempty"`
	NetworkName     *string    `bun:"network_name" json:"network_name,omitempty"`
	TotalSeasons    int        `bun:"total_seasons,default:0" json:"total_seasons"`
	TotalEpisodes   int        `bun:"total_episodes,default:0" json:"total_episodes"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Episodes      []*Episode          `bun:"rel:has-many,join:id=tv_show_id" json:"episodes,omitempty"`
	Distributions []*ShowDistribution `bun:"rel:has-many,join:id=tv_show_id" json:"distributions,omitempty"`
	ReleaseDates  []*ReleaseDate      `bun:"rel:has-many,join:id=tv_show_id" json:"release_dates,omitempty"`
}

// BeforeUpdate updates the timestamp on modifications.
func (s *Show) BeforeUpdate(ctx context.Context, query *bun.UpdateQuery) error {
	s.UpdatedAt = time.Now()
	return nil
}

// Validate checks that required show fields are present and within limits.
func (s *Show) Validate() error {
	if s.Title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(s.Title) > MaxTitleLen {
		return errors.New("title exceeds column limit")
	}
	if s.Rating != nil && (*s.Rating < 0 || *s.Rating > 10) {
		return errors.New("rating must be between 0.0 and 10.0")
	}
	return nil
}

// HasExternalID reports whether the show carries an upstream catalog ID.
func (s *Show) HasExternalID() bool {
	return s.TVMazeID != nil && *s.TVMazeID > 0
}
