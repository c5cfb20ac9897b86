package models

import (
	"time"

	"github.com/uptrace/bun"
)

// IngestRun tracks one bounded ingestion run and its outcome.
type IngestRun struct {
	bun.BaseModel `bun:"table:ingest_runs,alias:ir"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	RunID           string     `bun:"run_id,unique,notnull" json:"run_id"`
	Mode            string     `bun:"mode,notnull" json:"mode"`
	StartTime       time.Time  `bun:"start_time,notnull" json:"start_time"`
	EndTime         *time.Time `bun:"end_time" json:"end_time,omitempty"`
	Processed       int        `bun:"processed,default:0" json:"processed"`
	ShowsCreated    int        `bun:"shows_created,default:0" json:"shows_created"`
	EpisodesCreated int        `bun:"episodes_created,default:0" json:"episodes_created"`
	Skipped         int        `bun:"skipped,default:0" json:"skipped"`
	Errors          int        `bun:"errors_count,default:0" json:"errors_count"`
	Message         *string    `bun:"message" json:"message,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
