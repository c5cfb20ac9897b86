package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
	"github.com/akarpo/showatlas/ingester/internal/reconcile"
	"github.com/akarpo/showatlas/ingester/internal/repositories"
	"github.com/akarpo/showatlas/ingester/internal/sources/tvmaze"
)

// Mode selects which walker a run uses.
type Mode string

const (
	ModeCatalog  Mode = "catalog"
	ModeSchedule Mode = "schedule"
)

// Options bound one ingestion run.
type Options struct {
	Mode           Mode
	PageCount      int
	DaySpan        int
	ImportEpisodes bool
	Country        string
}

// Summary aggregates the outcome of one run. It lives on the run's own
// stack; there are no package-level counters.
type Summary struct {
	Processed       int
	ShowsCreated    int
	EpisodesCreated int
	Skipped         int
	Errors          int
	PagesFailed     int
	Message         string
}

// Runner orchestrates one end-to-end ingestion run: it picks a walker,
// bounds it, isolates per-item failures and records the outcome. Item
// and page failures surface only in the summary counts; a run always
// completes unless its context is canceled.
type Runner struct {
	client *tvmaze.Client
	engine *reconcile.Engine
	db     *bun.DB
	now    func() time.Time
}

// NewRunner creates a run coordinator.
func NewRunner(client *tvmaze.Client, engine *reconcile.Engine, db *bun.DB) *Runner {
	return &Runner{client: client, engine: engine, db: db, now: time.Now}
}

// Run executes one bounded ingestion run and returns its summary. The
// only error it returns is context cancellation; everything item-level
// is aggregated into the counts. The summary is persisted as an
// ingest_runs row either way, since already reconciled items stay valid.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	start := r.now()
	sum := &Summary{}

	var w walker
	switch opts.Mode {
	case ModeSchedule:
		country := opts.Country
		if country == "" {
			country = "US"
		}
		daySpan := opts.DaySpan
		if daySpan <= 0 {
			daySpan = 1
		}
		w = &scheduleWalker{client: r.client, engine: r.engine, country: country, start: start, daySpan: daySpan}
	default:
		pageCount := opts.PageCount
		if pageCount <= 0 {
			pageCount = 1
		}
		w = &catalogWalker{client: r.client, engine: r.engine, pageCount: pageCount, importEpisodes: opts.ImportEpisodes}
	}

	runErr := w.run(ctx, sum)

	sum.Message = fmt.Sprintf("processed %d items: created %d shows and %d episodes, %d skipped, %d errors",
		sum.Processed, sum.ShowsCreated, sum.EpisodesCreated, sum.Skipped, sum.Errors)
	if runErr != nil {
		sum.Message += " (run canceled)"
	}

	r.persist(opts, start, sum)
	return sum, runErr
}

// persist records the run outcome; a failure here is logged, never fatal.
func (r *Runner) persist(opts Options, start time.Time, sum *Summary) {
	end := r.now()
	run := &models.IngestRun{
		RunID:           uuid.NewString(),
		Mode:            string(opts.Mode),
		StartTime:       start,
		EndTime:         &end,
		Processed:       sum.Processed,
		ShowsCreated:    sum.ShowsCreated,
		EpisodesCreated: sum.EpisodesCreated,
		Skipped:         sum.Skipped,
		Errors:          sum.Errors,
		Message:         &sum.Message,
	}
	if err := repositories.InsertRun(context.Background(), r.db, run); err != nil {
		log.Printf("run record not persisted: %v", err)
	}
}
