package ingest

import (
	"context"
	"log"
	"time"

	"github.com/akarpo/showatlas/ingester/internal/reconcile"
	"github.com/akarpo/showatlas/ingester/internal/sources/tvmaze"
)

// scheduleWalker iterates a span of consecutive calendar days and
// reconciles every schedule entry of each day. A failed day is logged
// and skipped; it never terminates the run.
type scheduleWalker struct {
	client  *tvmaze.Client
	engine  *reconcile.Engine
	country string
	start   time.Time
	daySpan int
}

func (w *scheduleWalker) run(ctx context.Context, sum *Summary) error {
	state := stateFetching
	day := 0
	var entries []tvmaze.ScheduleEntry

	for state != stateTerminated {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch state {
		case stateFetching:
			date := w.start.AddDate(0, 0, day)
			var err error
			entries, err = w.client.Schedule(ctx, w.country, date)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("schedule for %s skipped: %v", date.Format("2006-01-02"), err)
				sum.PagesFailed++
				state = stateAdvancing
				continue
			}
			state = stateProcessing

		case stateProcessing:
			w.processDay(ctx, entries, sum)
			state = stateAdvancing

		case stateAdvancing:
			day++
			if day >= w.daySpan {
				state = stateTerminated
			} else {
				state = stateFetching
			}
		}
	}
	return nil
}

func (w *scheduleWalker) processDay(ctx context.Context, entries []tvmaze.ScheduleEntry, sum *Summary) {
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		out, err := w.engine.ReconcileScheduleEntry(ctx, entry)
		if err != nil {
			name := entry.Name
			if entry.Show != nil {
				name = entry.Show.Name
			}
			log.Printf("schedule entry %q skipped: %v", name, err)
			sum.Errors++
			continue
		}
		if out.Skipped {
			sum.Skipped++
			continue
		}

		sum.Processed++
		if out.ShowCreated {
			sum.ShowsCreated++
		}
		if out.EpisodeCreated {
			sum.EpisodesCreated++
		}
	}
}
