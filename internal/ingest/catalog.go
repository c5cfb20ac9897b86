package ingest

import (
	"context"
	"log"

	"github.com/akarpo/showatlas/ingester/internal/models"
	"github.com/akarpo/showatlas/ingester/internal/reconcile"
	"github.com/akarpo/showatlas/ingester/internal/sources/tvmaze"
)

// catalogWalker pages through the show index until its page limit is
// reached or the API answers 404, which marks the end of the catalog.
type catalogWalker struct {
	client         *tvmaze.Client
	engine         *reconcile.Engine
	pageCount      int
	importEpisodes bool
}

func (w *catalogWalker) run(ctx context.Context, sum *Summary) error {
	state := stateFetching
	page := 0
	var shows []tvmaze.Show

	for state != stateTerminated {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch state {
		case stateFetching:
			var err error
			shows, err = w.client.ShowIndex(ctx, page)
			if err != nil {
				if tvmaze.IsNotFound(err) {
					// Expected stop condition: the index has no more pages.
					log.Printf("show index ended at page %d", page)
					state = stateTerminated
					continue
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Abandon the page: none of its items are reconciled.
				log.Printf("page %d abandoned: %v", page, err)
				sum.PagesFailed++
				state = stateAdvancing
				continue
			}
			state = stateProcessing

		case stateProcessing:
			w.processPage(ctx, shows, sum)
			state = stateAdvancing

		case stateAdvancing:
			page++
			if page >= w.pageCount {
				state = stateTerminated
			} else {
				state = stateFetching
			}
		}
	}
	return nil
}

func (w *catalogWalker) processPage(ctx context.Context, shows []tvmaze.Show, sum *Summary) {
	for _, raw := range shows {
		if ctx.Err() != nil {
			return
		}

		show, created, err := w.engine.UpsertShow(ctx, tvmaze.MapToShow(raw))
		if err != nil {
			log.Printf("show %q skipped: %v", raw.Name, err)
			sum.Errors++
			continue
		}
		sum.Processed++
		if created {
			sum.ShowsCreated++
		}

		if w.importEpisodes {
			w.importShowEpisodes(ctx, raw, show, sum)
		}
	}
}

// importShowEpisodes fetches and reconciles the episode list of one show.
// A show that already has any stored episodes is left alone; there is no
// episode diffing on repeat runs.
func (w *catalogWalker) importShowEpisodes(ctx context.Context, raw tvmaze.Show, show *models.Show, sum *Summary) {
	has, err := w.engine.HasEpisodes(ctx, show.ID)
	if err != nil {
		log.Printf("episode check for %q failed: %v", show.Title, err)
		sum.Errors++
		return
	}
	if has {
		sum.Skipped++
		return
	}

	episodes, err := w.client.ShowEpisodes(ctx, raw.ID)
	if err != nil {
		log.Printf("episode fetch for %q failed: %v", show.Title, err)
		sum.Errors++
		return
	}

	imported := 0
	for _, rawEp := range episodes {
		if ctx.Err() != nil {
			return
		}
		_, created, err := w.engine.UpsertEpisode(ctx, show, tvmaze.MapToEpisode(rawEp, show.ID))
		if err != nil {
			log.Printf("episode %q of %q skipped: %v", rawEp.Name, show.Title, err)
			sum.Errors++
			continue
		}
		if created {
			sum.EpisodesCreated++
			imported++
		}
	}

	if imported > 0 {
		if err := w.engine.RefreshRollups(ctx, show.ID); err != nil {
			log.Printf("rollup refresh for %q failed: %v", show.Title, err)
		}
	}
}
