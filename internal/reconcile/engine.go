package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
	"github.com/akarpo/showatlas/ingester/internal/repositories"
	"github.com/akarpo/showatlas/ingester/internal/sources/tvmaze"
)

// Engine merges normalized upstream records into the store. Every
// operation is idempotent: calling it twice with the same input creates
// no duplicate rows and returns no error.
type Engine struct {
	db *bun.DB
}

// NewEngine creates a reconciliation engine on top of the store.
func NewEngine(db *bun.DB) *Engine {
	return &Engine{db: db}
}

// Outcome reports what reconciling one upstream item changed.
type Outcome struct {
	ShowCreated    bool
	EpisodeCreated bool
	Skipped        bool
}

// UpsertShow finds the show by external catalog ID, falls back to an
// exact-title lookup for records without one, and creates it when absent.
// Descriptive fields of an existing show are never overwritten; manual
// edits survive re-ingestion.
func (e *Engine) UpsertShow(ctx context.Context, show *models.Show) (*models.Show, bool, error) {
	return upsertShow(ctx, e.db, show)
}

func upsertShow(ctx context.Context, db bun.IDB, show *models.Show) (*models.Show, bool, error) {
	if show.HasExternalID() {
		existing, err := repositories.FindShowByTVMazeID(ctx, db, *show.TVMazeID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	} else {
		existing, err := repositories.FindShowByTitle(ctx, db, show.Title)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	created, err := repositories.CreateShow(ctx, db, show)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpsertEpisode finds the episode by (show, external ID), falling back to
// (show, season, number) for episodes without one, and creates it when
// absent. Episodes are never updated once ingested.
func (e *Engine) UpsertEpisode(ctx context.Context, show *models.Show, ep *models.Episode) (*models.Episode, bool, error) {
	return upsertEpisode(ctx, e.db, show, ep)
}

func upsertEpisode(ctx context.Context, db bun.IDB, show *models.Show, ep *models.Episode) (*models.Episode, bool, error) {
	ep.ShowID = show.ID
	if ep.TVMazeID != nil {
		existing, err := repositories.FindEpisode(ctx, db, show.ID, *ep.TVMazeID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	} else {
		existing, err := repositories.FindEpisodeByNumber(ctx, db, show.ID, ep.SeasonNumber, ep.EpisodeNumber)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	created, err := repositories.CreateEpisode(ctx, db, ep)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpsertDistributor fuzzy-matches the name against existing distributors
// before creating, so near-identical channel names collapse to one row.
// An empty name yields no distributor and no error.
func (e *Engine) UpsertDistributor(ctx context.Context, name, countryHint string) (*models.Distributor, bool, error) {
	return upsertDistributor(ctx, e.db, name, countryHint)
}

func upsertDistributor(ctx context.Context, db bun.IDB, name, countryHint string) (*models.Distributor, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, nil
	}

	existing, err := repositories.FindDistributorByName(ctx, db, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	dist := &models.Distributor{Name: name, Active: true}
	if len(countryHint) == 2 {
		dist.CountryCode = &countryHint
	}
	created, err := repositories.CreateDistributor(ctx, db, dist)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// LinkShowDistributor finds or creates the (show, distributor, region)
// link. An existing link keeps its contract dates.
func (e *Engine) LinkShowDistributor(ctx context.Context, show *models.Show, dist *models.Distributor, region string, dtype models.DistributionType, contractStart *time.Time) (*models.ShowDistribution, bool, error) {
	return linkShowDistributor(ctx, e.db, show, dist, region, dtype, contractStart)
}

func linkShowDistributor(ctx context.Context, db bun.IDB, show *models.Show, dist *models.Distributor, region string, dtype models.DistributionType, contractStart *time.Time) (*models.ShowDistribution, bool, error) {
	if region == "" {
		region = models.RegionGlobal
	}

	existing, err := repositories.FindDistribution(ctx, db, show.ID, dist.ID, region)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	link := &models.ShowDistribution{
		ShowID:            show.ID,
		DistributorID:     dist.ID,
		Region:            region,
		DistributionType:  dtype,
		ContractStartDate: contractStart,
	}
	created, err := repositories.CreateDistribution(ctx, db, link)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// RecordReleaseDate finds or creates a release-date row on its natural
// key. A nil date skips the operation entirely.
func (e *Engine) RecordReleaseDate(ctx context.Context, show *models.Show, dist *models.Distributor, date *time.Time, region string, rtype models.ReleaseType, season, episode *int) (*models.ReleaseDate, bool, error) {
	return recordReleaseDate(ctx, e.db, show, dist, date, region, rtype, season, episode)
}

func recordReleaseDate(ctx context.Context, db bun.IDB, show *models.Show, dist *models.Distributor, date *time.Time, region string, rtype models.ReleaseType, season, episode *int) (*models.ReleaseDate, bool, error) {
	if date == nil {
		return nil, false, nil
	}
	if region == "" {
		region = models.RegionGlobal
	}

	existing, err := repositories.FindReleaseDate(ctx, db, show.ID, dist.ID, *date, region)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	rd := &models.ReleaseDate{
		ShowID:        show.ID,
		DistributorID: dist.ID,
		ReleaseDate:   *date,
		Region:        region,
		ReleaseType:   rtype,
		SeasonNumber:  season,
		EpisodeNumber: episode,
	}
	created, err := repositories.CreateReleaseDate(ctx, db, rd)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// HasEpisodes reports whether a show already has any stored episodes.
// Walkers use it to skip nested episode imports on repeat runs.
func (e *Engine) HasEpisodes(ctx context.Context, showID int64) (bool, error) {
	n, err := repositories.CountEpisodes(ctx, e.db, showID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RefreshRollups recomputes the episode and season counters of a show.
func (e *Engine) RefreshRollups(ctx context.Context, showID int64) error {
	return repositories.RefreshEpisodeRollups(ctx, e.db, showID)
}

// ReconcileScheduleEntry merges one daily-schedule entry: the embedded
// show, its episode, the carrying distributor, the distribution link and
// the premiere release date. The fan-out runs in one transaction so a
// crash mid-item cannot leave a partially linked show behind.
func (e *Engine) ReconcileScheduleEntry(ctx context.Context, entry tvmaze.ScheduleEntry) (Outcome, error) {
	if entry.Show == nil {
		return Outcome{Skipped: true}, nil
	}

	var out Outcome
	err := e.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		show, showCreated, err := upsertShow(ctx, tx, tvmaze.MapToShow(*entry.Show))
		if err != nil {
			return err
		}
		out.ShowCreated = showCreated

		_, epCreated, err := upsertEpisode(ctx, tx, show, tvmaze.MapToEpisode(entry.Episode, show.ID))
		if err != nil {
			return err
		}
		out.EpisodeCreated = epCreated
		if epCreated {
			if err := repositories.RefreshEpisodeRollups(ctx, tx, show.ID); err != nil {
				return err
			}
		}

		network := ""
		if show.NetworkName != nil {
			network = *show.NetworkName
		}
		countryCode := tvmaze.CountryCodeOf(*entry.Show)

		dist, _, err := upsertDistributor(ctx, tx, network, countryCode)
		if err != nil {
			return err
		}
		if dist == nil {
			return nil
		}

		region := countryCode
		dtype := models.DistributionStreaming
		if entry.Show.Network != nil {
			dtype = models.DistributionBroadcast
		}
		if _, _, err := linkShowDistributor(ctx, tx, show, dist, region, dtype, show.PremieredAt); err != nil {
			return err
		}

		var season, number *int
		if entry.Episode.Season > 0 {
			s := entry.Episode.Season
			season = &s
		}
		if entry.Episode.Number != nil && *entry.Episode.Number > 0 {
			number = entry.Episode.Number
		}

		rtype := releaseTypeFor(entry.Episode)
		_, _, err = recordReleaseDate(ctx, tx, show, dist, show.PremieredAt, region, rtype, season, number)
		return err
	})
	return out, err
}

func releaseTypeFor(ep tvmaze.Episode) models.ReleaseType {
	switch {
	case ep.Season == 1 && ep.Number != nil && *ep.Number == 1:
		return models.ReleasePremiere
	case ep.Number != nil && *ep.Number == 1:
		return models.ReleaseSeasonPremiere
	default:
		return models.ReleaseEpisode
	}
}
