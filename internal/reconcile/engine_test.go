package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/database"
	"github.com/akarpo/showatlas/ingester/internal/migrations"
	"github.com/akarpo/showatlas/ingester/internal/models"
	"github.com/akarpo/showatlas/ingester/internal/sources/tvmaze"
)

func newTestEngine(t *testing.T) (*Engine, *bun.DB) {
	t.Helper()

	db, err := database.NewDB(":memory:", false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewEngine(db), db
}

func countRows(t *testing.T, db *bun.DB, model interface{}) int {
	t.Helper()
	n, err := db.NewSelect().Model(model).Count(context.Background())
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func sampleShow(tvmazeID int64, title string) *models.Show {
	show := &models.Show{Title: title, Status: models.StatusRunning}
	if tvmazeID > 0 {
		show.TVMazeID = &tvmazeID
	}
	return show
}

func TestUpsertShowDedupByExternalID(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	first, created, err := engine.UpsertShow(ctx, sampleShow(169, "Breaking Bad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected first upsert to create")
	}

	// Same external ID, different descriptive data: must resolve to the
	// stored row without touching it.
	second, created, err := engine.UpsertShow(ctx, sampleShow(169, "Breaking Bad (retitled)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected second upsert to find, not create")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got %d and %d", first.ID, second.ID)
	}
	if second.Title != "Breaking Bad" {
		t.Fatalf("descriptive field was overwritten: %s", second.Title)
	}
	if got := countRows(t, db, (*models.Show)(nil)); got != 1 {
		t.Fatalf("expected 1 show, got %d", got)
	}
}

func TestUpsertShowTitleFallback(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	if _, created, err := engine.UpsertShow(ctx, sampleShow(0, "Legacy Show")); err != nil || !created {
		t.Fatalf("expected create, got created=%v err=%v", created, err)
	}
	if _, created, err := engine.UpsertShow(ctx, sampleShow(0, "Legacy Show")); err != nil || created {
		t.Fatalf("expected title match, got created=%v err=%v", created, err)
	}
	if got := countRows(t, db, (*models.Show)(nil)); got != 1 {
		t.Fatalf("expected 1 show, got %d", got)
	}
}

func TestUpsertShowValidation(t *testing.T) {
	engine, _ := newTestEngine(t)

	if _, _, err := engine.UpsertShow(context.Background(), sampleShow(5, "")); err == nil {
		t.Fatalf("expected validation error for empty title")
	}
}

func TestUpsertEpisodeIdempotent(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	show, _, err := engine.UpsertShow(ctx, sampleShow(169, "Breaking Bad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	epID := int64(42)
	for i := 0; i < 2; i++ {
		ep := &models.Episode{TVMazeID: &epID}
		if _, _, err := engine.UpsertEpisode(ctx, show, ep); err != nil {
			t.Fatalf("unexpected error on pass %d: %v", i, err)
		}
	}
	if got := countRows(t, db, (*models.Episode)(nil)); got != 1 {
		t.Fatalf("expected 1 episode, got %d", got)
	}
}

func TestUpsertEpisodeWithoutExternalIDIdempotent(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	// Some feeds omit episode IDs; the (show, season, number) fallback
	// must keep re-ingestion from duplicating rows.
	entry := scheduleEntry(169, "Breaking Bad")
	entry.Episode.ID = 0
	for i := 0; i < 2; i++ {
		if _, err := engine.ReconcileScheduleEntry(ctx, entry); err != nil {
			t.Fatalf("unexpected error on pass %d: %v", i, err)
		}
	}
	if got := countRows(t, db, (*models.Episode)(nil)); got != 1 {
		t.Fatalf("expected 1 episode after two identical passes, got %d", got)
	}

	// A different episode number is still a new row.
	two := 2
	entry.Episode.Number = &two
	if _, err := engine.ReconcileScheduleEntry(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countRows(t, db, (*models.Episode)(nil)); got != 2 {
		t.Fatalf("expected 2 episodes, got %d", got)
	}
}

func TestUpsertDistributorFuzzyMatch(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	first, created, err := engine.UpsertDistributor(ctx, "Netflix", "US")
	if err != nil || !created {
		t.Fatalf("expected create, got created=%v err=%v", created, err)
	}
	if first.CountryCode == nil || *first.CountryCode != "US" {
		t.Fatalf("expected country hint stamped, got %v", first.CountryCode)
	}
	if !first.Active {
		t.Fatalf("expected new distributor to be active")
	}

	// Case-insensitive and substring variants must all collapse to the
	// first row.
	for _, name := range []string{"netflix", "NETFLIX", "Netflix Originals"} {
		dist, created, err := engine.UpsertDistributor(ctx, name, "")
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if created || dist.ID != first.ID {
			t.Fatalf("expected %q to match existing distributor", name)
		}
	}

	if got := countRows(t, db, (*models.Distributor)(nil)); got != 1 {
		t.Fatalf("expected 1 distributor, got %d", got)
	}
}

func TestUpsertDistributorEmptyName(t *testing.T) {
	engine, _ := newTestEngine(t)

	dist, created, err := engine.UpsertDistributor(context.Background(), "  ", "US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist != nil || created {
		t.Fatalf("expected no distributor for blank name")
	}
}

func TestLinkShowDistributorKeepsContractDates(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	show, _, err := engine.UpsertShow(ctx, sampleShow(169, "Breaking Bad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dist, _, err := engine.UpsertDistributor(ctx, "AMC", "US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC)
	link, created, err := engine.LinkShowDistributor(ctx, show, dist, "US", models.DistributionBroadcast, &start)
	if err != nil || !created {
		t.Fatalf("expected link created, got created=%v err=%v", created, err)
	}

	later := start.AddDate(5, 0, 0)
	again, created, err := engine.LinkShowDistributor(ctx, show, dist, "US", models.DistributionBroadcast, &later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || again.ID != link.ID {
		t.Fatalf("expected existing link")
	}
	if again.ContractStartDate == nil || !again.ContractStartDate.Equal(start) {
		t.Fatalf("contract start was overwritten: %v", again.ContractStartDate)
	}

	// A different region is a different link.
	if _, created, err := engine.LinkShowDistributor(ctx, show, dist, models.RegionGlobal, models.DistributionBroadcast, nil); err != nil || !created {
		t.Fatalf("expected new link for new region, got created=%v err=%v", created, err)
	}
	if got := countRows(t, db, (*models.ShowDistribution)(nil)); got != 2 {
		t.Fatalf("expected 2 links, got %d", got)
	}
}

func TestRecordReleaseDateSkipsMissingDate(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	show, _, _ := engine.UpsertShow(ctx, sampleShow(169, "Breaking Bad"))
	dist, _, _ := engine.UpsertDistributor(ctx, "AMC", "US")

	rd, created, err := engine.RecordReleaseDate(ctx, show, dist, nil, "US", models.ReleasePremiere, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rd != nil || created {
		t.Fatalf("expected nil date to skip the operation")
	}

	date := time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, _, err := engine.RecordReleaseDate(ctx, show, dist, &date, "US", models.ReleasePremiere, nil, nil); err != nil {
			t.Fatalf("unexpected error on pass %d: %v", i, err)
		}
	}
	if got := countRows(t, db, (*models.ReleaseDate)(nil)); got != 1 {
		t.Fatalf("expected 1 release date, got %d", got)
	}
}

func scheduleEntry(showID int64, showName string) tvmaze.ScheduleEntry {
	number := 1
	return tvmaze.ScheduleEntry{
		Episode: tvmaze.Episode{
			ID:      showID * 100,
			Name:    "Pilot",
			Season:  1,
			Number:  &number,
			AirDate: "2025-06-10",
		},
		Show: &tvmaze.Show{
			ID:        showID,
			Name:      showName,
			Status:    "Running",
			Premiered: "2025-06-10",
			Network: &tvmaze.Channel{
				Name:    "AMC",
				Country: &tvmaze.Country{Name: "United States", Code: "US"},
			},
		},
	}
}

func TestReconcileScheduleEntryFanOut(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	out, err := engine.ReconcileScheduleEntry(ctx, scheduleEntry(169, "Breaking Bad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.ShowCreated || !out.EpisodeCreated {
		t.Fatalf("expected show and episode created, got %+v", out)
	}

	if got := countRows(t, db, (*models.Distributor)(nil)); got != 1 {
		t.Fatalf("expected distributor for the network, got %d", got)
	}
	if got := countRows(t, db, (*models.ShowDistribution)(nil)); got != 1 {
		t.Fatalf("expected 1 distribution link, got %d", got)
	}
	if got := countRows(t, db, (*models.ReleaseDate)(nil)); got != 1 {
		t.Fatalf("expected 1 release date, got %d", got)
	}

	// Season 1 episode 1 is a series premiere.
	rd := new(models.ReleaseDate)
	if err := db.NewSelect().Model(rd).Scan(ctx); err != nil {
		t.Fatalf("load release date: %v", err)
	}
	if rd.ReleaseType != models.ReleasePremiere {
		t.Fatalf("unexpected release type: %s", rd.ReleaseType)
	}
	if rd.Region != "US" {
		t.Fatalf("unexpected region: %s", rd.Region)
	}

	// Rollups reflect the ingested episode.
	show := new(models.Show)
	if err := db.NewSelect().Model(show).Scan(ctx); err != nil {
		t.Fatalf("load show: %v", err)
	}
	if show.TotalEpisodes != 1 || show.TotalSeasons != 1 {
		t.Fatalf("unexpected rollups: episodes=%d seasons=%d", show.TotalEpisodes, show.TotalSeasons)
	}
}

func TestReconcileScheduleEntryIdempotent(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	entry := scheduleEntry(169, "Breaking Bad")
	if _, err := engine.ReconcileScheduleEntry(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := engine.ReconcileScheduleEntry(ctx, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ShowCreated || out.EpisodeCreated {
		t.Fatalf("second pass must not create anything, got %+v", out)
	}

	if got := countRows(t, db, (*models.Show)(nil)); got != 1 {
		t.Fatalf("expected 1 show, got %d", got)
	}
	if got := countRows(t, db, (*models.Episode)(nil)); got != 1 {
		t.Fatalf("expected 1 episode, got %d", got)
	}
	if got := countRows(t, db, (*models.ReleaseDate)(nil)); got != 1 {
		t.Fatalf("expected 1 release date, got %d", got)
	}
}

func TestReconcileScheduleEntryWithoutShow(t *testing.T) {
	engine, _ := newTestEngine(t)

	out, err := engine.ReconcileScheduleEntry(context.Background(), tvmaze.ScheduleEntry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Skipped {
		t.Fatalf("expected entry without show to be skipped")
	}
}
