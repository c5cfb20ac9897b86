package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_tv_shows_title ON tv_shows(title)",
			"CREATE INDEX IF NOT EXISTS idx_tv_shows_status ON tv_shows(status)",
			"CREATE INDEX IF NOT EXISTS idx_tv_shows_original_air_date ON tv_shows(original_air_date)",
			"CREATE INDEX IF NOT EXISTS idx_episodes_show ON episodes(tv_show_id)",
			"CREATE INDEX IF NOT EXISTS idx_episodes_air_date ON episodes(air_date)",
			"CREATE INDEX IF NOT EXISTS idx_distributors_active ON distributors(active)",
			"CREATE INDEX IF NOT EXISTS idx_distributors_country ON distributors(country_code)",
			"CREATE INDEX IF NOT EXISTS idx_distributions_region ON tv_show_distributors(region)",
			"CREATE INDEX IF NOT EXISTS idx_release_dates_show_date ON release_dates(tv_show_id, release_date)",
			"CREATE INDEX IF NOT EXISTS idx_release_dates_region_date ON release_dates(region, release_date)",
			"CREATE INDEX IF NOT EXISTS idx_ingest_runs_start ON ingest_runs(start_time)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_tv_shows_title",
			"DROP INDEX IF EXISTS idx_tv_shows_status",
			"DROP INDEX IF EXISTS idx_tv_shows_original_air_date",
			"DROP INDEX IF EXISTS idx_episodes_show",
			"DROP INDEX IF EXISTS idx_episodes_air_date",
			"DROP INDEX IF EXISTS idx_distributors_active",
			"DROP INDEX IF EXISTS idx_distributors_country",
			"DROP INDEX IF EXISTS idx_distributions_region",
			"DROP INDEX IF EXISTS idx_release_dates_show_date",
			"DROP INDEX IF EXISTS idx_release_dates_region_date",
			"DROP INDEX IF EXISTS idx_ingest_runs_start",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	})
}
