package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/akarpo/showatlas/ingester/internal/models"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.Show)(nil),
			(*models.Episode)(nil),
			(*models.Distributor)(nil),
			(*models.ShowDistribution)(nil),
			(*models.ReleaseDate)(nil),
			(*models.IngestRun)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.IngestRun)(nil),
			(*models.ReleaseDate)(nil),
			(*models.ShowDistribution)(nil),
			(*models.Distributor)(nil),
			(*models.Episode)(nil),
			(*models.Show)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}
