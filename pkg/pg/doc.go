// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an embedded filesystem.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	err = pg.Migrate(ctx, pool, migrations, "migrations", cfg.MigrationsTable, log)
//
// Connect retries with a linearly growing delay. Healthcheck wraps the pool
// in a check for the HTTP health endpoint.
package pg
