// Package db wraps PostgreSQL pool setup, transactions and goose migrations.
//
//	pool, err := db.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations, "migrations/postgres", cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE ...")
//		return err
//	})
//
// MigrateSQL runs the same migrations through database/sql, which is how
// the SQLite store applies its schema.
package db
