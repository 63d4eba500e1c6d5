// Package store persists articles and categories.
//
// Three backends implement Store: Memory for tests and single-process use,
// SQLite (sqlx over the pure-Go modernc driver) and Postgres (pgx pool).
// Slugs are unique per table in every backend; inserting a taken slug
// returns ErrDuplicateSlug, which is what slug.Reserve expects from its
// claim function:
//
//	st, err := store.Open(ctx, store.Config{Driver: "sqlite", DSN: "file:blog.db"}, log)
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	if err := st.Migrate(ctx); err != nil {
//		return err
//	}
//
// Schemas live under migrations/ and are applied with goose.
package store
