package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfryer1193/gallery/shared/db"
	"github.com/rs/zerolog/log"
)

type migration struct {
	version int
	name    string
	up      string
}

// migrations is the ordered schema history. Applied versions are never re-run.
var migrations = []migration{
	{
		version: 1,
		name:    "create_images_table",
		up: `
			CREATE TABLE IF NOT EXISTS images (
				id INTEGER PRIMARY KEY,
				url TEXT NOT NULL,
				title TEXT NOT NULL,
				category TEXT NOT NULL,
				date TEXT NOT NULL,
				location TEXT NOT NULL,
				position INTEGER NOT NULL
			);
		`,
	},
	{
		version: 2,
		name:    "index_images_position",
		up: `
			CREATE INDEX IF NOT EXISTS idx_images_position
			ON images(position ASC);
		`,
	},
}

func runMigrations(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	currentVersion := 0
	err = conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		err := db.RunInTransaction(ctx, conn, func(txCtx context.Context) error {
			executor := db.ExecutorFrom(txCtx, conn)
			if _, err := executor.ExecContext(txCtx, m.up); err != nil {
				return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
			}

			_, err := executor.ExecContext(txCtx,
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
				m.version,
				m.name,
			)
			if err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info().Int("version", m.version).Str("name", m.name).Msg("Applied schema migration")
	}

	return nil
}
