package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/dfryer1193/gallery/shared/db"
)

var _ domain.RecordStore = (*SQLiteRecordStore)(nil)

// SQLiteRecordStore implements domain.RecordStore on the images table.
// Every save rewrites the whole table inside one transaction, mirroring the JSON document semantics.
type SQLiteRecordStore struct {
	db *sql.DB
}

// NewSQLiteRecordStore creates a SQLiteRecordStore from a standard sql.DB
func NewSQLiteRecordStore(sqlDB *sql.DB) *SQLiteRecordStore {
	return &SQLiteRecordStore{
		db: sqlDB,
	}
}

const listImagesQuery = `
	SELECT id, url, title, category, date, location
	FROM images
	ORDER BY position ASC
`

// Load returns all records in the order they were saved
func (r *SQLiteRecordStore) Load(ctx context.Context) ([]domain.ImageRecord, error) {
	executor := db.ExecutorFrom(ctx, r.db)
	rows, err := executor.QueryContext(ctx, listImagesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.ImageRecord{}
	for rows.Next() {
		var rec domain.ImageRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Title, &rec.Category, &rec.Date, &rec.Location); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}

	return records, nil
}

const (
	clearImagesQuery = `DELETE FROM images`
	insertImageQuery = `
	INSERT INTO images (id, url, title, category, date, location, position)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`
)

// Save replaces the table contents with records. Nothing is written if any insert fails.
func (r *SQLiteRecordStore) Save(ctx context.Context, records []domain.ImageRecord) error {
	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.ExecutorFrom(txCtx, r.db)

		if _, err := executor.ExecContext(txCtx, clearImagesQuery); err != nil {
			return fmt.Errorf("failed to clear images: %w", err)
		}

		for i, rec := range records {
			_, err := executor.ExecContext(txCtx, insertImageQuery,
				rec.ID,
				rec.URL,
				rec.Title,
				rec.Category,
				rec.Date,
				rec.Location,
				i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert image %d: %w", rec.ID, err)
			}
		}

		return nil
	})
}
