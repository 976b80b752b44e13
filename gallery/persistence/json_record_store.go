package persistence

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/goccy/go-json"
	"github.com/google/renameio/v2"
)

var _ domain.RecordStore = (*JSONRecordStore)(nil)

// JSONRecordStore implements domain.RecordStore as a single JSON document holding the full record array
type JSONRecordStore struct {
	path string
}

// NewJSONRecordStore returns a store backed by the document at path. The file is created on first save.
func NewJSONRecordStore(path string) *JSONRecordStore {
	return &JSONRecordStore{
		path: path,
	}
}

// Load reads every record from disk.
// A missing or empty document is an empty gallery; unparseable content is reported as domain.ErrCorruptState.
func (s *JSONRecordStore) Load(ctx context.Context) ([]domain.ImageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.ImageRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery data: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.ImageRecord{}, nil
	}

	var records []domain.ImageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptState, s.path, err)
	}

	if records == nil {
		records = []domain.ImageRecord{}
	}

	return records, nil
}

// Save atomically replaces the document with records
func (s *JSONRecordStore) Save(ctx context.Context, records []domain.ImageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if records == nil {
		records = []domain.ImageRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode gallery data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := renameio.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write gallery data: %w", err)
	}

	return nil
}
