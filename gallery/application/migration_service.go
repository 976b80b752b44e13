package application

import (
	"context"
	"fmt"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/rs/zerolog/log"
)

// MigrationResult summarises one migration run
type MigrationResult struct {
	Migrated int
	Skipped  int
	Total    int
}

// MigrationService folds records kept by a client (e.g. browser local storage) into server storage
type MigrationService struct {
	records domain.RecordStore
	blobs   domain.BlobStore
}

func NewMigrationService(records domain.RecordStore, blobs domain.BlobStore) *MigrationService {
	return &MigrationService{
		records: records,
		blobs:   blobs,
	}
}

// Migrate stores each candidate whose id is not yet known.
// Only candidates carrying an inline data URL can be migrated; anything else is skipped and logged.
// Blobs are named after the candidate id, so re-running after a partial failure rewrites the same files.
func (m *MigrationService) Migrate(ctx context.Context, candidates []domain.ImageRecord) (*MigrationResult, error) {
	records, err := loadRecords(ctx, m.records)
	if err != nil {
		return nil, err
	}

	known := make(map[int64]struct{}, len(records)+len(candidates))
	for _, r := range records {
		known[r.ID] = struct{}{}
	}

	result := &MigrationResult{}
	for _, c := range candidates {
		if _, exists := known[c.ID]; exists {
			result.Skipped++
			continue
		}

		if !domain.IsDataURL(c.URL) {
			log.Debug().Int64("id", c.ID).Msg("Skipping migration of image without inline data")
			result.Skipped++
			continue
		}

		du, err := domain.DecodeDataURL(c.URL)
		if err != nil {
			log.Warn().Err(err).Int64("id", c.ID).Msg("Skipping migration of image with malformed data URL")
			result.Skipped++
			continue
		}

		ref, err := m.blobs.StoreBytes(ctx, du.Data, du.MimeType, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to store image %d: %w", c.ID, err)
		}

		migrated := c
		migrated.URL = ref
		records = append(records, migrated)
		known[c.ID] = struct{}{}
		result.Migrated++
	}

	if err := m.records.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save gallery data: %w", err)
	}

	result.Total = len(records)
	log.Info().
		Int("migrated", result.Migrated).
		Int("skipped", result.Skipped).
		Int("total", result.Total).
		Msg("Gallery migration finished")

	return result, nil
}
