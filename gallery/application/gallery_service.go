package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/rs/zerolog/log"
)

// GalleryService owns the gallery's create/list/update/delete operations.
// Every call is a full load-modify-save cycle against the record store; concurrent writers are last-write-wins.
type GalleryService struct {
	records  domain.RecordStore
	blobs    domain.BlobStore
	location string
	now      func() time.Time
}

type Option func(*GalleryService)

// WithLocation overrides the location stamped on new records
func WithLocation(location string) Option {
	return func(s *GalleryService) {
		if location != "" {
			s.location = location
		}
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *GalleryService) {
		s.now = now
	}
}

func NewGalleryService(records domain.RecordStore, blobs domain.BlobStore, opts ...Option) *GalleryService {
	s := &GalleryService{
		records:  records,
		blobs:    blobs,
		location: domain.DefaultLocation,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateImageInput carries either raw Content with its MimeType, or an Upload
type CreateImageInput struct {
	Title    string
	Category string
	Content  []byte
	MimeType string
	Upload   domain.Upload
}

// ListImages returns every record in the gallery
func (s *GalleryService) ListImages(ctx context.Context) ([]domain.ImageRecord, error) {
	return loadRecords(ctx, s.records)
}

// CreateImage stores the image blob and appends a new record for it
func (s *GalleryService) CreateImage(ctx context.Context, in CreateImageInput) (*domain.ImageRecord, error) {
	if in.Upload == nil && len(in.Content) == 0 {
		return nil, domain.ErrMissingImage
	}

	records, err := loadRecords(ctx, s.records)
	if err != nil {
		return nil, err
	}

	ref, err := s.storeBlob(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := domain.ImageRecord{
		ID:       nextID(records, now),
		URL:      ref,
		Title:    orDefault(in.Title, domain.DefaultTitle),
		Category: orDefault(in.Category, domain.DefaultCategory),
		Date:     now.Format(domain.DateLayout),
		Location: s.location,
	}

	records = append(records, rec)
	if err := s.records.Save(ctx, records); err != nil {
		// the record never made it, so neither should its blob
		if rmErr := s.blobs.Remove(ctx, ref); rmErr != nil {
			log.Error().Err(rmErr).Str("url", ref).Msg("Failed to remove orphaned image file")
		}
		return nil, fmt.Errorf("failed to save gallery data: %w", err)
	}

	log.Info().Int64("id", rec.ID).Str("url", rec.URL).Str("category", rec.Category).Msg("Image created")
	return &rec, nil
}

// UpdateCaption sets the title of an existing record
func (s *GalleryService) UpdateCaption(ctx context.Context, id int64, title string) (*domain.ImageRecord, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	records, err := loadRecords(ctx, s.records)
	if err != nil {
		return nil, err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrNotFound, id)
	}

	records[idx].Title = title
	if err := s.records.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save gallery data: %w", err)
	}

	rec := records[idx]
	return &rec, nil
}

// DeleteImage removes a record and, best-effort, its blob
func (s *GalleryService) DeleteImage(ctx context.Context, id int64) error {
	records, err := loadRecords(ctx, s.records)
	if err != nil {
		return err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNotFound, id)
	}

	rec := records[idx]
	records = slices.Delete(records, idx, idx+1)
	if err := s.records.Save(ctx, records); err != nil {
		return fmt.Errorf("failed to save gallery data: %w", err)
	}

	// record is already gone; a stale file is harmless
	if err := s.blobs.Remove(ctx, rec.URL); err != nil {
		log.Warn().Err(err).Int64("id", id).Str("url", rec.URL).Msg("Failed to remove image file")
	}

	log.Info().Int64("id", id).Msg("Image deleted")
	return nil
}

func (s *GalleryService) storeBlob(ctx context.Context, in CreateImageInput) (string, error) {
	if in.Upload == nil {
		ref, err := s.blobs.StoreBytes(ctx, in.Content, in.MimeType, 0)
		if err != nil {
			return "", fmt.Errorf("failed to store image: %w", err)
		}
		return ref, nil
	}

	f, err := in.Upload.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	ref, err := s.blobs.StoreUpload(ctx, f, in.Upload.ContentType())
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}

// loadRecords reads the store, treating corrupt state as an empty gallery
func loadRecords(ctx context.Context, store domain.RecordStore) ([]domain.ImageRecord, error) {
	records, err := store.Load(ctx)
	if errors.Is(err, domain.ErrCorruptState) {
		log.Warn().Err(err).Msg("Gallery data is unreadable, continuing with an empty gallery")
		return []domain.ImageRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery data: %w", err)
	}
	return records, nil
}

// nextID is the creation time in milliseconds, bumped past every existing id
func nextID(records []domain.ImageRecord, now time.Time) int64 {
	id := now.UnixMilli()
	for _, r := range records {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return id
}

func indexOf(records []domain.ImageRecord, id int64) int {
	return slices.IndexFunc(records, func(r domain.ImageRecord) bool {
		return r.ID == id
	})
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
