package application

import (
	"context"
	"os"
	"testing"

	"github.com/dfryer1193/gallery/gallery/domain"
)

func migrationCandidates() []domain.ImageRecord {
	return []domain.ImageRecord{
		{
			ID:       1690000000001,
			URL:      "data:image/png;base64,QUJD",
			Title:    "Quad",
			Category: "campus",
			Date:     "July 22, 2023",
			Location: "Campus",
		},
		{
			ID:       1690000000002,
			URL:      "data:image/webp;base64,REVG",
			Title:    "Stadium",
			Category: "sports",
			Date:     "July 22, 2023",
			Location: "Campus",
		},
		{
			ID:    1690000000003,
			URL:   "https://example.com/remote.jpg",
			Title: "Remote",
		},
		{
			ID:    1690000000004,
			URL:   "data:image/png,not-base64",
			Title: "Broken",
		},
	}
}

func TestMigrationService_Migrate(t *testing.T) {
	env := setupTestEnv(t)
	migrator := NewMigrationService(env.records, env.blobs)
	ctx := context.Background()

	result, err := migrator.Migrate(ctx, migrationCandidates())
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	if result.Migrated != 2 {
		t.Errorf("Migrated = %d, want 2", result.Migrated)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}

	want := migrationCandidates()[:2]
	want[0].URL = "/uploads/image-1690000000001.png"
	want[1].URL = "/uploads/image-1690000000002.webp"
	env.assertPersisted(t, want)

	localPath, _ := env.blobs.Path(want[0].URL)
	content, err := os.ReadFile(localPath)
	if err != nil {
		t.Fatalf("Failed to read migrated blob: %v", err)
	}
	if string(content) != "ABC" {
		t.Errorf("content = %q, want %q", content, "ABC")
	}
}

func TestMigrationService_MigrateTwice(t *testing.T) {
	env := setupTestEnv(t)
	migrator := NewMigrationService(env.records, env.blobs)
	ctx := context.Background()

	first, err := migrator.Migrate(ctx, migrationCandidates())
	if err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}

	second, err := migrator.Migrate(ctx, migrationCandidates())
	if err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	if second.Migrated != 0 {
		t.Errorf("second Migrated = %d, want 0", second.Migrated)
	}
	if second.Total != first.Total {
		t.Errorf("second Total = %d, want %d", second.Total, first.Total)
	}
}

func TestMigrationService_SkipsExistingAndBatchDuplicates(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	existing, err := env.service.CreateImage(ctx, CreateImageInput{Title: "Server copy", Content: []byte("srv"), MimeType: "image/png"})
	if err != nil {
		t.Fatalf("CreateImage() error = %v", err)
	}

	candidates := []domain.ImageRecord{
		{ID: existing.ID, URL: "data:image/png;base64,QUJD", Title: "Client copy"},
		{ID: 42, URL: "data:image/gif;base64,QUJD", Title: "First"},
		{ID: 42, URL: "data:image/gif;base64,REVG", Title: "Second"},
	}

	result, err := NewMigrationService(env.records, env.blobs).Migrate(ctx, candidates)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	if result.Migrated != 1 || result.Total != 2 {
		t.Errorf("result = %+v, want 1 migrated and 2 total", result)
	}

	images, err := env.service.ListImages(ctx)
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}
	if images[0].Title != "Server copy" {
		t.Errorf("existing record overwritten: %+v", images[0])
	}
	if images[1].Title != "First" || images[1].URL != "/uploads/image-42.gif" {
		t.Errorf("migrated record = %+v, want First at /uploads/image-42.gif", images[1])
	}
}

func TestMigrationService_EmptyBatch(t *testing.T) {
	env := setupTestEnv(t)

	result, err := NewMigrationService(env.records, env.blobs).Migrate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if result.Migrated != 0 || result.Total != 0 {
		t.Errorf("result = %+v, want zero counts", result)
	}
}
