package domain

import (
	"context"
	"io"
)

const (
	DefaultTitle    = "Untitled"
	DefaultCategory = "uncategorized"
	DefaultLocation = "Campus"

	// DateLayout renders creation dates the way the gallery UI displays them, e.g. "October 18, 2026"
	DateLayout = "January 2, 2006"
)

// ImageRecord is the persisted metadata for one gallery image.
// URL references a stored blob; it only ever holds a data URL in client-side state awaiting migration.
type ImageRecord struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

// RecordStore persists the complete set of gallery records.
// There is no partial update; callers load everything, mutate and save everything.
type RecordStore interface {
	// Load returns all records in insertion order, or an empty slice if nothing was saved yet
	Load(ctx context.Context) ([]ImageRecord, error)

	// Save replaces the persisted state with records
	Save(ctx context.Context, records []ImageRecord) error
}

// BlobStore writes image files under a managed directory and hands back references usable as ImageRecord.URL
type BlobStore interface {
	// StoreBytes writes data using an extension derived from mimeType.
	// A non-zero preferredID pins the file name so repeated calls overwrite the same blob.
	StoreBytes(ctx context.Context, data []byte, mimeType string, preferredID int64) (string, error)

	// StoreUpload streams an uploaded file into the managed directory
	StoreUpload(ctx context.Context, r io.Reader, mimeType string) (string, error)

	// Remove deletes the blob behind ref. Removing a missing blob is not an error.
	Remove(ctx context.Context, ref string) error
}

// Upload is a file handed over by a caller, e.g. a multipart form part or a file on local disk
type Upload interface {
	Open() (io.ReadCloser, error)
	ContentType() string
}
