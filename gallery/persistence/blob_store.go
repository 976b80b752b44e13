package persistence

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var _ domain.BlobStore = (*FileBlobStore)(nil)

const (
	blobPrefix = "image-"

	// attempts at finding a free generated name before giving up
	maxNameAttempts = 5

	sniffLen = 3072
)

// FileBlobStore implements domain.BlobStore on a local directory.
// Blobs are addressed as <urlPrefix>/<filename>, which is also where the HTTP layer serves them.
type FileBlobStore struct {
	root      string
	urlPrefix string
	now       func() time.Time
}

// NewFileBlobStore creates the blob directory if needed and returns a store rooted there
func NewFileBlobStore(root string, urlPrefix string) (*FileBlobStore, error) {
	if root == "" {
		return nil, fmt.Errorf("blob directory cannot be empty")
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	return &FileBlobStore{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

// StoreBytes writes data as a new blob, or as image-<preferredID>.<ext> when preferredID is set
func (s *FileBlobStore) StoreBytes(ctx context.Context, data []byte, mimeType string, preferredID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return s.store(bytes.NewReader(data), mimeType, preferredID)
}

// StoreUpload streams r into a newly named blob.
// Uploads without a usable content type are sniffed so they still get a sensible extension.
func (s *FileBlobStore) StoreUpload(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		br := bufio.NewReaderSize(r, sniffLen)
		head, _ := br.Peek(sniffLen)
		mimeType = mimetype.Detect(head).String()
		r = br
	}

	return s.store(r, mimeType, 0)
}

// Remove deletes the blob behind ref. Unknown refs and missing files are ignored.
func (s *FileBlobStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	localPath, ok := s.Path(ref)
	if !ok {
		return nil
	}

	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}

	return nil
}

// Path resolves a blob reference to its location on disk.
// It returns false for refs that do not point into the managed directory.
func (s *FileBlobStore) Path(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, s.urlPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", false
	}

	return filepath.Join(s.root, name), true
}

func (s *FileBlobStore) store(r io.Reader, mimeType string, preferredID int64) (string, error) {
	ext := domain.ExtensionFor(mimeType)

	var (
		name string
		file *os.File
		err  error
	)

	if preferredID != 0 {
		name = fmt.Sprintf("%s%d%s", blobPrefix, preferredID, ext)
		file, err = os.OpenFile(filepath.Join(s.root, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	} else {
		name, file, err = s.createUnique(ext)
	}

	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	localPath := file.Name()
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(localPath)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(localPath)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// createUnique opens a new file named image-<millis>-<random><ext>, never reusing an existing name
func (s *FileBlobStore) createUnique(ext string) (string, *os.File, error) {
	for i := 0; i < maxNameAttempts; i++ {
		name := fmt.Sprintf("%s%d-%s%s", blobPrefix, s.now().UnixMilli(), shortID(), ext)
		file, err := os.OpenFile(filepath.Join(s.root, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return name, file, err
	}

	return "", nil, fmt.Errorf("no free file name after %d attempts", maxNameAttempts)
}

func shortID() string {
	return uuid.NewString()[:8]
}
