package api

import "github.com/dfryer1193/gallery/gallery/domain"

// DataURLUpload is the body of POST /api/images/dataurl
type DataURLUpload struct {
	DataURL  string `json:"dataUrl"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// CaptionUpdate is the body of PUT /api/images/:id
type CaptionUpdate struct {
	Title string `json:"title"`
}

// MigrateRequest is the body of POST /api/migrate.
// GalleryData is a pointer so a missing field can be told apart from an empty array.
type MigrateRequest struct {
	GalleryData *[]domain.ImageRecord `json:"galleryData"`
}

type MigrateResponse struct {
	Success       bool `json:"success"`
	MigratedCount int  `json:"migratedCount"`
	TotalCount    int  `json:"totalCount"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
