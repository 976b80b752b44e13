package rest

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dfryer1193/gallery/api"
	"github.com/dfryer1193/gallery/gallery/application"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/gin-gonic/gin"
)

type GalleryService interface {
	ListImages(ctx context.Context) ([]domain.ImageRecord, error)
	CreateImage(ctx context.Context, in application.CreateImageInput) (*domain.ImageRecord, error)
	UpdateCaption(ctx context.Context, id int64, title string) (*domain.ImageRecord, error)
	DeleteImage(ctx context.Context, id int64) error
}

type ImageHandler struct {
	gallery GalleryService
}

func NewImageHandler(gallery GalleryService) *ImageHandler {
	return &ImageHandler{
		gallery: gallery,
	}
}

func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.gallery.ListImages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

// Upload handles multipart uploads with an "image" file part
func (h *ImageHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		badRequest(c, "No image file provided")
		return
	}

	rec, err := h.gallery.CreateImage(c.Request.Context(), application.CreateImageInput{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		Upload:   formFile{header: header},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *ImageHandler) UploadDataURL(c *gin.Context) {
	var req api.DataURLUpload
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			tooLarge(c)
			return
		}
		badRequest(c, "Invalid request body")
		return
	}

	if req.DataURL == "" {
		badRequest(c, "No image data provided")
		return
	}

	du, err := domain.DecodeDataURL(req.DataURL)
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.gallery.CreateImage(c.Request.Context(), application.CreateImageInput{
		Title:    req.Title,
		Category: req.Category,
		Content:  du.Data,
		MimeType: du.MimeType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *ImageHandler) UpdateCaption(c *gin.Context) {
	id, ok := imageID(c)
	if !ok {
		return
	}

	var req api.CaptionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	rec, err := h.gallery.UpdateCaption(c.Request.Context(), id, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *ImageHandler) Delete(c *gin.Context) {
	id, ok := imageID(c)
	if !ok {
		return
	}

	if err := h.gallery.DeleteImage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

func imageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid ID format")
		return 0, false
	}
	return id, true
}

// formFile adapts a multipart file header to domain.Upload
type formFile struct {
	header *multipart.FileHeader
}

func (f formFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

func (f formFile) ContentType() string {
	return f.header.Header.Get("Content-Type")
}
