package rest

import (
	"context"
	"net/http"

	"github.com/dfryer1193/gallery/api"
	"github.com/dfryer1193/gallery/gallery/application"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/gin-gonic/gin"
)

type Migrator interface {
	Migrate(ctx context.Context, candidates []domain.ImageRecord) (*application.MigrationResult, error)
}

type MigrationHandler struct {
	migrator Migrator
}

func NewMigrationHandler(migrator Migrator) *MigrationHandler {
	return &MigrationHandler{
		migrator: migrator,
	}
}

func (h *MigrationHandler) Migrate(c *gin.Context) {
	var req api.MigrateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GalleryData == nil {
		badRequest(c, "Invalid gallery data")
		return
	}

	result, err := h.migrator.Migrate(c.Request.Context(), *req.GalleryData)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MigrateResponse{
		Success:       true,
		MigratedCount: result.Migrated,
		TotalCount:    result.Total,
	})
}
