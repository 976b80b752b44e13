package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/gallery/api"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Image not found"})
	case errors.Is(err, domain.ErrInvalidBlobInput):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid data URL format"})
	case errors.Is(err, domain.ErrMissingImage):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No image provided"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
}

func tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "Image too large"})
}

// isTooLarge reports whether err came from a body cut off by middleware.LimitBody
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
