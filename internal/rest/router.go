package rest

import (
	"net/http"

	"github.com/dfryer1193/gallery/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	UploadsDir   string
	UploadsURL   string
	StaticDir    string
	MaxBodyBytes int64
}

// NewRouter builds the gin engine: middleware, REST endpoints, blob serving and the optional UI directory
func NewRouter(cfg RouterConfig, gallery GalleryService, migrator Migrator) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(cors.Default())
	if cfg.MaxBodyBytes > 0 {
		router.Use(middleware.LimitBody(cfg.MaxBodyBytes))
		router.MaxMultipartMemory = cfg.MaxBodyBytes
	}

	NewApi(router, NewImageHandler(gallery), NewMigrationHandler(migrator))

	if cfg.UploadsURL != "" && cfg.UploadsDir != "" {
		router.Static(cfg.UploadsURL, cfg.UploadsDir)
	}

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	return router
}
