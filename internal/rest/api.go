package rest

import "github.com/gin-gonic/gin"

// NewApi registers the gallery REST endpoints on router
func NewApi(router *gin.Engine, images *ImageHandler, migrations *MigrationHandler) {
	api := router.Group("/api")
	{
		api.GET("/images", images.List)
		api.POST("/images", images.Upload)
		api.POST("/images/dataurl", images.UploadDataURL)
		api.PUT("/images/:id", images.UpdateCaption)
		api.DELETE("/images/:id", images.Delete)

		api.POST("/migrate", migrations.Migrate)
	}
}
