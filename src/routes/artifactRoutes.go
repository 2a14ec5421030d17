package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
)

func SetupArtifactRoutes(router *gin.Engine, admin *gin.RouterGroup, svc *Services, mediaURL string, log *zap.Logger) {
	controller := controllers.NewArtifactController(svc.Artifacts, svc.Collections, svc.Visits, svc.Codec, svc.Files, mediaURL, log)
	importController := controllers.NewImportController(svc.Imports, log)

	// Public routes
	artifacts := router.Group("/artifacts")
	{
		artifacts.GET("/", controller.ListArtifacts)
		artifacts.GET("/search/", controller.SearchArtifacts)
		artifacts.GET("/featured/", controller.FeaturedArtifacts)
		artifacts.GET("/:id/", controller.GetArtifact)
		artifacts.POST("/:id/track_visit/", controller.TrackVisit)
	}

	adminArtifacts := admin.Group("/artifacts")
	{
		// CRUD
		adminArtifacts.POST("/", controller.CreateArtifact)
		adminArtifacts.GET("/by-inventory/:number", controller.GetByInventoryNumber)
		adminArtifacts.GET("/:id", controller.GetAdminArtifact)
		adminArtifacts.PUT("/:id", controller.UpdateArtifact)
		adminArtifacts.DELETE("/:id", controller.DeleteArtifact)

		// QR code
		adminArtifacts.POST("/:id/qr-code", controller.EnsureQRCode)
		adminArtifacts.GET("/:id/qr-code", controller.ServeQRCode)

		// Upload
		adminArtifacts.POST("/:id/main-image", controller.UploadMainImage)
		adminArtifacts.POST("/import", importController.ImportCatalog)
	}
}
