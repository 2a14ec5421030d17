package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
	"github.com/museum-catalog/museum-backend/src/services"
)

func SetupMediaRoutes(router *gin.Engine, admin *gin.RouterGroup, service *services.MediaService, mediaURL string, log *zap.Logger) {
	controller := controllers.NewMediaController(service, mediaURL, log)

	// Public routes
	router.GET("/audio-guides/", controller.GetAudioGuides)
	router.GET("/videos/", controller.GetVideos)

	// Upload
	admin.POST("/artifacts/:id/images", controller.AddImage)
	admin.POST("/artifacts/:id/audio-guides", controller.AddAudioGuide)
	admin.POST("/artifacts/:id/videos", controller.AddVideo)
}
